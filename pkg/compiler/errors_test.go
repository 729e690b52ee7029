package compiler

import (
	"strings"
	"testing"
)

// TestCompileError_Error tests the Error() method of CompileError.
func TestCompileError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *CompileError
		contains []string
	}{
		{
			name: "lexer error without context",
			err: &CompileError{
				Phase:   "lexer",
				Message: "unterminated parenthesis group",
				Line:    5,
				Column:  10,
			},
			contains: []string{"lexer error", "line 5", "column 10", "unterminated parenthesis group"},
		},
		{
			name: "parser error without context",
			err: &CompileError{
				Phase:   "parser",
				Message: "unmatched }: no open do block",
				Line:    12,
				Column:  25,
			},
			contains: []string{"parser error", "line 12", "column 25", "unmatched }"},
		},
		{
			name: "error with context",
			err: &CompileError{
				Phase:   "parser",
				Message: "turn expects clockwise or counterclockwise",
				Line:    3,
				Column:  6,
				Context: "> 3 | turn left\n           ^",
			},
			contains: []string{"parser error", "line 3", "column 6", "turn expects", "> 3 |"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errStr := tt.err.Error()
			for _, substr := range tt.contains {
				if !strings.Contains(errStr, substr) {
					t.Errorf("Error() = %q, want to contain %q", errStr, substr)
				}
			}
		})
	}
}

// TestNewLexerError tests the NewLexerError helper function.
func TestNewLexerError(t *testing.T) {
	err := NewLexerError("unterminated parenthesis group", 5, 10)

	if err.Phase != "lexer" {
		t.Errorf("Phase = %q, want %q", err.Phase, "lexer")
	}
	if err.Line != 5 {
		t.Errorf("Line = %d, want %d", err.Line, 5)
	}
	if err.Column != 10 {
		t.Errorf("Column = %d, want %d", err.Column, 10)
	}
	if err.Context != "" {
		t.Errorf("Context = %q, want empty", err.Context)
	}
}

// TestGenerateErrorContext tests the GenerateErrorContext function.
func TestGenerateErrorContext(t *testing.T) {
	source := `size 10*10
let i=1
start 0,0
turn left
step 1
step 2
stop`

	tests := []struct {
		name        string
		source      string
		line        int
		column      int
		contains    []string
		notContains []string
	}{
		{
			name:   "error in middle of file",
			source: source,
			line:   4,
			column: 6,
			contains: []string{
				"2 | let i=1",
				"3 | start 0,0",
				"> 4 | turn left",
				"^",
				"5 | step 1",
				"6 | step 2",
			},
			notContains: []string{"1 |", "7 |"},
		},
		{
			name:   "error at beginning of file",
			source: source,
			line:   1,
			column: 1,
			contains: []string{
				"> 1 | size 10*10",
				"2 | let i=1",
				"3 | start 0,0",
			},
			notContains: []string{"4 |"},
		},
		{
			name:   "error at end of file",
			source: source,
			line:   7,
			column: 1,
			contains: []string{
				"5 | step 1",
				"> 7 | stop",
			},
			notContains: []string{"4 |"},
		},
		{
			name:   "empty source",
			source: "",
			line:   1,
			column: 1,
		},
		{
			name:   "line beyond source",
			source: source,
			line:   20,
			column: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := GenerateErrorContext(tt.source, tt.line, tt.column)
			if len(tt.contains) == 0 && ctx != "" {
				t.Errorf("expected empty context, got %q", ctx)
			}
			for _, s := range tt.contains {
				if !strings.Contains(ctx, s) {
					t.Errorf("context does not contain %q:\n%s", s, ctx)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(ctx, s) {
					t.Errorf("context should not contain %q:\n%s", s, ctx)
				}
			}
		})
	}
}

// TestGenerateErrorContext_Pointer checks that the caret sits under the column.
func TestGenerateErrorContext_Pointer(t *testing.T) {
	ctx := GenerateErrorContext("size 1*1\nturn left", 2, 6)
	lines := strings.Split(strings.TrimRight(ctx, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d:\n%s", len(lines), ctx)
	}

	errLine := lines[1]
	pointer := lines[2]
	col := strings.Index(errLine, "left")
	if strings.Index(pointer, "^") != col {
		t.Errorf("pointer at %d, want %d:\n%s", strings.Index(pointer, "^"), col, ctx)
	}
}
