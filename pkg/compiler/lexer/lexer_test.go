package lexer

import (
	"errors"
	"testing"
)

func TestTokenize(t *testing.T) {
	input := `size 64*64
let i=5
start 0,0
do {
	step (* 3 i)
	turn clockwise
	i--
} while (> i 0)
stop`

	tests := []struct {
		expectedType    TokenType
		expectedLiteral string
	}{
		{TOKEN_SIZE, "size"},
		{TOKEN_WORD, "64*64"},
		{TOKEN_LET, "let"},
		{TOKEN_WORD, "i=5"},
		{TOKEN_START, "start"},
		{TOKEN_WORD, "0"},
		{TOKEN_WORD, "0"},
		{TOKEN_DO, "do"},
		{TOKEN_WORD, "{"},
		{TOKEN_STEP, "step"},
		{TOKEN_GROUP, "* 3 i"},
		{TOKEN_TURN, "turn"},
		{TOKEN_WORD, "clockwise"},
		{TOKEN_WORD, "i--"},
		{TOKEN_END, "}"},
		{TOKEN_WORD, "while"},
		{TOKEN_GROUP, "> i 0"},
		{TOKEN_STOP, "stop"},
	}

	tokens, err := Tokenize(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tokens) != len(tests) {
		t.Fatalf("token count wrong. expected=%d, got=%d (%v)", len(tests), len(tokens), tokens)
	}

	for i, tt := range tests {
		tok := tokens[i]

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q",
				i, tt.expectedType, tok.Type)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestTokenize_Separators(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{"commas", "a,b,,c", []string{"a", "b", "c"}},
		{"spaces and newlines", "  a \n\n b  ", []string{"a", "b"}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"tabs", "a\tb", []string{"a", "b"}},
		{"group flushes buffer", "step(+ 1 2)", []string{"step", "+ 1 2"}},
		{"group resumes after paren", "(1)x", []string{"1", "x"}},
		{"empty group dropped", "a () b", []string{"a", "b"}},
		{"blank group dropped", "a (   ) b", []string{"a", "b"}},
		{"group keeps commas", "start (1,2)", []string{"start", "1,2"}},
		{"groups do not nest", "(a (b) c)", []string{"a (b", "c)"}},
		{"empty input", "", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(tokens) != len(tt.expected) {
				t.Fatalf("expected %d tokens, got %d (%v)", len(tt.expected), len(tokens), tokens)
			}
			for i, lit := range tt.expected {
				if tokens[i].Literal != lit {
					t.Errorf("tokens[%d]: expected %q, got %q", i, lit, tokens[i].Literal)
				}
			}
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens, err := Tokenize("size 3*3\n  step (+ 1 2)")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := []struct{ line, column int }{
		{1, 1},
		{1, 6},
		{2, 3},
		{2, 8},
	}
	for i, pos := range expected {
		if tokens[i].Line != pos.line || tokens[i].Column != pos.column {
			t.Errorf("tokens[%d] %q: expected %d:%d, got %d:%d",
				i, tokens[i].Literal, pos.line, pos.column, tokens[i].Line, tokens[i].Column)
		}
	}
}

func TestTokenize_UnterminatedGroup(t *testing.T) {
	_, err := Tokenize("size 3*3\nstep (+ 1 2")
	if err == nil {
		t.Fatal("expected error for unterminated group, got nil")
	}

	var lexErr *Error
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected *lexer.Error, got %T", err)
	}
	if lexErr.Line != 2 || lexErr.Column != 6 {
		t.Errorf("expected error at 2:6, got %d:%d", lexErr.Line, lexErr.Column)
	}
}

func TestTokenize_NULByte(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		line, column int
	}{
		{"between words", "size 10*10 start 0,0 step 1\x00 step 99 stop", 1, 28},
		{"inside group", "size 3*3\nstep (+ 1\x002)", 2, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			if err == nil {
				t.Fatalf("expected error, got %d tokens", len(tokens))
			}

			var lexErr *Error
			if !errors.As(err, &lexErr) {
				t.Fatalf("expected *lexer.Error, got %T", err)
			}
			if lexErr.Message != "unexpected NUL byte" {
				t.Errorf("unexpected message %q", lexErr.Message)
			}
			if lexErr.Line != tt.line || lexErr.Column != tt.column {
				t.Errorf("expected error at %d:%d, got %d:%d", tt.line, tt.column, lexErr.Line, lexErr.Column)
			}
		})
	}
}
