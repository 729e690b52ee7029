package script

import (
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

func TestLoadFile_UTF8(t *testing.T) {
	// UTF-8のテストファイルを作成（ASCII文字のみ）
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.rbl")
	testContent := "size 10*10\nstart 0,0\nstop"

	if err := os.WriteFile(testFile, []byte(testContent), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	script, err := LoadFile(testFile, "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if script.FileName != "test.rbl" {
		t.Errorf("expected filename 'test.rbl', got %q", script.FileName)
	}

	if script.Content != testContent {
		t.Errorf("content mismatch:\nexpected: %q\ngot: %q", testContent, script.Content)
	}

	if script.Size != int64(len(testContent)) {
		t.Errorf("expected size %d, got %d", len(testContent), script.Size)
	}
}

func TestLoadFile_ShiftJIS(t *testing.T) {
	// Shift-JISのテストファイルを作成
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.rbl")
	testContent := "size 5*5\nlet 歩数=3\nstep 歩数"

	// UTF-8からShift-JISに変換
	encoder := japanese.ShiftJIS.NewEncoder()
	shiftJISContent, _, err := transform.String(encoder, testContent)
	if err != nil {
		t.Fatalf("failed to encode to Shift-JIS: %v", err)
	}

	if err := os.WriteFile(testFile, []byte(shiftJISContent), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	script, err := LoadFile(testFile, "shift_jis")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if script.Content != testContent {
		t.Errorf("content mismatch:\nexpected: %q\ngot: %q", testContent, script.Content)
	}
}

func TestLoadFile_NonExistent(t *testing.T) {
	_, err := LoadFile("/nonexistent/path/test.rbl", "")
	if err == nil {
		t.Error("expected error for nonexistent file, got nil")
	}
}

func TestLoadFile_Directory(t *testing.T) {
	_, err := LoadFile(t.TempDir(), "")
	if err == nil {
		t.Error("expected error for directory, got nil")
	}
}

func TestLoadFile_UnknownEncoding(t *testing.T) {
	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.rbl")
	if err := os.WriteFile(testFile, []byte("size 1*1"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	if _, err := LoadFile(testFile, "klingon"); err == nil {
		t.Error("expected error for unknown encoding, got nil")
	}
}

func TestDecode(t *testing.T) {
	testCases := []struct {
		name     string
		input    []byte
		encoding string
		want     string
	}{
		{
			name:     "UTF-8 既定",
			input:    []byte("size 3*3"),
			encoding: "",
			want:     "size 3*3",
		},
		{
			name:     "UTF-8 BOM付き",
			input:    []byte("\xEF\xBB\xBFsize 3*3"),
			encoding: "utf-8",
			want:     "size 3*3",
		},
		{
			name:     "BOMはラベルより優先",
			input:    []byte("\xEF\xBB\xBFstep 1"),
			encoding: "shift_jis",
			want:     "step 1",
		},
		{
			name:     "ラベルの大文字小文字",
			input:    []byte("stop"),
			encoding: "UTF-8",
			want:     "stop",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := Decode(tc.input, tc.encoding)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if result != tc.want {
				t.Errorf("Decode() = %q, want %q", result, tc.want)
			}
		})
	}
}

func TestDecode_ShiftJISRoundTrip(t *testing.T) {
	testCases := []string{"こんにちは世界", "Hello World 123", "Hello こんにちは 123"}

	for _, input := range testCases {
		t.Run(input, func(t *testing.T) {
			// UTF-8からShift-JISに変換
			encoder := japanese.ShiftJIS.NewEncoder()
			shiftJISData, _, err := transform.String(encoder, input)
			if err != nil {
				t.Fatalf("failed to encode to Shift-JIS: %v", err)
			}

			result, err := Decode([]byte(shiftJISData), "shift_jis")
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if result != input {
				t.Errorf("Decode() = %q, want %q", result, input)
			}
		})
	}
}

func TestLoadFile_CaseInsensitive(t *testing.T) {
	// 大文字のファイル名を小文字で指定しても読み込める
	tmpDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tmpDir, "SQUARE.RBL"), []byte("size 1*1"), 0644); err != nil {
		t.Fatalf("failed to create test file: %v", err)
	}

	script, err := LoadFile(filepath.Join(tmpDir, "square.rbl"), "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if script.Content != "size 1*1" {
		t.Errorf("content mismatch: %q", script.Content)
	}
}
