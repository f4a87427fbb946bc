package convert

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestConvertSubFile(t *testing.T) {
	content := "{0}{50}Hello|World\n{100}{200}Some dialogue\n{225}{250}More\n"
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "test.sub")
	outPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(inPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conv, err := New(FormatSub, Options{FPS: 25, Quiet: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := conv.Convert(inPath, outPath); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	want := `1
00:00:00,000 --> 00:00:02,000
Hello
World

2
00:00:04,000 --> 00:00:08,000
Some dialogue

3
00:00:09,000 --> 00:00:10,000
More
`
	if string(got) != want {
		t.Errorf("output = %q, want %q", string(got), want)
	}
}

func TestConvertTTMLFile(t *testing.T) {
	content := `<?xml version="1.0" encoding="utf-8"?>
<tt xmlns="http://www.w3.org/ns/ttml">
  <body>
    <div>
      <p begin="00:00:01.000" end="00:00:02.000"><span>One</span></p>
      <p begin="00:00:01.000" end="00:00:03.500"><span>Two</span></p>
      <p begin="00:00:05.000" end="00:00:06.000">Later</p>
    </div>
  </body>
</tt>
`
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "test.ttml")
	outPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(inPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conv, err := New(FormatTTML, Options{Quiet: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := conv.Convert(inPath, outPath); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}

	// the two cues starting together are merged into one block
	want := `1
00:00:01,000 --> 00:00:03,500
One
Two

2
00:00:05,000 --> 00:00:06,000
Later
`
	if string(got) != want {
		t.Errorf("output = %q, want %q", string(got), want)
	}
}

func TestConvertParseErrorWritesNothing(t *testing.T) {
	content := "{0}{50}Good line\nbad line\n"
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "test.sub")
	outPath := filepath.Join(tmpDir, "test.srt")
	if err := os.WriteFile(inPath, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conv, err := New(FormatSub, Options{FPS: 25, Quiet: true})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := conv.Convert(inPath, outPath); !errors.Is(err, ErrParse) {
		t.Fatalf("Convert error = %v, want ErrParse", err)
	}
	if _, err := os.Stat(outPath); !errors.Is(err, os.ErrNotExist) {
		t.Error("output file should not exist after parse error")
	}
}

func TestConvertMissingInput(t *testing.T) {
	tmpDir := t.TempDir()

	conv, err := New(FormatSub, Options{FPS: 25})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	err = conv.Convert(filepath.Join(tmpDir, "nope.sub"), filepath.Join(tmpDir, "out.srt"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Convert error = %v, want ErrNotFound", err)
	}
}

func TestConvertInputNotAFile(t *testing.T) {
	tmpDir := t.TempDir()

	conv, err := New(FormatSub, Options{FPS: 25})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	err = conv.Convert(tmpDir, filepath.Join(tmpDir, "out.srt"))
	if !errors.Is(err, ErrNotAFile) {
		t.Errorf("Convert error = %v, want ErrNotAFile", err)
	}
}

func TestConvertOverwriteDeclined(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "test.sub")
	outPath := filepath.Join(tmpDir, "exists.srt")
	if err := os.WriteFile(inPath, []byte("{0}{50}Hello"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.WriteFile(outPath, []byte("previous content"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conv, err := New(FormatSub, Options{
		FPS:     25,
		Confirm: func(path string) bool { return false },
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := conv.Convert(inPath, outPath); !errors.Is(err, ErrAborted) {
		t.Fatalf("Convert error = %v, want ErrAborted", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(got) != "previous content" {
		t.Errorf("declined overwrite changed the file: %q", string(got))
	}
}

func TestConvertOverwriteQuiet(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "test.sub")
	outPath := filepath.Join(tmpDir, "exists.srt")
	if err := os.WriteFile(inPath, []byte("{0}{50}Hello"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if err := os.WriteFile(outPath, []byte("previous content"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conv, err := New(FormatSub, Options{
		FPS:   25,
		Quiet: true,
		Confirm: func(path string) bool {
			t.Error("confirm called in quiet mode")
			return false
		},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := conv.Convert(inPath, outPath); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	got, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	if string(got) == "previous content" {
		t.Error("quiet mode did not overwrite the file")
	}
}

func TestConvertInPlaceWithoutPrompt(t *testing.T) {
	tmpDir := t.TempDir()
	inPath := filepath.Join(tmpDir, "test.sub")
	if err := os.WriteFile(inPath, []byte("{0}{50}Hello"), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	conv, err := New(FormatSub, Options{
		FPS: 25,
		Confirm: func(path string) bool {
			t.Error("confirm called for in-place conversion")
			return false
		},
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := conv.Convert(inPath, ""); err != nil {
		t.Fatalf("Convert returned error: %v", err)
	}

	got, err := os.ReadFile(inPath)
	if err != nil {
		t.Fatalf("failed to read output: %v", err)
	}
	want := "1\n00:00:00,000 --> 00:00:02,000\nHello\n"
	if string(got) != want {
		t.Errorf("in-place output = %q, want %q", string(got), want)
	}
}

func TestNewUnsupportedFormat(t *testing.T) {
	_, err := New("ass", Options{})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("New error = %v, want ErrUnsupportedFormat", err)
	}
}

func TestInferFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"film.sub", FormatSub},
		{"film.ttml", FormatTTML},
		{"FILM.TTML", FormatTTML},
		{"dir/film.srt", Format("srt")},
		{"noext", Format("")},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := InferFormat(tt.path); got != tt.want {
				t.Errorf("InferFormat(%q) = %q, want %q", tt.path, got, tt.want)
			}
		})
	}
}
