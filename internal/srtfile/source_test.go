package srtfile

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestSplitLines(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		lines      []string
		terminator string
	}{
		{name: "lf", content: "1\nhello\n", lines: []string{"1", "hello", ""}, terminator: "\n"},
		{name: "crlf", content: "1\r\nhello\r\n", lines: []string{"1", "hello", ""}, terminator: "\r\n"},
		{name: "no trailing newline", content: "a\nb", lines: []string{"a", "b"}, terminator: "\n"},
		{name: "empty", content: "", lines: []string{""}, terminator: "\n"},
		{name: "keeps inner whitespace", content: "  indented  \n", lines: []string{"  indented  ", ""}, terminator: "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, term := SplitLines(tt.content)
			if !reflect.DeepEqual(lines, tt.lines) {
				t.Fatalf("lines = %q, want %q", lines, tt.lines)
			}
			if term != tt.terminator {
				t.Fatalf("terminator = %q, want %q", term, tt.terminator)
			}
		})
	}
}

func TestReadStripsBOMAndKeepsRaw(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "movie.srt")
	raw := append([]byte{0xEF, 0xBB, 0xBF}, []byte("1\r\nHello\r\n")...)
	if err := os.WriteFile(path, raw, 0o640); err != nil {
		t.Fatal(err)
	}

	src, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if !src.HasBOM {
		t.Fatal("expected BOM to be detected")
	}
	if want := []string{"1", "Hello", ""}; !reflect.DeepEqual(src.Lines, want) {
		t.Fatalf("lines = %q, want %q", src.Lines, want)
	}
	if src.Terminator != "\r\n" {
		t.Fatalf("terminator = %q", src.Terminator)
	}
	if string(src.Raw) != string(raw) {
		t.Fatal("raw bytes changed")
	}
	if src.Mode != 0o640 {
		t.Fatalf("mode = %o, want 640", src.Mode)
	}
	if got := src.Render(src.Lines); string(got) != string(raw) {
		t.Fatalf("render = %q, want %q", got, raw)
	}
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Read(filepath.Join(dir, "missing.srt")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file error = %v, want ErrNotExist", err)
	}
	if _, err := Read(dir); !errors.Is(err, ErrNotRegularFile) {
		t.Fatalf("directory error = %v, want ErrNotRegularFile", err)
	}
}

func TestRenderDefaultsToLF(t *testing.T) {
	src := &Source{}
	if got := string(src.Render([]string{"a", "", "b"})); got != "a\n\nb" {
		t.Fatalf("render = %q", got)
	}
}
