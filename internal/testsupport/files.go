package testsupport

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// SampleSRT is a two-caption subtitle file whose first caption needs wrapping
// at the default width.
const SampleSRT = "1\n" +
	"00:00:01,000 --> 00:00:03,000\n" +
	"This is a long caption line that will not fit in forty two characters\n" +
	"\n" +
	"2\n" +
	"00:00:04,000 --> 00:00:05,000\n" +
	"Short one\n"

// WriteFile writes content to path, creating parent directories.
func WriteFile(t testing.TB, path, content string) string {
	t.Helper()

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
	return path
}

// WriteSRT writes the given lines joined by "\n" into dir/name.
func WriteSRT(t testing.TB, dir, name string, lines ...string) string {
	t.Helper()
	return WriteFile(t, filepath.Join(dir, name), strings.Join(lines, "\n"))
}

// ReadFile returns the content of path or fails the test.
func ReadFile(t testing.TB, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}
