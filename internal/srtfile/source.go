package srtfile

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ErrNotRegularFile is returned when a target path names a directory or device.
var ErrNotRegularFile = errors.New("not a regular file")

// Source is the full content of one subtitle file.
type Source struct {
	Path string
	// Raw holds the bytes exactly as read, including any byte order mark.
	Raw []byte
	// Lines are the file's lines with terminators removed.
	Lines []string
	// Terminator is "\r\n" when the file uses CRLF endings, otherwise "\n".
	Terminator string
	HasBOM     bool
	Mode       fs.FileMode
}

// Read loads path and splits it into lines.
func Read(path string) (*Source, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("source %s: %w", path, ErrNotRegularFile)
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}

	src := &Source{Path: path, Raw: raw, Mode: info.Mode().Perm()}
	text := raw
	if bytes.HasPrefix(raw, utf8BOM) {
		src.HasBOM = true
		text, _, err = transform.Bytes(unicode.BOMOverride(transform.Nop), raw)
		if err != nil {
			return nil, fmt.Errorf("decode source: %w", err)
		}
	}
	src.Lines, src.Terminator = SplitLines(string(text))
	return src, nil
}

// SplitLines splits content on "\n", strips a trailing "\r" from each line,
// and reports the terminator to use when joining the lines again.
func SplitLines(content string) ([]string, string) {
	terminator := "\n"
	if strings.Contains(content, "\r\n") {
		terminator = "\r\n"
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines, terminator
}

// Render joins processed lines with the source's terminator and restores the
// byte order mark when the source had one.
func (s *Source) Render(lines []string) []byte {
	var buf bytes.Buffer
	if s.HasBOM {
		buf.Write(utf8BOM)
	}
	buf.WriteString(strings.Join(lines, s.terminator()))
	return buf.Bytes()
}

func (s *Source) terminator() string {
	if s.Terminator == "" {
		return "\n"
	}
	return s.Terminator
}
