package caption

import (
	"iter"
	"strings"
	"unicode/utf8"
)

// Wrap lazily rewraps one caption block. The sequence holds the packed
// display lines with an empty separator after every opts.PairSize lines; a
// trailing partial group gets no separator. Words are never split, so a
// single word wider than opts.MaxWidth occupies a line on its own.
func Wrap(text string, opts Options) iter.Seq[string] {
	opts = opts.Normalized()
	return func(yield func(string) bool) {
		wrapBlock(text, opts, func(line wrappedLine) bool {
			return yield(line.text)
		})
	}
}

// WrapLines collects Wrap into a slice.
func WrapLines(text string, opts Options) []string {
	var out []string
	for line := range Wrap(text, opts) {
		out = append(out, line)
	}
	return out
}

type wrappedLine struct {
	text      string
	marked    bool
	separator bool
}

// splitWords splits on single spaces and drops the empty words produced by
// runs of spaces.
func splitWords(text string) []string {
	parts := strings.Split(text, " ")
	words := parts[:0]
	for _, part := range parts {
		if part != "" {
			words = append(words, part)
		}
	}
	return words
}

// wrapBlock expects normalized options. It returns false when yield stopped
// the iteration early.
func wrapBlock(text string, opts Options, yield func(wrappedLine) bool) bool {
	words := splitWords(text)
	if len(words) == 0 {
		return true
	}

	emitted := 0
	emit := func(line wrappedLine) bool {
		if !yield(line) {
			return false
		}
		emitted++
		if emitted%opts.PairSize == 0 {
			return yield(wrappedLine{separator: true})
		}
		return true
	}

	var buf strings.Builder
	buf.WriteString(words[0])
	bufLen := utf8.RuneCountInString(words[0])

	for _, word := range words[1:] {
		wordLen := utf8.RuneCountInString(word)
		if bufLen+1+wordLen < opts.MaxWidth {
			buf.WriteByte(' ')
			buf.WriteString(word)
			bufLen += 1 + wordLen
			continue
		}
		line := wrappedLine{text: buf.String()}
		if opts.MarkSplits {
			line.text += opts.MarkSuffix
			line.marked = true
		}
		if !emit(line) {
			return false
		}
		buf.Reset()
		buf.WriteString(word)
		bufLen = wordLen
	}
	return emit(wrappedLine{text: buf.String()})
}
