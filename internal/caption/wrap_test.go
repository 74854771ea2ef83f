package caption

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestWrapShortTextRoundTrip(t *testing.T) {
	got := WrapLines("Hi", DefaultOptions())
	if len(got) != 1 || got[0] != "Hi" {
		t.Fatalf("WrapLines(Hi) = %q, want [Hi]", got)
	}
}

func TestWrapEmpty(t *testing.T) {
	for _, text := range []string{"", " ", "   "} {
		if got := WrapLines(text, DefaultOptions()); len(got) != 0 {
			t.Fatalf("WrapLines(%q) = %q, want empty", text, got)
		}
	}
}

func TestWrapStrictBoundary(t *testing.T) {
	opts := Options{MaxWidth: 10, PairSize: 5}
	// "abcd efgh" is 9 runes and fits; "abcd efghi" is 10 and must not.
	if got := WrapLines("abcd efgh", opts); len(got) != 1 {
		t.Fatalf("expected one line for 9 runes, got %q", got)
	}
	got := WrapLines("abcd efghi", opts)
	want := []string{"abcd", "efghi"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("WrapLines = %q, want %q", got, want)
	}
}

func TestWrapCollapsesSpaces(t *testing.T) {
	got := WrapLines("a   b  c", DefaultOptions())
	if len(got) != 1 || got[0] != "a b c" {
		t.Fatalf("WrapLines = %q, want [a b c]", got)
	}
}

func TestWrapLongWordIsNotSplit(t *testing.T) {
	long := strings.Repeat("w", 60)
	got := WrapLines("go "+long+" on", DefaultOptions())
	want := []string{"go", long, "", "on"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("WrapLines = %q, want %q", got, want)
	}
}

func TestWrapWidthBound(t *testing.T) {
	texts := []string{
		"This is a long caption line that will not fit in forty two characters",
		strings.Repeat("lorem ipsum dolor ", 20),
		"Je suis très fâché contre ce garçon déjà parti à l'été prochain",
	}
	for _, width := range []int{5, 12, 20, 42, 80} {
		opts := Options{MaxWidth: width, PairSize: 2}
		for _, text := range texts {
			for line := range Wrap(text, opts) {
				if !strings.Contains(line, " ") {
					continue
				}
				if n := utf8.RuneCountInString(line); n >= width {
					t.Fatalf("width %d: line %q has %d runes", width, line, n)
				}
			}
		}
	}
}

func TestWrapCountsRunesNotBytes(t *testing.T) {
	opts := Options{MaxWidth: 8, PairSize: 4}
	// Five runes (ten bytes) plus a space and one more rune stays under 8.
	got := WrapLines("ééééé é", opts)
	if len(got) != 1 {
		t.Fatalf("expected a single line, got %q", got)
	}
}

func TestWrapPairing(t *testing.T) {
	// Each line holds two "aaaa" words at width 10, so 2n words make n lines.
	for _, pair := range []int{1, 2, 3} {
		for n := 1; n <= 7; n++ {
			text := strings.TrimSpace(strings.Repeat("aaaa ", 2*n))
			got := WrapLines(text, Options{MaxWidth: 10, PairSize: pair})

			raw, separators := 0, 0
			for i, line := range got {
				if line != "" {
					raw++
					continue
				}
				separators++
				if raw%pair != 0 {
					t.Fatalf("pair=%d n=%d: separator at %d follows partial group", pair, n, i)
				}
				if i > 0 && got[i-1] == "" {
					t.Fatalf("pair=%d n=%d: consecutive separators at %d", pair, n, i)
				}
			}
			if raw != n {
				t.Fatalf("pair=%d n=%d: got %d raw lines: %q", pair, n, raw, got)
			}
			if separators != n/pair {
				t.Fatalf("pair=%d n=%d: got %d separators, want %d", pair, n, separators, n/pair)
			}
		}
	}
}

func TestWrapMarksSplitLines(t *testing.T) {
	opts := DefaultOptions()
	opts.MarkSplits = true
	got := WrapLines(strings.Repeat("x ", 50), opts)

	var raw []string
	for _, line := range got {
		if line != "" {
			raw = append(raw, line)
		}
	}
	if len(raw) < 2 {
		t.Fatalf("expected several lines, got %q", got)
	}
	marked := 0
	for _, line := range raw[:len(raw)-1] {
		if strings.HasSuffix(line, opts.MarkSuffix) {
			marked++
		}
	}
	if marked == 0 {
		t.Fatalf("expected marked lines, got %q", raw)
	}
	if last := raw[len(raw)-1]; strings.HasSuffix(last, opts.MarkSuffix) {
		t.Fatalf("final line %q must not be marked", last)
	}
	for _, line := range raw {
		body := strings.TrimSuffix(line, opts.MarkSuffix)
		if utf8.RuneCountInString(body) >= opts.MaxWidth {
			t.Fatalf("line %q exceeds width before suffix", line)
		}
	}
}

func TestWrapStopsWhenConsumerStops(t *testing.T) {
	text := strings.Repeat("word ", 100)
	count := 0
	for range Wrap(text, Options{MaxWidth: 10, PairSize: 2}) {
		count++
		if count == 3 {
			break
		}
	}
	if count != 3 {
		t.Fatalf("expected to stop after 3 lines, got %d", count)
	}
}

func TestWrapIsRestartable(t *testing.T) {
	seq := Wrap("one two three four five six seven", Options{MaxWidth: 10, PairSize: 2})
	var first, second []string
	for line := range seq {
		first = append(first, line)
	}
	for line := range seq {
		second = append(second, line)
	}
	if strings.Join(first, "|") != strings.Join(second, "|") {
		t.Fatalf("second iteration differs: %q vs %q", first, second)
	}
}

func TestOptionsNormalized(t *testing.T) {
	got := Options{MarkSplits: true}.Normalized()
	if got.MaxWidth != DefaultMaxWidth || got.PairSize != DefaultPairSize || got.MarkSuffix != DefaultMarkSuffix {
		t.Fatalf("unexpected normalized options: %+v", got)
	}
	if err := (Options{MaxWidth: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative width")
	}
	if err := (Options{MarkSplits: true, MarkSuffix: "a\nb"}).Validate(); err == nil {
		t.Fatal("expected error for multi-line mark suffix")
	}
}
