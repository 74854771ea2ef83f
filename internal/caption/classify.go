package caption

import (
	"regexp"
	"strings"
)

// LineKind is the structural role of a single subtitle line.
type LineKind int

const (
	KindText LineKind = iota
	KindCounter
	KindTimecode
	KindBlank
)

var (
	counterPattern  = regexp.MustCompile(`^[0-9]+$`)
	timecodePattern = regexp.MustCompile(`^.+?-->`)
)

// Classify returns the kind of line after trimming surrounding whitespace.
// Rules are checked in order: counter, timecode, blank, text.
func Classify(line string) LineKind {
	trimmed := strings.TrimSpace(line)
	switch {
	case counterPattern.MatchString(trimmed):
		return KindCounter
	case timecodePattern.MatchString(trimmed):
		return KindTimecode
	case trimmed == "":
		return KindBlank
	default:
		return KindText
	}
}

// IsSync reports whether the kind carries sync metadata.
func (k LineKind) IsSync() bool {
	return k == KindCounter || k == KindTimecode
}

func (k LineKind) String() string {
	switch k {
	case KindCounter:
		return "counter"
	case KindTimecode:
		return "timecode"
	case KindBlank:
		return "blank"
	default:
		return "text"
	}
}
