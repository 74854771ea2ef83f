package caption

import (
	"errors"
	"fmt"
)

const (
	// DefaultMaxWidth is the display width used when none is configured.
	DefaultMaxWidth = 42
	// DefaultPairSize is the number of lines grouped before a separator.
	DefaultPairSize = 2
	// DefaultMarkSuffix is appended to lines cut short by the width limit.
	DefaultMarkSuffix = " ~"
)

// Options controls how caption blocks are rewrapped.
type Options struct {
	// MaxWidth is the exclusive upper bound on the rune length of a wrapped
	// line, measured before any mark suffix.
	MaxWidth int `json:"max_width"`
	// PairSize is the number of wrapped lines per visual group.
	PairSize int `json:"pair_size"`
	// MarkSplits appends MarkSuffix to every line that was closed because
	// the next word did not fit.
	MarkSplits bool   `json:"mark_splits"`
	MarkSuffix string `json:"mark_suffix"`
	// StripSync drops counter and timecode input lines from the output.
	// Wrapped caption text is always emitted, even when a wrapped line
	// happens to look like a counter or timecode.
	StripSync bool `json:"strip_sync"`
}

// DefaultOptions returns the documented defaults.
func DefaultOptions() Options {
	return Options{
		MaxWidth:   DefaultMaxWidth,
		PairSize:   DefaultPairSize,
		MarkSuffix: DefaultMarkSuffix,
	}
}

// Normalized fills zero-valued fields with defaults.
func (o Options) Normalized() Options {
	if o.MaxWidth <= 0 {
		o.MaxWidth = DefaultMaxWidth
	}
	if o.PairSize <= 0 {
		o.PairSize = DefaultPairSize
	}
	if o.MarkSplits && o.MarkSuffix == "" {
		o.MarkSuffix = DefaultMarkSuffix
	}
	return o
}

// Validate reports options that cannot be normalized into something usable.
// Zero width or pair size is accepted and means the default.
func (o Options) Validate() error {
	if o.MaxWidth < 0 {
		return fmt.Errorf("max width must not be negative, got %d", o.MaxWidth)
	}
	if o.PairSize < 0 {
		return fmt.Errorf("pair size must not be negative, got %d", o.PairSize)
	}
	if o.MarkSplits && containsLineBreak(o.MarkSuffix) {
		return errors.New("mark suffix must not contain line breaks")
	}
	return nil
}

func containsLineBreak(s string) bool {
	for _, r := range s {
		if r == '\n' || r == '\r' {
			return true
		}
	}
	return false
}
