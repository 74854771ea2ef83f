package caption

import "strings"

// Phase is the position of the reformat state machine within a caption.
type Phase int

const (
	// Idle means no caption text is pending.
	Idle Phase = iota
	// Accumulating means one or more text lines are waiting for a flush.
	Accumulating
)

// State carries the pending caption block between calls to Step. The zero
// value is an empty Idle state.
type State struct {
	phase Phase
	block string
}

// Phase reports the current phase.
func (s State) Phase() Phase { return s.phase }

// Block returns the pending caption text, joined with single spaces.
func (s State) Block() string { return s.block }

// Stats summarizes one reformat run.
type Stats struct {
	InputLines    int `json:"input_lines"`
	OutputLines   int `json:"output_lines"`
	Counters      int `json:"counters"`
	Timecodes     int `json:"timecodes"`
	BlankLines    int `json:"blank_lines"`
	TextLines     int `json:"text_lines"`
	Blocks        int `json:"blocks"`
	WrappedLines  int `json:"wrapped_lines"`
	MarkedLines   int `json:"marked_lines"`
	StrippedLines int `json:"stripped_lines"`
}

// Step folds one raw line into the state and returns the lines ready for
// output. Counter and timecode lines pass through untouched (or vanish when
// opts.StripSync is set); a blank line flushes the pending block and is then
// emitted itself; text lines are only accumulated.
func Step(state State, line string, opts Options) (State, []string) {
	var out []string
	state = step(state, line, opts.Normalized(), nil, func(s string) { out = append(out, s) })
	return state, out
}

// Finish flushes whatever block is still pending at end of input. No blank
// line is appended after it.
func Finish(state State, opts Options) []string {
	var out []string
	flush(state, opts.Normalized(), nil, func(s string) { out = append(out, s) })
	return out
}

// Reformat runs the full state machine over a file's lines.
func Reformat(lines []string, opts Options) []string {
	out, _ := ReformatStats(lines, opts)
	return out
}

// ReformatStats is Reformat plus a summary of what was seen and produced.
func ReformatStats(lines []string, opts Options) ([]string, Stats) {
	opts = opts.Normalized()
	stats := Stats{InputLines: len(lines)}
	out := make([]string, 0, len(lines))
	emit := func(s string) { out = append(out, s) }

	var state State
	for _, line := range lines {
		state = step(state, line, opts, &stats, emit)
	}
	flush(state, opts, &stats, emit)

	stats.OutputLines = len(out)
	return out, stats
}

func step(state State, line string, opts Options, stats *Stats, emit func(string)) State {
	kind := Classify(line)
	if stats != nil {
		stats.count(kind)
	}
	switch kind {
	case KindCounter, KindTimecode:
		if opts.StripSync {
			if stats != nil {
				stats.StrippedLines++
			}
			return state
		}
		emit(line)
		return state
	case KindBlank:
		flush(state, opts, stats, emit)
		emit(line)
		return State{}
	default:
		text := strings.TrimSpace(line)
		if state.phase == Idle {
			return State{phase: Accumulating, block: text}
		}
		return State{phase: Accumulating, block: state.block + " " + text}
	}
}

func flush(state State, opts Options, stats *Stats, emit func(string)) {
	if state.phase == Idle || state.block == "" {
		return
	}
	if stats != nil {
		stats.Blocks++
	}
	wrapBlock(state.block, opts, func(line wrappedLine) bool {
		if stats != nil && !line.separator {
			stats.WrappedLines++
			if line.marked {
				stats.MarkedLines++
			}
		}
		emit(line.text)
		return true
	})
}

func (s *Stats) count(kind LineKind) {
	switch kind {
	case KindCounter:
		s.Counters++
	case KindTimecode:
		s.Timecodes++
	case KindBlank:
		s.BlankLines++
	default:
		s.TextLines++
	}
}
