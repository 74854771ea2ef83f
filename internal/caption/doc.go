// Package caption reformats the text payload of SubRip subtitle files.
//
// Classify tags each raw line as a counter, timecode, blank, or text line.
// Step folds one line into the reformat State and returns the lines that are
// ready for output; consecutive text lines accumulate into a caption block
// that is flushed through Wrap when a blank line or the end of input is
// reached. Wrap packs a block greedily into display lines narrower than
// Options.MaxWidth and groups them with an empty separator line after every
// Options.PairSize lines.
//
// Everything here is pure: no I/O, no errors, no shared state. Callers own
// the State value and may run any number of independent reformats at once.
package caption
