// Package logging assembles structured slog loggers and formatting helpers used
// across srtwrap.
//
// It owns the configurable console/JSON handlers and centralizes level and
// output plumbing. Context helpers tag log lines with the batch run ID so
// every file outcome can be traced back to one invocation. The package also
// provides a no-op logger for tests and wiring code that cannot fail.
//
// Prefer these constructors over hand-rolled slog setup so new components emit
// data with the same shape as the rest of the tool.
package logging
