// Package history persists a ledger of wrap batches in SQLite.
//
// Every batch gets a run row keyed by its run ID plus one row per target file
// with the outcome, error classification and line counts. The `srtwrap
// history` command reads the ledger back; the batch processor only appends.
package history
