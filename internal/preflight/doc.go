// Package preflight provides readiness checks for the directories and local
// resources srtwrap depends on.
//
// The CLI "srtwrap config validate" command runs RunAll and prints one status
// line per check. Checks never modify target files; the history check opens
// (and, when missing, creates) the ledger database.
package preflight
