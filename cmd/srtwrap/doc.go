// Package main hosts the srtwrap CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once per invocation, builds
// the logger, and hands targets to the batch processor. Reformatting rules and
// file handling live in the internal packages; commands here only translate
// flags into options and render reports.
package main
