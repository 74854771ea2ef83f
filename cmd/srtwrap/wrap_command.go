package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"srtwrap/internal/batch"
	"srtwrap/internal/config"
	"srtwrap/internal/history"
	"srtwrap/internal/logging"
)

var errNoTargets = errors.New("no targets specified")

type wrapFlags struct {
	width      int
	pairSize   int
	markSplits bool
	markSuffix string
	stripSync  bool
	atomic     bool
	dryRun     bool
	noHistory  bool
	jsonOutput bool
}

func newWrapCommand(ctx *commandContext) *cobra.Command {
	var flags wrapFlags

	cmd := &cobra.Command{
		Use:   "wrap <path>...",
		Short: "Rewrap captions in subtitle files, keeping a .backup copy of each",
		Long: `Rewrap every caption block of the given SubRip files to the configured width.

Each file is read whole, its original content is written to <path>.backup, and
the file is then overwritten with the rewrapped lines. Directories contribute
their *.srt files. A file that cannot be processed is reported and the rest of
the batch continues.`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return errNoTargets
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			return runWrap(cmd, ctx, cfg, flags, args)
		},
	}

	cmd.Flags().IntVarP(&flags.width, "width", "w", 0, "Exclusive maximum caption line width in characters")
	cmd.Flags().IntVar(&flags.pairSize, "pair-size", 0, "Wrapped lines per group before a blank separator")
	cmd.Flags().BoolVar(&flags.markSplits, "mark-splits", false, "Append the mark suffix to lines split by the width limit")
	cmd.Flags().StringVar(&flags.markSuffix, "mark-suffix", "", "Suffix appended to split lines (implies --mark-splits)")
	cmd.Flags().BoolVar(&flags.stripSync, "strip-sync", false, "Drop counter and timecode lines from the output")
	cmd.Flags().BoolVar(&flags.atomic, "atomic", false, "Replace targets via temporary file and rename")
	cmd.Flags().BoolVarP(&flags.dryRun, "dry-run", "n", false, "Reformat and report without writing any file")
	cmd.Flags().BoolVar(&flags.noHistory, "no-history", false, "Do not record this batch in the history ledger")
	cmd.Flags().BoolVar(&flags.jsonOutput, "json", false, "Output the batch report as JSON")
	return cmd
}

func runWrap(cmd *cobra.Command, ctx *commandContext, cfg *config.Config, flags wrapFlags, args []string) error {
	if err := validateWrapFlags(cmd, flags); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}
	opts := wrapOptions(cmd, cfg, flags)
	if err := opts.Caption.Validate(); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger, err := ctx.newLogger(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	var recorder batch.Recorder
	if cfg.Output.History && !flags.noHistory {
		store, err := history.Open(cfg)
		if err != nil {
			logging.WarnWithContext(logger, "history ledger unavailable", "history_open_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "delete the history database or set output.history = false"),
				logging.String(logging.FieldImpact, "batch runs without a ledger entry"),
			)
		} else {
			defer store.Close()
			recorder = store
		}
	}

	signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	report, err := batch.NewProcessor(opts, logger, recorder).Run(signalCtx, args)
	if err != nil {
		return err
	}

	if flags.jsonOutput {
		if err := writeJSON(cmd, report); err != nil {
			return err
		}
	} else {
		out := cmd.OutOrStdout()
		for _, line := range wrapReportLines(report, shouldColorize(out)) {
			fmt.Fprintln(out, line)
		}
	}

	if report.Canceled {
		return context.Canceled
	}
	if report.HasFailures() {
		return fmt.Errorf("%d of %d files failed", report.Failed(), len(report.Results))
	}
	return nil
}

// validateWrapFlags rejects explicit non-positive sizes; the caption options
// would otherwise treat zero as "use the default".
func validateWrapFlags(cmd *cobra.Command, flags wrapFlags) error {
	if cmd.Flags().Changed("width") && flags.width <= 0 {
		return fmt.Errorf("--width must be positive, got %d", flags.width)
	}
	if cmd.Flags().Changed("pair-size") && flags.pairSize <= 0 {
		return fmt.Errorf("--pair-size must be positive, got %d", flags.pairSize)
	}
	return nil
}

// wrapOptions layers explicitly set flags over the configuration.
func wrapOptions(cmd *cobra.Command, cfg *config.Config, flags wrapFlags) batch.Options {
	opts := batch.OptionsFromConfig(cfg)
	changed := cmd.Flags().Changed
	if changed("width") {
		opts.Caption.MaxWidth = flags.width
	}
	if changed("pair-size") {
		opts.Caption.PairSize = flags.pairSize
	}
	if changed("mark-splits") {
		opts.Caption.MarkSplits = flags.markSplits
	}
	if changed("mark-suffix") {
		opts.Caption.MarkSuffix = flags.markSuffix
		opts.Caption.MarkSplits = true
	}
	if changed("strip-sync") {
		opts.Caption.StripSync = flags.stripSync
	}
	if changed("atomic") {
		opts.Atomic = flags.atomic
	}
	opts.DryRun = flags.dryRun
	return opts
}

func wrapReportLines(report *batch.Report, colorize bool) []string {
	lines := make([]string, 0, len(report.Results)+2)
	for _, res := range report.Results {
		lines = append(lines, renderStatusLine(res.Path, resultKind(res), resultMessage(res), colorize))
	}
	for _, path := range report.Unprocessed {
		lines = append(lines, renderStatusLine(path, statusWarn, "not processed (canceled)", colorize))
	}
	summary := fmt.Sprintf("%d ok, %d failed, %d skipped (run %s)",
		report.Succeeded(), report.Failed(), report.Skipped(), shortRunID(report.RunID))
	lines = append(lines, "", summary)
	return lines
}

func resultKind(res batch.Result) statusKind {
	switch res.Status {
	case batch.StatusOK:
		return statusOK
	case batch.StatusFailed:
		return statusError
	default:
		if res.Warning != "" {
			return statusWarn
		}
		return statusInfo
	}
}

func resultMessage(res batch.Result) string {
	switch res.Status {
	case batch.StatusFailed:
		var fileErr *batch.FileError
		if errors.As(res.Err(), &fileErr) {
			return fmt.Sprintf("%s: %v", fileErr.Kind, fileErr.Err)
		}
		return res.Error
	case batch.StatusSkipped:
		msg := fmt.Sprintf("dry run: %d blocks, %d -> %d lines", res.Stats.Blocks, res.Stats.InputLines, res.Stats.OutputLines)
		if res.Warning != "" {
			msg += "; " + res.Warning
		}
		return msg
	default:
		return fmt.Sprintf("%d blocks, %d -> %d lines", res.Stats.Blocks, res.Stats.InputLines, res.Stats.OutputLines)
	}
}

func shortRunID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
