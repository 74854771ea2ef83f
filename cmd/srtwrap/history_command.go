package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"srtwrap/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var runID string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded wrap batches",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return fmt.Errorf("open history: %w", err)
			}
			defer store.Close()

			if strings.TrimSpace(runID) != "" {
				return showRun(cmd, store, runID, jsonOutput)
			}
			return listRuns(cmd, store, limit, jsonOutput)
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 20, "Maximum number of runs to list (0 for all)")
	cmd.Flags().StringVar(&runID, "run", "", "Show per-file results for a run ID or unique prefix")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")
	return cmd
}

func listRuns(cmd *cobra.Command, store *history.Store, limit int, jsonOutput bool) error {
	runs, err := store.ListRuns(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if jsonOutput {
		if runs == nil {
			runs = []history.Run{}
		}
		return writeJSON(cmd, runs)
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No batches recorded")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	var files, ok, failed, skipped int
	for _, run := range runs {
		rows = append(rows, []string{
			shortRunID(run.ID),
			formatTimestamp(run.StartedAt),
			runMode(run),
			strconv.Itoa(run.Total),
			strconv.Itoa(run.Succeeded),
			strconv.Itoa(run.Failed),
			strconv.Itoa(run.Skipped),
		})
		files += run.Total
		ok += run.Succeeded
		failed += run.Failed
		skipped += run.Skipped
	}
	fmt.Fprintln(out, tableSpec{
		Headers: []string{"Run", "Started", "Mode", "Files", "OK", "Failed", "Skipped"},
		Rows:    rows,
		Aligns:  []columnAlignment{alignLeft, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
		Footer: []string{
			fmt.Sprintf("%d runs", len(runs)), "", "",
			strconv.Itoa(files), strconv.Itoa(ok), strconv.Itoa(failed), strconv.Itoa(skipped),
		},
	}.render())
	return nil
}

func showRun(cmd *cobra.Command, store *history.Store, runID string, jsonOutput bool) error {
	ctx := cmd.Context()
	run, err := store.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	files, err := store.RunFiles(ctx, run.ID)
	if err != nil {
		return err
	}

	if jsonOutput {
		if files == nil {
			files = []history.FileRecord{}
		}
		return writeJSON(cmd, struct {
			Run   history.Run          `json:"run"`
			Files []history.FileRecord `json:"files"`
		}{Run: run, Files: files})
	}

	out := cmd.OutOrStdout()
	colorize := shouldColorize(out)
	for _, line := range renderSectionHeader("Run "+run.ID, colorize) {
		fmt.Fprintln(out, line)
	}
	fmt.Fprintf(out, "Started:  %s\n", formatTimestamp(run.StartedAt))
	if run.Finished() {
		fmt.Fprintf(out, "Finished: %s (%s)\n", formatTimestamp(run.FinishedAt), run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond))
	} else {
		fmt.Fprintln(out, "Finished: no (interrupted)")
	}
	fmt.Fprintf(out, "Dry run:  %s\n", yesNo(run.DryRun))
	if run.OptionsJSON != "" {
		fmt.Fprintf(out, "Options:  %s\n", run.OptionsJSON)
	}

	if len(files) == 0 {
		fmt.Fprintln(out, "No files recorded")
		return nil
	}
	rows := make([][]string, 0, len(files))
	for _, rec := range files {
		detail := rec.ErrorKind
		if rec.ErrorMessage != "" && rec.ErrorKind == "" {
			detail = rec.ErrorMessage
		}
		rows = append(rows, []string{
			strconv.Itoa(rec.Seq),
			rec.Path,
			rec.Status,
			fmt.Sprintf("%d -> %d", rec.InputLines, rec.OutputLines),
			strconv.Itoa(rec.Blocks),
			detail,
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Path", "Status", "Lines", "Blocks", "Detail"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignLeft},
	))
	return nil
}

func runMode(run history.Run) string {
	switch {
	case run.DryRun:
		return "dry-run"
	case !run.Finished():
		return "interrupted"
	default:
		return "write"
	}
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
