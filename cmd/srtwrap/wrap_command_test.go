package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"srtwrap/internal/batch"
	"srtwrap/internal/testsupport"
)

func TestWrapRewritesFiles(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteFile(t, filepath.Join(env.dataDir, "movie.srt"), testsupport.SampleSRT)

	out, _, err := runCLI(t, []string{"wrap", path}, env.configPath)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	requireContains(t, out, "[OK] 2 blocks")
	requireContains(t, out, "1 ok, 0 failed, 0 skipped")

	got := testsupport.ReadFile(t, path)
	requireContains(t, got, "This is a long caption line that will not\nfit in forty two characters\n\n\n2\n")
	if backup := testsupport.ReadFile(t, path+".backup"); backup != testsupport.SampleSRT {
		t.Fatalf("backup content = %q", backup)
	}

	if _, err := os.Stat(env.cfg.LogPath()); err != nil {
		t.Fatalf("expected log file: %v", err)
	}
}

func TestWrapRequiresTargets(t *testing.T) {
	env := setupCLITestEnv(t)
	_, _, err := runCLI(t, []string{"wrap"}, env.configPath)
	if !errors.Is(err, errNoTargets) {
		t.Fatalf("wrap without targets error = %v, want errNoTargets", err)
	}
}

func TestWrapReportsFailuresAndContinues(t *testing.T) {
	env := setupCLITestEnv(t)
	missing := filepath.Join(env.dataDir, "missing.srt")
	ok := testsupport.WriteSRT(t, env.dataDir, "ok.srt", "1", "hello there")

	out, _, err := runCLI(t, []string{"wrap", missing, ok}, env.configPath)
	if err == nil {
		t.Fatal("expected error when a file fails")
	}
	requireContains(t, err.Error(), "1 of 2 files failed")
	requireContains(t, out, "[ERROR] unreadable_source")
	requireContains(t, out, "1 ok, 1 failed")

	if _, err := os.Stat(ok + ".backup"); err != nil {
		t.Fatalf("second file should still be processed: %v", err)
	}
}

func TestWrapFlagsOverrideConfig(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteSRT(t, env.dataDir, "a.srt", "1", "00:00:01,000 --> 00:00:02,000", "one two three four", "")

	_, _, err := runCLI(t, []string{"wrap", "--width", "10", "--mark-suffix", "+", "--strip-sync", path}, env.configPath)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}
	want := "one two+\nthree+\n\nfour\n"
	if got := testsupport.ReadFile(t, path); got != want {
		t.Fatalf("target = %q, want %q", got, want)
	}
}

func TestWrapDryRunJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteFile(t, filepath.Join(env.dataDir, "movie.srt"), testsupport.SampleSRT)

	out, _, err := runCLI(t, []string{"wrap", "--dry-run", "--json", path}, env.configPath)
	if err != nil {
		t.Fatalf("wrap: %v", err)
	}

	var report batch.Report
	if err := json.Unmarshal([]byte(out), &report); err != nil {
		t.Fatalf("decode report: %v\n%s", err, out)
	}
	if !report.DryRun || len(report.Results) != 1 || report.Results[0].Status != batch.StatusSkipped {
		t.Fatalf("unexpected report: %+v", report)
	}
	if report.Options.MaxWidth != 42 {
		t.Fatalf("options not reported: %+v", report.Options)
	}
	if got := testsupport.ReadFile(t, path); got != testsupport.SampleSRT {
		t.Fatal("dry run modified the target")
	}
}

func TestWrapRejectsInvalidFlags(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteSRT(t, env.dataDir, "a.srt", "x")

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "negative width", args: []string{"--width=-3"}, want: "--width must be positive"},
		{name: "zero width", args: []string{"--width=0"}, want: "--width must be positive"},
		{name: "zero pair size", args: []string{"--pair-size=0"}, want: "--pair-size must be positive"},
		{name: "multiline suffix", args: []string{"--mark-suffix", "a\nb"}, want: "invalid options"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"wrap"}, tt.args...)
			_, _, err := runCLI(t, append(args, path), env.configPath)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error containing %q, got %v", tt.want, err)
			}
			if got := testsupport.ReadFile(t, path); got != "x" {
				t.Fatal("file modified despite invalid options")
			}
			if _, err := os.Stat(path + ".backup"); !os.IsNotExist(err) {
				t.Fatal("backup written despite invalid options")
			}
		})
	}
}
