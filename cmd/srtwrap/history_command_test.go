package main

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"srtwrap/internal/history"
	"srtwrap/internal/testsupport"
)

func TestHistoryListsAndShowsRuns(t *testing.T) {
	env := setupCLITestEnv(t)
	path := testsupport.WriteFile(t, filepath.Join(env.dataDir, "movie.srt"), testsupport.SampleSRT)

	if _, _, err := runCLI(t, []string{"wrap", path}, env.configPath); err != nil {
		t.Fatalf("wrap: %v", err)
	}

	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil || len(runs) != 1 {
		t.Fatalf("ListRuns: %v (%d runs)", err, len(runs))
	}
	runID := runs[0].ID

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, shortRunID(runID))
	requireContains(t, out, "write")

	out, _, err = runCLI(t, []string{"history", "--run", runID[:8]}, env.configPath)
	if err != nil {
		t.Fatalf("history --run: %v", err)
	}
	requireContains(t, out, "== Run "+runID+" ==")
	requireContains(t, out, path)

	out, _, err = runCLI(t, []string{"history", "--run", runID, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history --run --json: %v", err)
	}
	var payload struct {
		Run   history.Run          `json:"run"`
		Files []history.FileRecord `json:"files"`
	}
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if payload.Run.ID != runID || len(payload.Files) != 1 || payload.Files[0].Status != "ok" {
		t.Fatalf("unexpected payload: %+v", payload)
	}
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"history"}, env.configPath)
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No batches recorded")

	out, _, err = runCLI(t, []string{"history", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("history --json: %v", err)
	}
	requireContains(t, out, "[]")
}

func TestWrapWithoutHistoryRecordsNothing(t *testing.T) {
	env := setupCLITestEnv(t, testsupport.WithoutHistory())
	path := testsupport.WriteSRT(t, env.dataDir, "a.srt", "hello")

	if _, _, err := runCLI(t, []string{"wrap", path}, env.configPath); err != nil {
		t.Fatalf("wrap: %v", err)
	}
	store := testsupport.MustOpenHistory(t, env.cfg)
	runs, err := store.ListRuns(context.Background(), 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 0 {
		t.Fatalf("expected no recorded runs, got %d", len(runs))
	}
}
