package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"srtwrap/internal/history"
	"srtwrap/internal/testsupport"
)

func TestOpenCreatesDatabaseInStateDir(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)

	if got, want := store.Path(), filepath.Join(cfg.Paths.StateDir, "history.db"); got != want {
		t.Fatalf("Path() = %q, want %q", got, want)
	}

	// Reopening an initialized database passes the version check.
	if err := store.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	again, err := history.Open(cfg)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	_ = again.Close()
}

func TestRunLifecycle(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	started := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	run := history.Run{ID: "run-1", StartedAt: started, Total: 2, OptionsJSON: `{"max_width":42}`}
	if err := store.StartRun(ctx, run); err != nil {
		t.Fatalf("StartRun: %v", err)
	}

	records := []history.FileRecord{
		{RunID: "run-1", Seq: 1, Path: "/subs/a.srt", Status: "ok", BackupPath: "/subs/a.srt.backup", InputLines: 7, OutputLines: 9, Blocks: 2, Duration: 15 * time.Millisecond},
		{RunID: "run-1", Seq: 2, Path: "/subs/b.srt", Status: "failed", ErrorKind: "unreadable_source", ErrorMessage: "no such file"},
	}
	for _, rec := range records {
		if err := store.RecordFile(ctx, rec); err != nil {
			t.Fatalf("RecordFile(%s): %v", rec.Path, err)
		}
	}

	run.FinishedAt = started.Add(time.Second)
	run.Succeeded = 1
	run.Failed = 1
	if err := store.FinishRun(ctx, run); err != nil {
		t.Fatalf("FinishRun: %v", err)
	}

	got, err := store.GetRun(ctx, "run-1")
	if err != nil {
		t.Fatalf("GetRun: %v", err)
	}
	if !got.Finished() || got.Succeeded != 1 || got.Failed != 1 || got.Total != 2 {
		t.Fatalf("unexpected run: %+v", got)
	}
	if !got.StartedAt.Equal(started) {
		t.Fatalf("StartedAt = %v, want %v", got.StartedAt, started)
	}
	if got.OptionsJSON != `{"max_width":42}` {
		t.Fatalf("OptionsJSON = %q", got.OptionsJSON)
	}

	files, err := store.RunFiles(ctx, "run-1")
	if err != nil {
		t.Fatalf("RunFiles: %v", err)
	}
	if len(files) != 2 {
		t.Fatalf("expected 2 file records, got %d", len(files))
	}
	if files[0].Path != "/subs/a.srt" || files[0].Duration != 15*time.Millisecond || files[0].BackupPath == "" {
		t.Fatalf("unexpected first record: %+v", files[0])
	}
	if files[1].ErrorKind != "unreadable_source" || files[1].BackupPath != "" {
		t.Fatalf("unexpected second record: %+v", files[1])
	}
}

func TestListRunsNewestFirst(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"first", "second", "third"} {
		// Sub-second offsets exercise lexical ordering of stored timestamps.
		started := base.Add(time.Duration(i) * 100 * time.Millisecond)
		if err := store.StartRun(ctx, history.Run{ID: id, StartedAt: started}); err != nil {
			t.Fatalf("StartRun(%s): %v", id, err)
		}
	}

	runs, err := store.ListRuns(ctx, 0)
	if err != nil {
		t.Fatalf("ListRuns: %v", err)
	}
	if len(runs) != 3 || runs[0].ID != "third" || runs[2].ID != "first" {
		t.Fatalf("unexpected order: %+v", runs)
	}
	if runs[0].Finished() {
		t.Fatal("unfinished run reported as finished")
	}

	limited, err := store.ListRuns(ctx, 1)
	if err != nil {
		t.Fatalf("ListRuns(1): %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "third" {
		t.Fatalf("unexpected limited runs: %+v", limited)
	}
}

func TestGetRunPrefixAndMissing(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	ctx := context.Background()

	for _, id := range []string{"abc123", "abd456"} {
		if err := store.StartRun(ctx, history.Run{ID: id}); err != nil {
			t.Fatalf("StartRun(%s): %v", id, err)
		}
	}

	run, err := store.GetRun(ctx, "abc")
	if err != nil {
		t.Fatalf("GetRun prefix: %v", err)
	}
	if run.ID != "abc123" {
		t.Fatalf("GetRun prefix = %q", run.ID)
	}
	if _, err := store.GetRun(ctx, "ab"); err == nil {
		t.Fatal("expected ambiguous prefix error")
	}
	if _, err := store.GetRun(ctx, "zzz"); !errors.Is(err, history.ErrRunNotFound) {
		t.Fatalf("missing run error = %v, want ErrRunNotFound", err)
	}
}

func TestStartRunRequiresID(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	store := testsupport.MustOpenHistory(t, cfg)
	if err := store.StartRun(context.Background(), history.Run{}); err == nil {
		t.Fatal("expected error for empty run id")
	}
}
