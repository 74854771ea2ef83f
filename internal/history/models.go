package history

import "time"

// Run summarizes one wrap batch.
type Run struct {
	ID         string    `json:"id"`
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at,omitzero"`
	DryRun     bool      `json:"dry_run"`
	// OptionsJSON is the serialized caption options the batch ran with.
	OptionsJSON string `json:"options,omitempty"`
	Total       int    `json:"total"`
	Succeeded   int    `json:"succeeded"`
	Failed      int    `json:"failed"`
	Skipped     int    `json:"skipped"`
}

// Finished reports whether the batch reached its end.
func (r Run) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// FileRecord is the outcome of one target file within a run.
type FileRecord struct {
	RunID        string        `json:"run_id"`
	Seq          int           `json:"seq"`
	Path         string        `json:"path"`
	Status       string        `json:"status"`
	ErrorKind    string        `json:"error_kind,omitempty"`
	ErrorMessage string        `json:"error,omitempty"`
	BackupPath   string        `json:"backup_path,omitempty"`
	InputLines   int           `json:"input_lines"`
	OutputLines  int           `json:"output_lines"`
	Blocks       int           `json:"blocks"`
	Duration     time.Duration `json:"duration"`
	RecordedAt   time.Time     `json:"recorded_at"`
}
