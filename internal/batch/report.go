package batch

import (
	"time"

	"srtwrap/internal/caption"
)

// Status is the outcome of one file.
type Status string

const (
	StatusOK      Status = "ok"
	StatusFailed  Status = "failed"
	StatusSkipped Status = "skipped"
)

// Result is the outcome of one target file.
type Result struct {
	Seq       int    `json:"seq"`
	Path      string `json:"path"`
	Status    Status `json:"status"`
	ErrorKind string `json:"error_kind,omitempty"`
	Error     string `json:"error,omitempty"`
	// Warning carries dry-run preflight problems that would fail a real run.
	Warning    string        `json:"warning,omitempty"`
	BackupPath string        `json:"backup_path,omitempty"`
	Stats      caption.Stats `json:"stats"`
	Duration   time.Duration `json:"duration"`

	err error
}

// Err returns the classified failure, if any.
func (r Result) Err() error {
	return r.err
}

// Report is the outcome of one batch.
type Report struct {
	RunID      string          `json:"run_id"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt time.Time       `json:"finished_at"`
	DryRun     bool            `json:"dry_run"`
	Options    caption.Options `json:"options"`
	Results    []Result        `json:"results"`
	// Canceled is set when the context ended between files; Unprocessed lists
	// the targets that were never opened.
	Canceled    bool     `json:"canceled,omitempty"`
	Unprocessed []string `json:"unprocessed,omitempty"`
}

// Succeeded counts files rewritten successfully.
func (r *Report) Succeeded() int { return r.count(StatusOK) }

// Failed counts files with a FileError.
func (r *Report) Failed() int { return r.count(StatusFailed) }

// Skipped counts files reformatted without writing (dry run).
func (r *Report) Skipped() int { return r.count(StatusSkipped) }

// HasFailures reports whether any file failed.
func (r *Report) HasFailures() bool {
	return r.Failed() > 0
}

// Errors returns the per-file errors in processing order.
func (r *Report) Errors() []error {
	var errs []error
	for _, res := range r.Results {
		if res.err != nil {
			errs = append(errs, res.err)
		}
	}
	return errs
}

func (r *Report) count(status Status) int {
	if r == nil {
		return 0
	}
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}
