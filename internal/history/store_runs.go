package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// StartRun inserts the run row before any file is processed.
func (s *Store) StartRun(ctx context.Context, run Run) error {
	if strings.TrimSpace(run.ID) == "" {
		return errors.New("start run: id is required")
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}
	err := s.exec(ctx,
		`INSERT INTO runs (id, started_at, dry_run, options_json, total)
         VALUES (?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		boolToInt(run.DryRun),
		nullableString(run.OptionsJSON),
		run.Total,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

// FinishRun stores the final counters for a run.
func (s *Store) FinishRun(ctx context.Context, run Run) error {
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	err := s.exec(ctx,
		`UPDATE runs SET finished_at = ?, total = ?, succeeded = ?, failed = ?, skipped = ?
         WHERE id = ?`,
		formatTime(run.FinishedAt),
		run.Total,
		run.Succeeded,
		run.Failed,
		run.Skipped,
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

// RecordFile appends one file outcome to a run.
func (s *Store) RecordFile(ctx context.Context, rec FileRecord) error {
	if rec.RecordedAt.IsZero() {
		rec.RecordedAt = time.Now()
	}
	err := s.exec(ctx,
		`INSERT INTO file_results (
            run_id, seq, path, status, error_kind, error_message, backup_path,
            input_lines, output_lines, blocks, duration_ms, recorded_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.RunID,
		rec.Seq,
		rec.Path,
		rec.Status,
		nullableString(rec.ErrorKind),
		nullableString(rec.ErrorMessage),
		nullableString(rec.BackupPath),
		rec.InputLines,
		rec.OutputLines,
		rec.Blocks,
		rec.Duration.Milliseconds(),
		formatTime(rec.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("insert file result: %w", err)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, dry_run, options_json, total, succeeded, failed, skipped`

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	ctx = ensureContext(ctx)
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun fetches a single run. The ID may be a unique prefix.
func (s *Store) GetRun(ctx context.Context, id string) (Run, error) {
	ctx = ensureContext(ctx)
	id = strings.TrimSpace(id)
	if id == "" {
		return Run{}, ErrRunNotFound
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE id = ? OR id LIKE ? ORDER BY id LIMIT 2`,
		id, stripLikeWildcards(id)+"%")
	if err != nil {
		return Run{}, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return Run{}, err
		}
		if run.ID == id {
			return run, nil
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	case 1:
		return matches[0], nil
	default:
		return Run{}, fmt.Errorf("run id prefix %q is ambiguous", id)
	}
}

// RunFiles returns the file outcomes of a run in processing order.
func (s *Store) RunFiles(ctx context.Context, runID string) ([]FileRecord, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, seq, path, status, error_kind, error_message, backup_path,
                input_lines, output_lines, blocks, duration_ms, recorded_at
         FROM file_results WHERE run_id = ? ORDER BY seq`,
		runID)
	if err != nil {
		return nil, fmt.Errorf("list file results: %w", err)
	}
	defer rows.Close()

	var records []FileRecord
	for rows.Next() {
		var (
			rec                                 FileRecord
			errorKind, errorMessage, backupPath sql.NullString
			recordedAt                          sql.NullString
			durationMS                          int64
		)
		if err := rows.Scan(
			&rec.RunID, &rec.Seq, &rec.Path, &rec.Status,
			&errorKind, &errorMessage, &backupPath,
			&rec.InputLines, &rec.OutputLines, &rec.Blocks, &durationMS, &recordedAt,
		); err != nil {
			return nil, fmt.Errorf("scan file result: %w", err)
		}
		rec.ErrorKind = errorKind.String
		rec.ErrorMessage = errorMessage.String
		rec.BackupPath = backupPath.String
		rec.Duration = time.Duration(durationMS) * time.Millisecond
		rec.RecordedAt = parseTime(recordedAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate file results: %w", err)
	}
	return records, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run                   Run
		startedAt, finishedAt sql.NullString
		optionsJSON           sql.NullString
		dryRun                int
	)
	if err := row.Scan(
		&run.ID, &startedAt, &finishedAt, &dryRun, &optionsJSON,
		&run.Total, &run.Succeeded, &run.Failed, &run.Skipped,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	run.StartedAt = parseTime(startedAt)
	run.FinishedAt = parseTime(finishedAt)
	run.DryRun = dryRun != 0
	run.OptionsJSON = optionsJSON.String
	return run, nil
}

func stripLikeWildcards(value string) string {
	replacer := strings.NewReplacer("%", "", "_", "")
	return replacer.Replace(value)
}
