package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"srtwrap/internal/caption"
	"srtwrap/internal/config"
	"srtwrap/internal/history"
	"srtwrap/internal/logging"
	"srtwrap/internal/srtfile"
)

// Options configures one batch.
type Options struct {
	Caption      caption.Options
	BackupSuffix string
	// Atomic replaces targets through a temporary file and rename instead of
	// truncating them in place.
	Atomic bool
	// DryRun reformats and reports without writing backups or targets.
	DryRun bool
	// LockPath is the advisory lock held for the duration of the batch.
	// Empty disables locking.
	LockPath string
}

// OptionsFromConfig builds batch options from the loaded configuration.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Caption:      cfg.CaptionOptions(),
		BackupSuffix: cfg.Output.BackupSuffix,
		Atomic:       cfg.AtomicWrites(),
		LockPath:     cfg.LockPath(),
	}
}

// Recorder persists batch outcomes. *history.Store implements it.
type Recorder interface {
	StartRun(ctx context.Context, run history.Run) error
	RecordFile(ctx context.Context, rec history.FileRecord) error
	FinishRun(ctx context.Context, run history.Run) error
}

// Processor runs batches sequentially.
type Processor struct {
	opts     Options
	logger   *slog.Logger
	recorder Recorder
	now      func() time.Time
	newRunID func() string
}

// NewProcessor constructs a processor. A nil logger discards output and a
// nil recorder skips the history ledger.
func NewProcessor(opts Options, logger *slog.Logger, recorder Recorder) *Processor {
	if logger == nil {
		logger = logging.NewNop()
	}
	opts.Caption = opts.Caption.Normalized()
	if opts.BackupSuffix == "" {
		opts.BackupSuffix = srtfile.DefaultBackupSuffix
	}
	return &Processor{
		opts:     opts,
		logger:   logging.NewComponentLogger(logger, "batch"),
		recorder: recorder,
		now:      time.Now,
		newRunID: uuid.NewString,
	}
}

// Run processes every target in order and returns the batch report. Targets
// may be files or directories; directories contribute their *.srt files.
// Cancellation is observed between files only, so a file that has started is
// always finished.
func (p *Processor) Run(ctx context.Context, targets []string) (*Report, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := p.opts.Caption.Validate(); err != nil {
		return nil, fmt.Errorf("invalid caption options: %w", err)
	}

	if p.opts.LockPath != "" {
		lock := flock.New(p.opts.LockPath)
		ok, err := lock.TryLock()
		if err != nil {
			return nil, fmt.Errorf("acquire batch lock: %w", err)
		}
		if !ok {
			return nil, ErrLocked
		}
		defer func() {
			if err := lock.Unlock(); err != nil {
				p.logger.Warn("failed to release batch lock", logging.Error(err))
			}
		}()
	}

	report := &Report{
		RunID:     p.newRunID(),
		StartedAt: p.now(),
		DryRun:    p.opts.DryRun,
		Options:   p.opts.Caption,
	}
	ctx = logging.ContextWithRunID(ctx, report.RunID)
	logger := logging.WithContext(ctx, p.logger)

	paths, emptyDirs := srtfile.ExpandTargets(resolvePaths(targets))
	for _, dir := range emptyDirs {
		logger.Debug("directory contains no subtitle files", logging.String(logging.FieldPath, dir))
	}
	logger.Info("batch started",
		logging.Int("files", len(paths)),
		logging.Bool("dry_run", p.opts.DryRun),
		logging.Int("max_width", p.opts.Caption.MaxWidth),
	)

	recorder := p.recorder
	if recorder != nil {
		if err := recorder.StartRun(ctx, p.historyRun(report, len(paths))); err != nil {
			logging.WarnWithContext(logger, "history unavailable for this batch", "history_start_failed",
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "check the state directory or disable output.history"),
				logging.String(logging.FieldImpact, "batch continues without a ledger entry"),
			)
			recorder = nil
		}
	}

	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			report.Canceled = true
			report.Unprocessed = append(report.Unprocessed, paths[i:]...)
			logger.Warn("batch canceled", logging.Int("remaining", len(paths)-i), logging.Error(err))
			break
		}

		res := p.processFile(path)
		res.Seq = i + 1
		report.Results = append(report.Results, res)
		p.logResult(logger, res)

		if recorder != nil {
			if err := recorder.RecordFile(ctx, p.historyRecord(report.RunID, res)); err != nil {
				logger.Warn("failed to record file result", logging.String(logging.FieldPath, path), logging.Error(err))
			}
		}
	}

	report.FinishedAt = p.now()
	if recorder != nil {
		run := p.historyRun(report, len(paths))
		// The batch context may already be canceled; the summary still belongs in the ledger.
		if err := recorder.FinishRun(context.WithoutCancel(ctx), run); err != nil {
			logger.Warn("failed to record batch summary", logging.Error(err))
		}
	}

	logger.Info("batch finished",
		logging.Int("succeeded", report.Succeeded()),
		logging.Int("failed", report.Failed()),
		logging.Int("skipped", report.Skipped()),
		logging.Duration("elapsed", report.FinishedAt.Sub(report.StartedAt)),
	)
	return report, nil
}

// processFile runs the read, backup, overwrite contract for one target.
func (p *Processor) processFile(path string) Result {
	start := p.now()
	res := Result{Path: path}
	finish := func(err error) Result {
		res.Duration = p.now().Sub(start)
		if err != nil {
			res.Status = StatusFailed
			res.ErrorKind = KindOf(err)
			res.Error = err.Error()
			res.err = err
		}
		return res
	}

	src, err := srtfile.Read(path)
	if err != nil {
		return finish(&FileError{Kind: KindUnreadableSource, Path: path, Err: err})
	}

	lines, stats := caption.ReformatStats(src.Lines, p.opts.Caption)
	res.Stats = stats
	output := src.Render(lines)

	if p.opts.DryRun {
		res.Status = StatusSkipped
		if err := srtfile.CheckWritable(path); err != nil {
			res.Warning = err.Error()
		}
		return finish(nil)
	}

	backup, err := srtfile.WriteBackup(src, p.opts.BackupSuffix)
	if err != nil {
		return finish(&FileError{Kind: KindUnwritableBackup, Path: path, Err: err})
	}
	res.BackupPath = backup

	if err := srtfile.WriteTarget(path, output, src.Mode, p.opts.Atomic); err != nil {
		return finish(&FileError{Kind: KindUnwritableTarget, Path: path, Err: err})
	}

	res.Status = StatusOK
	return finish(nil)
}

func (p *Processor) logResult(logger *slog.Logger, res Result) {
	pathAttr := logging.String(logging.FieldPath, res.Path)
	switch res.Status {
	case StatusFailed:
		logging.WarnWithContext(logger, "file failed", "file_"+res.ErrorKind,
			pathAttr,
			logging.String("error_kind", res.ErrorKind),
			logging.Error(res.err),
			logging.String(logging.FieldErrorHint, hintFor(res.ErrorKind)),
			logging.String(logging.FieldImpact, impactFor(res.ErrorKind)),
		)
		return
	case StatusSkipped:
		if res.Warning != "" {
			logging.WarnWithContext(logger, "dry run preflight failed", "dry_run_preflight",
				pathAttr,
				logging.String("reason", res.Warning),
				logging.String(logging.FieldImpact, "a real run would fail for this file"),
			)
		}
		logger.Info("file checked", pathAttr, logging.Int("output_lines", res.Stats.OutputLines))
	default:
		logger.Info("file rewrapped", pathAttr,
			logging.Int("blocks", res.Stats.Blocks),
			logging.String("backup", res.BackupPath),
		)
	}
	logger.Debug("file stats",
		pathAttr,
		logging.Int("input_lines", res.Stats.InputLines),
		logging.Int("output_lines", res.Stats.OutputLines),
		logging.Int("wrapped_lines", res.Stats.WrappedLines),
		logging.Int("marked_lines", res.Stats.MarkedLines),
		logging.Int("stripped_lines", res.Stats.StrippedLines),
		logging.Duration("elapsed", res.Duration),
	)
}

func (p *Processor) historyRun(report *Report, total int) history.Run {
	run := history.Run{
		ID:         report.RunID,
		StartedAt:  report.StartedAt,
		FinishedAt: report.FinishedAt,
		DryRun:     report.DryRun,
		Total:      total,
		Succeeded:  report.Succeeded(),
		Failed:     report.Failed(),
		Skipped:    report.Skipped(),
	}
	if data, err := json.Marshal(report.Options); err == nil {
		run.OptionsJSON = string(data)
	}
	return run
}

func (p *Processor) historyRecord(runID string, res Result) history.FileRecord {
	return history.FileRecord{
		RunID:        runID,
		Seq:          res.Seq,
		Path:         res.Path,
		Status:       string(res.Status),
		ErrorKind:    res.ErrorKind,
		ErrorMessage: firstNonEmpty(res.Error, res.Warning),
		BackupPath:   res.BackupPath,
		InputLines:   res.Stats.InputLines,
		OutputLines:  res.Stats.OutputLines,
		Blocks:       res.Stats.Blocks,
		Duration:     res.Duration,
		RecordedAt:   p.now(),
	}
}

// resolvePaths expands "~" and makes every target absolute. A path that
// cannot be resolved is passed through so it fails as an unreadable source.
func resolvePaths(targets []string) []string {
	out := make([]string, 0, len(targets))
	for _, target := range targets {
		resolved, err := config.ExpandPath(target)
		if err != nil || resolved == "" {
			out = append(out, target)
			continue
		}
		out = append(out, resolved)
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
