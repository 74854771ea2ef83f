package batch

import (
	"errors"
	"fmt"
)

// Per-file failure kinds.
const (
	KindUnreadableSource = "unreadable_source"
	KindUnwritableBackup = "unwritable_backup"
	KindUnwritableTarget = "unwritable_target"
)

// ErrLocked is returned when another batch holds the lock in the state directory.
var ErrLocked = errors.New("another srtwrap batch is already running")

// ErrorClassifier allows errors to declare their classification for reporting.
type ErrorClassifier interface {
	ErrorKind() string
}

// FileError describes why one target could not be processed. The target is
// left unmodified for KindUnreadableSource and KindUnwritableBackup; for
// KindUnwritableTarget the backup already holds the original content.
type FileError struct {
	Kind string
	Path string
	Err  error
}

func (e *FileError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s (%s): %v", e.Path, describeKind(e.Kind), e.Err)
}

func (e *FileError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ErrorKind implements ErrorClassifier.
func (e *FileError) ErrorKind() string {
	if e == nil {
		return ""
	}
	return e.Kind
}

// KindOf returns the classification of err, or "" when it carries none.
func KindOf(err error) string {
	var classifier ErrorClassifier
	if errors.As(err, &classifier) {
		return classifier.ErrorKind()
	}
	return ""
}

func describeKind(kind string) string {
	switch kind {
	case KindUnreadableSource:
		return "unable to read source"
	case KindUnwritableBackup:
		return "unable to write backup"
	case KindUnwritableTarget:
		return "unable to write target"
	default:
		return kind
	}
}

func hintFor(kind string) string {
	switch kind {
	case KindUnreadableSource:
		return "check that the path exists and is a readable file"
	case KindUnwritableBackup:
		return "check write permission on the directory containing the file"
	case KindUnwritableTarget:
		return "restore from the .backup copy if the target is damaged"
	default:
		return ""
	}
}

func impactFor(kind string) string {
	if kind == KindUnwritableTarget {
		return "target may be truncated; backup holds the original"
	}
	return "file left unchanged"
}
