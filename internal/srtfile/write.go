package srtfile

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultBackupSuffix is appended to a target's path to name its backup.
const DefaultBackupSuffix = ".backup"

// BackupPath returns the sibling backup location for path.
func BackupPath(path, suffix string) string {
	if suffix == "" {
		suffix = DefaultBackupSuffix
	}
	return path + suffix
}

// WriteBackup stores the unmodified source bytes next to the source and
// returns the backup path. An existing backup is overwritten.
func WriteBackup(src *Source, suffix string) (string, error) {
	dst := BackupPath(src.Path, suffix)
	if err := writeFileMode(dst, src.Raw, modeOrDefault(src.Mode)); err != nil {
		return "", fmt.Errorf("write backup %s: %w", dst, err)
	}
	return dst, nil
}

// WriteTarget replaces the content of path. With atomic set the data goes to
// a temporary file in the same directory which is then renamed over path;
// otherwise path is truncated and rewritten directly.
func WriteTarget(path string, data []byte, mode fs.FileMode, atomic bool) error {
	mode = modeOrDefault(mode)
	if atomic {
		if err := writeAtomic(path, data, mode); err != nil {
			return fmt.Errorf("replace target %s: %w", path, err)
		}
		return nil
	}
	if err := writeFileMode(path, data, mode); err != nil {
		return fmt.Errorf("write target %s: %w", path, err)
	}
	return nil
}

func writeFileMode(path string, data []byte, mode fs.FileMode) error {
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		_ = out.Close()
		return err
	}
	return out.Close()
}

func writeAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".srtwrap-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	// Best effort: persist the rename itself.
	_ = syncDir(dir)
	return nil
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}

func modeOrDefault(mode fs.FileMode) fs.FileMode {
	if mode == 0 {
		return 0o644
	}
	return mode
}
