//go:build unix

package srtfile

import (
	"fmt"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// CheckWritable reports whether the current user may rewrite path and create
// its backup in the same directory. It is a preflight only; the writes
// themselves still report their own errors.
func CheckWritable(path string) error {
	if err := unix.Access(path, unix.R_OK|unix.W_OK); err != nil {
		return fmt.Errorf("access %s: %w", path, err)
	}
	dir := filepath.Dir(path)
	if err := unix.Access(dir, unix.W_OK|unix.X_OK); err != nil {
		return fmt.Errorf("access %s: %w", dir, err)
	}
	return nil
}
