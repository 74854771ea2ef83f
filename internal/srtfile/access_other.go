//go:build !unix

package srtfile

// CheckWritable is a no-op on platforms without access(2); the writes report
// their own errors.
func CheckWritable(string) error { return nil }
