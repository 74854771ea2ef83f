// Package srtfile reads subtitle files into lines and writes processed
// output back to disk.
//
// Read keeps the original bytes alongside the split lines so a backup can be
// written byte for byte, detects whether the file uses CRLF or LF line
// terminators, and drops a leading UTF-8 byte order mark before
// classification (Source.Render puts it back). Targets are overwritten
// either in place or through a temporary file renamed over the original.
package srtfile
