// Package batch runs the reformat pipeline over a list of subtitle files.
//
// Files are handled one at a time, in argument order: read the whole file,
// reformat it, write the untouched content to a sibling backup, then
// overwrite the target. A failure is classified as a FileError, recorded in
// the batch Report, and the next file is processed. Only problems that affect
// the batch as a whole (invalid options, a held batch lock) are returned as
// errors from Processor.Run.
package batch
