package srtfile

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Extension is the file suffix picked up when a directory is given as a target.
const Extension = ".srt"

// ExpandTargets replaces directory entries with the subtitle files they
// contain (non-recursive, sorted by name, symlinks followed) and drops
// duplicates while keeping first-seen order. Paths that cannot be inspected
// are kept as-is so the caller can report them per file. The second result
// lists directories that contributed no files.
func ExpandTargets(paths []string) ([]string, []string) {
	seen := make(map[string]struct{}, len(paths))
	out := make([]string, 0, len(paths))
	var empty []string
	add := func(p string) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil || !info.IsDir() {
			add(p)
			continue
		}
		entries, err := os.ReadDir(p)
		if err != nil {
			add(p)
			continue
		}
		var names []string
		for _, entry := range entries {
			if !strings.EqualFold(filepath.Ext(entry.Name()), Extension) {
				continue
			}
			// Stat follows symlinks; Type() on the entry would not.
			target, err := os.Stat(filepath.Join(p, entry.Name()))
			if err != nil || !target.Mode().IsRegular() {
				continue
			}
			names = append(names, entry.Name())
		}
		if len(names) == 0 {
			empty = append(empty, p)
			continue
		}
		sort.Strings(names)
		for _, name := range names {
			add(filepath.Join(p, name))
		}
	}
	return out, empty
}
