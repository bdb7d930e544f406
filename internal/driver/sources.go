package driver

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// SourceExt is the extension of nut source files.
const SourceExt = ".nut"

func hiddenDir(d fs.DirEntry) bool {
	return d.IsDir() && len(d.Name()) > 1 && strings.HasPrefix(d.Name(), ".")
}

// ListSources walks dir and returns its *.nut files in lexical order.
// Hidden directories below dir are not entered.
func ListSources(dir string) ([]string, error) {
	var files []string
	walk := func(path string, d fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case path != dir && hiddenDir(d):
			return filepath.SkipDir
		case !d.IsDir() && filepath.Ext(path) == SourceExt:
			files = append(files, path)
		}
		return nil
	}
	if err := filepath.WalkDir(dir, walk); err != nil {
		return nil, err
	}
	slices.Sort(files)
	return files, nil
}

// ExpandPaths replaces directories with their sources and keeps explicit
// files whatever their extension. A path named twice is checked once, at
// its first position.
func ExpandPaths(paths []string) ([]string, error) {
	out := make([]string, 0, len(paths))
	seen := make(map[string]struct{}, len(paths))
	keep := func(p string) {
		key := filepath.Clean(p)
		if _, dup := seen[key]; !dup {
			seen[key] = struct{}{}
			out = append(out, p)
		}
	}
	for _, p := range paths {
		// unreadable paths reach the loader, which reports them per file
		if info, err := os.Stat(p); err != nil || !info.IsDir() {
			keep(p)
			continue
		}
		files, err := ListSources(p)
		if err != nil {
			return nil, fmt.Errorf("list %s: %w", p, err)
		}
		for _, f := range files {
			keep(f)
		}
	}
	return out, nil
}
