package cli

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// skippedDirs are never descended into when walking for helmwave files
var skippedDirs = []string{"node_modules", "vendor", ".git"}

// FindHelmwaveFiles expands paths into the helmwave files to validate.
// Files named explicitly are always included; directories are walked and
// only files matching one of patterns are picked up. The result is sorted
// and free of duplicates.
func FindHelmwaveFiles(paths []string, patterns []string) ([]string, error) {
	if len(paths) == 0 {
		paths = []string{"."}
	}

	seen := make(map[string]struct{})
	var files []string
	add := func(path string) {
		path = filepath.Clean(path)
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("cannot access %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (strings.HasPrefix(d.Name(), ".") || slices.Contains(skippedDirs, d.Name())) {
					return filepath.SkipDir
				}
				return nil
			}
			if MatchesHelmwaveFile(path, patterns) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", root, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

// MatchesHelmwaveFile reports whether the base name of path matches any pattern
func MatchesHelmwaveFile(path string, patterns []string) bool {
	name := filepath.Base(path)
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, name); ok {
			return true
		}
	}
	return false
}
