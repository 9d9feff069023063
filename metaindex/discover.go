package metaindex

import (
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"path/filepath"
	"strings"
	"time"
)

// Filter decides which files under an index root are package metadata files.
type Filter struct {
	// ExcludeDirs are path.Match patterns. A directory below the root whose
	// name matches any of them is not descended into.
	ExcludeDirs []string
	// SkipSuffixes are filename suffixes that are never metadata.
	SkipSuffixes []string
	// SkipNames are exact filenames that are never metadata.
	SkipNames []string
}

// DefaultFilter skips version control, Python tooling and documentation
// commonly found alongside a checked-out index, plus the index's config.json.
func DefaultFilter() Filter {
	return Filter{
		ExcludeDirs:  []string{".git", ".venv", "site-packages", "pip", "python*", "__pycache__"},
		SkipSuffixes: []string{".py", ".pyc", ".pyd", ".dll", ".exe", ".bat", ".sh", ".md", ".txt", ".html"},
		SkipNames:    []string{"config.json"},
	}
}

// Validate reports malformed exclude patterns.
func (f Filter) Validate() error {
	for _, p := range f.ExcludeDirs {
		if _, err := path.Match(p, ""); err != nil {
			return fmt.Errorf("exclude pattern %q: %w", p, err)
		}
	}
	return nil
}

// ExcludesDir reports whether a directory with this base name is skipped.
func (f Filter) ExcludesDir(name string) bool {
	for _, p := range f.ExcludeDirs {
		if ok, _ := path.Match(p, name); ok {
			return true
		}
	}
	return false
}

// SkipsFile reports whether a file with this base name is not metadata.
func (f Filter) SkipsFile(name string) bool {
	for _, n := range f.SkipNames {
		if name == n {
			return true
		}
	}
	for _, s := range f.SkipSuffixes {
		if strings.HasSuffix(name, s) {
			return true
		}
	}
	return false
}

// FindMetadataFiles walks root and returns, in lexical order, every file the
// filter accepts. The root itself is never matched against ExcludeDirs.
func FindMetadataFiles(root string, f Filter, logger *slog.Logger) ([]string, error) {
	logger.Info(fmt.Sprintf("Finding metadata files in %s...", root))
	start := time.Now()

	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == root {
				return err
			}
			logger.Warn(fmt.Sprintf("Skipping unreadable path %s: %v", p, err))
			return nil
		}
		if d.IsDir() {
			if p != root && f.ExcludesDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !(d.Type().IsRegular() || d.Type()&fs.ModeSymlink != 0) || f.SkipsFile(d.Name()) {
			return nil
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking index directory: %w", err)
	}

	logger.Debug(fmt.Sprintf("Walked index in %v, %d metadata files", time.Since(start), len(files)))
	return files, nil
}
