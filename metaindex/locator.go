package metaindex

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"time"
)

// Locator finds archives by filename somewhere below a mirror root.
type Locator interface {
	// Locate returns the path of the archive named filename, or an error
	// wrapping ErrArchiveNotFound.
	Locate(ctx context.Context, filename string) (string, error)
}

// IndexLocator answers lookups from a filename map built by one walk of the
// mirror. It is safe for concurrent use once built.
type IndexLocator struct {
	paths map[string]string
}

// BuildIndex walks root once and maps every file whose name ends in one of
// exts to its path. When the same filename occurs in more than one directory
// the first in lexical walk order is kept. Unreadable subdirectories are
// logged and skipped.
func BuildIndex(ctx context.Context, root string, exts []string, logger *slog.Logger) (*IndexLocator, error) {
	logger.Info(fmt.Sprintf("Building archive index from %s...", root))
	start := time.Now()

	paths := make(map[string]string)
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == root {
				return err
			}
			logger.Warn(fmt.Sprintf("Skipping unreadable path %s: %v", path, err))
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !HasExtension(d.Name(), exts) {
			return nil
		}
		if _, dup := paths[d.Name()]; dup {
			logger.Debug("duplicate archive ignored", "path", path, "kept", paths[d.Name()])
			return nil
		}
		if _, perr := ParseArchiveName(d.Name(), exts); perr != nil {
			logger.Debug("archive name does not parse cleanly", "path", path, "err", perr)
		}
		paths[d.Name()] = path
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking mirror directory: %w", err)
	}

	logger.Info(fmt.Sprintf("Built index of %d archive files in %v", len(paths), time.Since(start)))
	return &IndexLocator{paths: paths}, nil
}

// Len returns the number of indexed archives.
func (l *IndexLocator) Len() int {
	return len(l.paths)
}

// Locate implements Locator.
func (l *IndexLocator) Locate(_ context.Context, filename string) (string, error) {
	if p, ok := l.paths[filename]; ok {
		return p, nil
	}
	return "", fmt.Errorf("%w: %s", ErrArchiveNotFound, filename)
}

// WalkLocator searches the whole mirror on every lookup. It needs no setup
// but each lookup costs a full walk of Root.
type WalkLocator struct {
	Root string
}

var errFound = errors.New("found")

// Locate implements Locator.
func (l WalkLocator) Locate(ctx context.Context, filename string) (string, error) {
	var match string
	err := filepath.WalkDir(l.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == l.Root {
				return err
			}
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if !d.IsDir() && d.Name() == filename {
			match = path
			return errFound
		}
		return nil
	})
	switch {
	case errors.Is(err, errFound):
		return match, nil
	case err != nil:
		return "", err
	default:
		return "", fmt.Errorf("%w: %s", ErrArchiveNotFound, filename)
	}
}
