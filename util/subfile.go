package util

import (
	"os"
	"path/filepath"
)

// CountSubfile counts the files below path, recursing into subdirectories.
// Counting stops as soon as the count exceeds target, in which case overage
// is true and count is target+1.
func CountSubfile(path string, target int) (count int, overage bool, err error) {
	var info os.FileInfo
	info, err = os.Stat(path)
	if err != nil {
		return
	}
	if !info.IsDir() {
		err = ErrExpectedDirectory
		return
	}
	var files []os.DirEntry
	files, err = os.ReadDir(path)
	if err != nil {
		return
	}
	for _, f := range files {
		if !f.IsDir() {
			count++
			if count > target {
				return count, true, nil
			}
			continue
		}
		c, o, e := CountSubfile(filepath.Join(path, f.Name()), target-count)
		count += c
		if e != nil {
			return count, false, e
		}
		if o {
			return count, true, nil
		}
	}
	return
}

// RequireDir returns an error wrapping ErrMissingRoot if path does not exist,
// or ErrExpectedDirectory if it exists but is not a directory.
func RequireDir(path string) error {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return &PathError{Path: path, Err: ErrMissingRoot}
	}
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &PathError{Path: path, Err: ErrExpectedDirectory}
	}
	return nil
}

// PathError records an error and the path that caused it.
type PathError struct {
	Path string
	Err  error
}

func (e *PathError) Error() string { return e.Path + ": " + e.Err.Error() }

func (e *PathError) Unwrap() error { return e.Err }
