package util

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

func TestCountSubfile(t *testing.T) {
	testCases := []struct {
		Name          string
		FilesToCreate int
		Target        int
		Count         int
		Overage       bool
		Error         error
	}{{Name: "no files", FilesToCreate: 0, Target: 1, Count: 0, Overage: false},
		{Name: "subdirs with target 1", FilesToCreate: 15, Target: 1, Count: 2, Overage: true},
		{Name: "target higher than count with one subdir", FilesToCreate: 15, Target: 16, Count: 15, Overage: false},
		{Name: "target higher than count with many subdirs", FilesToCreate: 1000, Target: 1001, Count: 1000, Overage: false},
		{Name: "nested subdirs over limit", FilesToCreate: 35, Target: 25, Count: 26, Overage: true},
		{Name: "over limit", FilesToCreate: 5, Target: 1, Count: 2, Overage: true}}
	for _, c := range testCases {
		t.Run(c.Name, func(t *testing.T) {
			dir := t.TempDir()
			var path = dir
			for i := 0; i < c.FilesToCreate/10; i++ {
				path = filepath.Join(path, fmt.Sprintf("%d", i))
				os.Mkdir(path, 0755)
				for w := 0; w < 10; w++ {
					os.Create(filepath.Join(path, fmt.Sprintf("%d.file", w)))
				}
			}
			for i := 0; i < c.FilesToCreate%10; i++ {
				os.Create(filepath.Join(dir, fmt.Sprintf("%d.file", i)))
			}
			count, overage, err := CountSubfile(dir, c.Target)
			if count != c.Count {
				t.Errorf("Expected Count to be %d but got %d", c.Count, count)
			}
			if overage != c.Overage {
				t.Errorf("Expected Overage to be %v but got %v", c.Overage, overage)
			}
			if err != c.Error {
				t.Errorf("Expected Error to be %v but got %v", c.Error, err)
			}
		})
	}
	t.Run("nonexistent path", func(t *testing.T) {
		dir := t.TempDir()
		var path = filepath.Join(dir, "nonexistent")
		_, _, err := CountSubfile(path, 100)
		if !os.IsNotExist(err) {
			t.Errorf("Expected error of type IsNotExist but got %v", err)
		}
	})
	t.Run("file instead of directory", func(t *testing.T) {
		dir := t.TempDir()
		var path = filepath.Join(dir, "file")
		os.Create(path)
		_, _, err := CountSubfile(path, 100)
		if err != ErrExpectedDirectory {
			t.Errorf("Expected error of type %v but got %v", ErrExpectedDirectory, err)
		}
	})
}

func TestRequireDir(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "file")
	os.WriteFile(file, []byte("x"), 0644)

	if err := RequireDir(dir); err != nil {
		t.Errorf("RequireDir(%q) = %v, want nil", dir, err)
	}
	if err := RequireDir(filepath.Join(dir, "missing")); !errors.Is(err, ErrMissingRoot) {
		t.Errorf("RequireDir(missing) = %v, want ErrMissingRoot", err)
	}
	if err := RequireDir(file); !errors.Is(err, ErrExpectedDirectory) {
		t.Errorf("RequireDir(file) = %v, want ErrExpectedDirectory", err)
	}
}
