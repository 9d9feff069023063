package shard

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dendrascience/mirror-shard/util"
)

// Provision creates every bucket directory under base that does not already
// exist. It is safe to call repeatedly. A bucket path occupied by something
// other than a directory is an error wrapping util.ErrExpectedDirectory.
func Provision(base string, logger *slog.Logger) error {
	for _, first := range FirstLevels() {
		if err := ensureDir(filepath.Join(base, first), logger); err != nil {
			return err
		}
		for _, g := range Groups(first) {
			if err := ensureDir(filepath.Join(base, first, g.Name), logger); err != nil {
				return err
			}
		}
	}
	return nil
}

func ensureDir(path string, logger *slog.Logger) error {
	info, err := os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return nil
	case err == nil:
		return fmt.Errorf("provisioning %s: %w", path, util.ErrExpectedDirectory)
	case !os.IsNotExist(err):
		return fmt.Errorf("provisioning %s: %w", path, err)
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("provisioning %s: %w", path, err)
	}
	logger.Info("Created directory: " + path)
	return nil
}
