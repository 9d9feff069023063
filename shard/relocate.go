package shard

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dendrascience/mirror-shard/util"
)

// Options configures Relocate.
type Options struct {
	// Workers bounds how many moves run at once. Values below 1 mean 1.
	Workers int
	// DryRun tallies bucket occupancy instead of touching the filesystem.
	DryRun bool
	// Logger receives per-move errors and progress. Required.
	Logger *slog.Logger
}

// Result summarizes a Relocate run.
type Result struct {
	// Moved is the number of files relocated. Always zero for a dry run.
	Moved int
	// Failed is the number of moves that returned an error.
	Failed int
	// Total is the number of candidate files found at the top level.
	Total int
	// Occupancy is where the files would land. Only set for a dry run.
	Occupancy *Occupancy
}

// Candidate is one top-level file and the bucket it belongs in.
type Candidate struct {
	Name string
	Size int64
	Key  Key
}

// Candidates lists the regular files directly inside base (symlinks that
// resolve to regular files included) together with their buckets. The list
// is a snapshot: files created afterwards are not part of it.
func Candidates(base string) ([]Candidate, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", base, err)
	}
	var files []Candidate
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		info, err := os.Stat(filepath.Join(base, e.Name()))
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, Candidate{Name: e.Name(), Size: info.Size(), Key: Classify(e.Name())})
	}
	return files, nil
}

// Relocate moves every top-level file of base into its bucket. Buckets are
// provisioned first. Each move fails in isolation: errors are logged and
// counted, and the remaining moves continue.
//
// With opts.DryRun set nothing is created or moved; the result carries the
// projected Occupancy and Moved stays zero.
func Relocate(ctx context.Context, base string, opts Options) (Result, error) {
	logger := opts.Logger
	files, err := Candidates(base)
	if err != nil {
		return Result{}, err
	}
	res := Result{Total: len(files)}
	logger.Info(fmt.Sprintf("Found %d files to organize", len(files)))

	if opts.DryRun {
		logger.Info("DRY RUN: No files will be moved")
		res.Occupancy = NewOccupancy()
		for _, f := range files {
			res.Occupancy.Add(f.Key, f.Size)
		}
		return res, nil
	}

	if err := Provision(base, logger); err != nil {
		return res, err
	}

	results := util.Stream(ctx, opts.Workers, files, func(_ context.Context, f Candidate) bool {
		return move(base, f, logger)
	})
	util.Collect(results, len(files), logger, "Moving files", func(ok bool) {
		if ok {
			res.Moved++
		} else {
			res.Failed++
		}
	})

	logger.Info(fmt.Sprintf("Successfully moved %d out of %d files", res.Moved, res.Total))
	return res, nil
}

func move(base string, f Candidate, logger *slog.Logger) bool {
	src := filepath.Join(base, f.Name)
	dst := filepath.Join(base, f.Key.Path(), f.Name)
	if err := os.Rename(src, dst); err != nil {
		logger.Error(fmt.Sprintf("Error moving %s to %s: %v", src, dst, err))
		return false
	}
	return true
}
