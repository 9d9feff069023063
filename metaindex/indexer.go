package metaindex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/dendrascience/mirror-shard/util"
)

// Options configures an Indexer.
type Options struct {
	// Workers bounds how many metadata files are processed at once.
	Workers int
	// DryRun counts matches without writing sidecars.
	DryRun bool
	// Overwrite rewrites sidecars that already exist. Otherwise an existing
	// sidecar is left alone and the record still counts as a success.
	Overwrite bool
	// Extensions are tried in order when resolving an archive.
	Extensions []string
	// Filter selects metadata files under the index root.
	Filter Filter
	// Logger receives every per-file and per-line diagnostic. Required.
	Logger *slog.Logger
}

// Tally counts the version records of one metadata file.
type Tally struct {
	// Success is the number of records whose archive was found and whose
	// sidecar was written (or would be, for a dry run).
	Success int
	// Attempted is the number of records that carried a version.
	Attempted int
}

// Result aggregates an Indexer run.
type Result struct {
	Tally
	// Files is the number of metadata files dispatched.
	Files int
	// FailedFiles is the number of metadata files that could not be processed
	// at all and contributed nothing to the tally.
	FailedFiles int
}

// Indexer matches metadata records to archives and writes sidecars.
type Indexer struct {
	locator Locator
	opts    Options
}

// New returns an Indexer resolving archives through locator.
func New(locator Locator, opts Options) *Indexer {
	if len(opts.Extensions) == 0 {
		opts.Extensions = DefaultExtensions
	}
	return &Indexer{locator: locator, opts: opts}
}

type fileResult struct {
	tally Tally
	err   error
}

// Run processes every metadata file under indexRoot, one unit of work per
// file. A file that fails contributes (0, 0) and the run continues; only a
// failure to walk indexRoot itself is returned.
func (ix *Indexer) Run(ctx context.Context, indexRoot string) (Result, error) {
	logger := ix.opts.Logger
	files, err := FindMetadataFiles(indexRoot, ix.opts.Filter, logger)
	if err != nil {
		return Result{}, err
	}
	logger.Info(fmt.Sprintf("Found %d metadata files to process", len(files)))
	if ix.opts.DryRun {
		logger.Info("DRY RUN: No files will be created")
	}

	results := util.Stream(ctx, ix.opts.Workers, files, func(ctx context.Context, path string) fileResult {
		return ix.processUnit(ctx, path)
	})

	res := Result{Files: len(files)}
	util.Collect(results, len(files), logger, "Processing metadata files", func(r fileResult) {
		if r.err != nil {
			res.FailedFiles++
			return
		}
		res.Success += r.tally.Success
		res.Attempted += r.tally.Attempted
	})
	return res, nil
}

// processUnit is the per-file boundary: errors and panics end up logged and
// the file counts for nothing.
func (ix *Indexer) processUnit(ctx context.Context, path string) (r fileResult) {
	defer func() {
		if p := recover(); p != nil {
			r = fileResult{err: fmt.Errorf("panic: %v", p)}
			ix.opts.Logger.Error(fmt.Sprintf("Error processing metadata file %s: %v", path, r.err))
		}
	}()
	tally, err := ix.ProcessFile(ctx, path)
	if err != nil {
		ix.opts.Logger.Error(fmt.Sprintf("Error processing metadata file %s: %v", path, err))
		return fileResult{err: err}
	}
	return fileResult{tally: tally}
}

// ProcessFile handles one metadata file whose base name is the package name.
// Malformed lines, records without a version and records whose archive is
// missing are logged and skipped without failing the file. The returned
// error is reserved for the file as a whole, e.g. when it cannot be read.
func (ix *Indexer) ProcessFile(ctx context.Context, path string) (Tally, error) {
	var t Tally
	pkg := filepath.Base(path)

	content, err := os.ReadFile(path)
	if err != nil {
		return t, err
	}

	for _, line := range strings.Split(string(content), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		// cheap structural filter, not validation
		if !strings.HasPrefix(line, "{") || !strings.HasSuffix(line, "}") {
			continue
		}

		version, err := recordVersion(line)
		if err != nil {
			ix.opts.Logger.Error(fmt.Sprintf("Error parsing JSON in %s: %v: %s", path, err, line))
			continue
		}
		if version == "" {
			continue
		}
		t.Attempted++

		if ix.processRecord(ctx, pkg, version, line) {
			t.Success++
		}
	}
	return t, nil
}

func (ix *Indexer) processRecord(ctx context.Context, pkg, version, line string) bool {
	logger := ix.opts.Logger

	name, archive, err := ix.locate(ctx, pkg, version)
	if errors.Is(err, ErrArchiveNotFound) {
		logger.Warn(fmt.Sprintf("Could not find archive file for %s-%s", pkg, version))
		return false
	}
	if err != nil {
		logger.Error(fmt.Sprintf("Error locating archive for %s-%s: %v", pkg, version, err))
		return false
	}

	if ix.opts.DryRun {
		return true
	}

	sidecar := filepath.Join(filepath.Dir(archive), name.SidecarName())
	if !ix.opts.Overwrite {
		if _, err := os.Stat(sidecar); err == nil {
			logger.Debug("sidecar already present", "path", sidecar)
			return true
		}
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, []byte(line), "", "  "); err != nil {
		logger.Error(fmt.Sprintf("Error formatting metadata for %s-%s: %v", pkg, version, err))
		return false
	}
	buf.WriteByte('\n')
	if err := util.WriteFileAtomic(sidecar, buf.Bytes(), 0o644); err != nil {
		logger.Error(fmt.Sprintf("Error writing metadata file for %s-%s: %v", pkg, version, err))
		return false
	}
	return true
}

// locate tries each configured extension in order.
func (ix *Indexer) locate(ctx context.Context, pkg, version string) (ArchiveName, string, error) {
	for _, ext := range ix.opts.Extensions {
		name := ArchiveName{Package: pkg, Version: version, Ext: ext}
		p, err := ix.locator.Locate(ctx, name.String())
		if errors.Is(err, ErrArchiveNotFound) {
			continue
		}
		return name, p, err
	}
	return ArchiveName{}, "", ErrArchiveNotFound
}

// recordVersion parses a JSON record and returns its "vers" field. A missing,
// empty or non-string version yields "" and no error.
func recordVersion(line string) (string, error) {
	var rec struct {
		Vers json.RawMessage `json:"vers"`
	}
	if err := json.Unmarshal([]byte(line), &rec); err != nil {
		return "", err
	}
	var version string
	if len(rec.Vers) == 0 || json.Unmarshal(rec.Vers, &version) != nil {
		return "", nil
	}
	return version, nil
}
