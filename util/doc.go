// Package util provides the shared plumbing used by the shard and metaindex
// packages.
//
// Key Components:
//
// Worker Pool:
//   - Stream fans independent units of work out over a bounded pool
//     (golang.org/x/sync/errgroup with SetLimit) and returns a channel of
//     per-unit results
//   - Collect folds that channel on the calling goroutine, logging progress
//     on a ticker, so aggregate counters are never written concurrently
//
// File Helpers:
//   - WriteFileAtomic writes through a temporary file in the target directory
//     followed by a rename, so readers never observe a partial sidecar
//   - CountSubfile counts files below a directory and stops early once a
//     threshold is exceeded
//
// Errors:
//   - Sentinel errors shared across packages, checked with errors.Is()
package util
