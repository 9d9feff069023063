// Package util provides utility functions for mirror-shard.
package util

import "errors"

// Sentinel errors for package util.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// File and directory errors
	ErrExpectedFile      = errors.New("expected file, got directory")
	ErrExpectedDirectory = errors.New("expected directory but got file")

	// ErrMissingRoot is returned when a required root directory does not exist.
	ErrMissingRoot = errors.New("required root directory does not exist")
)
