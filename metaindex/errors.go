package metaindex

import "errors"

// Sentinel errors for package metaindex.
var (
	// Archive name errors
	ErrUnknownExtension     = errors.New("archive name has no known extension")
	ErrNoVersion            = errors.New("archive name has no version")
	ErrAmbiguousArchiveName = errors.New("archive name splits into more than one name and version")

	// ErrArchiveNotFound is returned by a Locator when no archive has the requested name.
	ErrArchiveNotFound = errors.New("archive not found")
)
