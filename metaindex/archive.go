package metaindex

import (
	"fmt"
	"strings"
)

// SidecarSuffix is appended to "<package>-<version>" to name a sidecar.
const SidecarSuffix = ".metadata.json"

// DefaultExtensions are the archive extensions used when none are configured.
var DefaultExtensions = []string{".crate"}

// ArchiveName is the parsed form of "<package>-<version><ext>".
type ArchiveName struct {
	Package string
	Version string
	Ext     string // including the leading dot
}

// String returns the archive filename.
func (a ArchiveName) String() string {
	return a.Package + "-" + a.Version + a.Ext
}

// SidecarName returns the filename of the metadata sidecar for the archive.
func (a ArchiveName) SidecarName() string {
	return a.Package + "-" + a.Version + SidecarSuffix
}

// ParseArchiveName splits filename into package, version and extension.
// The extension must be one of exts (the longest match wins) and the version
// must start with an ASCII digit.
//
// When the name splits more than one way, every reading is returned in order
// of where the version starts, together with an error wrapping
// ErrAmbiguousArchiveName. "sha-1-0.10.0.crate", for example, reads as both
// sha 1-0.10.0 and sha-1 0.10.0.
func ParseArchiveName(filename string, exts []string) ([]ArchiveName, error) {
	ext := ""
	for _, e := range exts {
		if e != "" && len(e) > len(ext) && len(filename) > len(e) && strings.HasSuffix(filename, e) {
			ext = e
		}
	}
	if ext == "" {
		return nil, fmt.Errorf("%w: %q", ErrUnknownExtension, filename)
	}
	stem := strings.TrimSuffix(filename, ext)

	var names []ArchiveName
	for i := 1; i < len(stem)-1; i++ {
		if stem[i] == '-' && isDigit(stem[i+1]) {
			names = append(names, ArchiveName{Package: stem[:i], Version: stem[i+1:], Ext: ext})
		}
	}
	switch len(names) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrNoVersion, filename)
	case 1:
		return names, nil
	default:
		return names, fmt.Errorf("%w: %q", ErrAmbiguousArchiveName, filename)
	}
}

// HasExtension reports whether filename ends in one of exts.
func HasExtension(filename string, exts []string) bool {
	for _, e := range exts {
		if e != "" && strings.HasSuffix(filename, e) {
			return true
		}
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
