package shard

import (
	"path/filepath"
	"unicode"
	"unicode/utf8"
)

const (
	// GroupSize is the number of second letters covered by one letter group.
	GroupSize = 4

	// DigitLevel is the first level for names starting with a digit.
	DigitLevel = "0-9"

	// OtherLevel is the first and only second level for everything else.
	OtherLevel = "OTHER"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// Key is a two-level bucket.
type Key struct {
	First  string
	Second string
}

// Path returns the bucket as a relative filesystem path.
func (k Key) Path() string {
	return filepath.Join(k.First, k.Second)
}

// String returns the bucket as "First/Second" regardless of platform.
func (k Key) String() string {
	return k.First + "/" + k.Second
}

// Group is one second-level bucket and the characters it covers.
type Group struct {
	Name    string
	Members string
}

// Contains reports whether c falls in the group.
func (g Group) Contains(c rune) bool {
	for _, m := range g.Members {
		if m == c {
			return true
		}
	}
	return false
}

var digitGroups = []Group{
	{Name: "0-2", Members: "012"},
	{Name: "3-5", Members: "345"},
	{Name: "6-9", Members: "6789"},
}

var otherGroups = []Group{{Name: OtherLevel}}

var letterGroups = func() map[string][]Group {
	m := make(map[string][]Group, len(alphabet))
	for _, first := range alphabet {
		f := string(first)
		var groups []Group
		for i := 0; i < len(alphabet); i += GroupSize {
			chunk := alphabet[i:min(i+GroupSize, len(alphabet))]
			groups = append(groups, Group{
				Name:    f + chunk[:1] + "-" + f + chunk[len(chunk)-1:],
				Members: chunk,
			})
		}
		m[f] = groups
	}
	return m
}()

// FirstLevels returns every first-level directory name in layout order:
// A through Z, then 0-9, then OTHER.
func FirstLevels() []string {
	levels := make([]string, 0, len(alphabet)+2)
	for _, c := range alphabet {
		levels = append(levels, string(c))
	}
	return append(levels, DigitLevel, OtherLevel)
}

// Groups returns the second-level groups of a first level, or nil if first
// is not a first level.
func Groups(first string) []Group {
	switch first {
	case DigitLevel:
		return digitGroups
	case OtherLevel:
		return otherGroups
	default:
		return letterGroups[first]
	}
}

// Keys enumerates every bucket in layout order.
func Keys() []Key {
	var keys []Key
	for _, first := range FirstLevels() {
		for _, g := range Groups(first) {
			keys = append(keys, Key{First: first, Second: g.Name})
		}
	}
	return keys
}

// Classify returns the bucket for a filename. It never fails: names that
// start with neither an ASCII letter nor a digit, including the empty name
// and invalid UTF-8, land in OTHER/OTHER.
func Classify(name string) Key {
	if name == "" {
		return Key{First: OtherLevel, Second: OtherLevel}
	}

	c1, size := utf8.DecodeRuneInString(name)
	c1 = unicode.ToUpper(c1)

	switch {
	case isASCIIUpper(c1):
		first := string(c1)
		c2 := 'A'
		if rest := name[size:]; rest != "" {
			r, _ := utf8.DecodeRuneInString(rest)
			c2 = unicode.ToUpper(r)
		}
		groups := letterGroups[first]
		if isASCIIUpper(c2) {
			for _, g := range groups {
				if g.Contains(c2) {
					return Key{First: first, Second: g.Name}
				}
			}
		}
		return Key{First: first, Second: groups[0].Name}

	case unicode.IsDigit(c1):
		for _, g := range digitGroups {
			if g.Contains(c1) {
				return Key{First: DigitLevel, Second: g.Name}
			}
		}
		// non-ASCII digits
		return Key{First: DigitLevel, Second: digitGroups[0].Name}

	default:
		return Key{First: OtherLevel, Second: OtherLevel}
	}
}

// Target returns the directory under base that name belongs in.
func Target(base, name string) string {
	return filepath.Join(base, Classify(name).Path())
}

func isASCIIUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}
