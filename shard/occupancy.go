package shard

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
)

// Tally is a file count and byte total.
type Tally struct {
	Files int
	Bytes int64
}

// Occupancy counts files per first level and per bucket.
type Occupancy struct {
	ByFirst  map[string]Tally
	ByBucket map[Key]Tally
}

// NewOccupancy returns an empty Occupancy.
func NewOccupancy() *Occupancy {
	return &Occupancy{
		ByFirst:  make(map[string]Tally),
		ByBucket: make(map[Key]Tally),
	}
}

// Add records one file of the given size in bucket k.
func (o *Occupancy) Add(k Key, size int64) {
	f := o.ByFirst[k.First]
	f.Files++
	f.Bytes += size
	o.ByFirst[k.First] = f

	b := o.ByBucket[k]
	b.Files++
	b.Bytes += size
	o.ByBucket[k] = b
}

// Total returns the number of files recorded.
func (o *Occupancy) Total() int {
	total := 0
	for _, t := range o.ByFirst {
		total += t.Files
	}
	return total
}

// Buckets returns the occupied buckets sorted by their "First/Second" name.
func (o *Occupancy) Buckets() []Key {
	keys := slices.Collect(maps.Keys(o.ByBucket))
	slices.SortFunc(keys, func(a, b Key) int {
		return strings.Compare(a.String(), b.String())
	})
	return keys
}

// Lines renders the occupancy as report lines, first levels then buckets,
// each section sorted by name.
func (o *Occupancy) Lines() []string {
	lines := []string{"First-level directory counts:"}
	for _, first := range slices.Sorted(maps.Keys(o.ByFirst)) {
		t := o.ByFirst[first]
		lines = append(lines, fmt.Sprintf("  %s/: %d files (%s)", first, t.Files, humanize.IBytes(uint64(t.Bytes))))
	}
	lines = append(lines, "Second-level directory counts:")
	for _, k := range o.Buckets() {
		t := o.ByBucket[k]
		lines = append(lines, fmt.Sprintf("  %s/: %d files (%s)", k, t.Files, humanize.IBytes(uint64(t.Bytes))))
	}
	return lines
}

// WriteTo writes Lines to w, one per line.
func (o *Occupancy) WriteTo(w io.Writer) (int64, error) {
	var n int64
	for _, line := range o.Lines() {
		m, err := fmt.Fprintln(w, line)
		n += int64(m)
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
