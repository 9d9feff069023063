package shard

import (
	"fmt"
	"os"
	"path/filepath"
)

// Survey walks an already sharded tree two levels deep and records every file
// found in a bucket directory. Top-level files that have not been relocated
// are counted separately in stray. Directories that are not buckets of the
// layout are ignored.
func Survey(base string) (occ *Occupancy, stray int, err error) {
	occ = NewOccupancy()
	top, err := Candidates(base)
	if err != nil {
		return nil, 0, err
	}
	stray = len(top)

	for _, k := range Keys() {
		dir := filepath.Join(base, k.Path())
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, stray, fmt.Errorf("surveying %s: %w", dir, err)
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			occ.Add(k, info.Size())
		}
	}
	return occ, stray, nil
}
