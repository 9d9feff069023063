package shard

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dendrascience/mirror-shard/util"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
}

func TestProvision(t *testing.T) {
	base := t.TempDir()
	require.NoError(t, Provision(base, testLogger()))

	for _, k := range Keys() {
		info, err := os.Stat(filepath.Join(base, k.Path()))
		require.NoError(t, err, "bucket %s", k)
		assert.True(t, info.IsDir())
	}

	// second run creates nothing and logs nothing
	var buf bytes.Buffer
	require.NoError(t, Provision(base, slog.New(slog.NewTextHandler(&buf, nil))))
	assert.Empty(t, buf.String())
}

func TestProvision_FileInTheWay(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "A")

	err := Provision(base, testLogger())
	assert.True(t, errors.Is(err, util.ErrExpectedDirectory), "got %v", err)
}

func TestRelocate(t *testing.T) {
	base := t.TempDir()
	names := []string{"serde-1.0.0.crate", "7z-1.0.tar", "Abc.bin", "zyx", "_odd-0.1.0.crate"}
	writeFiles(t, base, names...)
	require.NoError(t, os.Mkdir(filepath.Join(base, "not-a-file"), 0755))

	res, err := Relocate(context.Background(), base, Options{Workers: 3, Logger: testLogger()})
	require.NoError(t, err)
	assert.Equal(t, Result{Moved: 5, Total: 5}, res)

	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(Target(base, name), name))
		require.NoError(t, err, name)
		assert.Equal(t, name, string(data))

		_, err = os.Stat(filepath.Join(base, name))
		assert.True(t, os.IsNotExist(err), "%s should have left the top level", name)
	}
	_, err = os.Stat(filepath.Join(base, "not-a-file"))
	assert.NoError(t, err, "directories are not candidates")
}

func TestRelocate_Idempotent(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "serde-1.0.0.crate", "tokio-1.0.0.crate")

	first, err := Relocate(context.Background(), base, Options{Workers: 2, Logger: testLogger()})
	require.NoError(t, err)
	assert.Equal(t, 2, first.Moved)

	second, err := Relocate(context.Background(), base, Options{Workers: 2, Logger: testLogger()})
	require.NoError(t, err)
	assert.Equal(t, Result{}, second)
}

func TestRelocate_DryRun(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "serde-1.0.0.crate", "serde_json-1.0.0.crate", "7z-1.0.tar", "abc")

	res, err := Relocate(context.Background(), base, Options{Workers: 2, DryRun: true, Logger: testLogger()})
	require.NoError(t, err)
	assert.Zero(t, res.Moved)
	assert.Equal(t, 4, res.Total)
	require.NotNil(t, res.Occupancy)
	assert.Equal(t, 4, res.Occupancy.Total())
	assert.Equal(t, 2, res.Occupancy.ByFirst["S"].Files)
	assert.Equal(t, 2, res.Occupancy.ByBucket[Key{"S", "SE-SH"}].Files)
	assert.Equal(t, 1, res.Occupancy.ByBucket[Key{"0-9", "6-9"}].Files)
	assert.Equal(t, int64(len("7z-1.0.tar")), res.Occupancy.ByBucket[Key{"0-9", "6-9"}].Bytes)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Len(t, entries, 4, "a dry run must not create or move anything")
}

func TestRelocate_MissingBase(t *testing.T) {
	_, err := Relocate(context.Background(), filepath.Join(t.TempDir(), "missing"), Options{Logger: testLogger()})
	assert.Error(t, err)
}

func TestRelocate_FailureIsIsolated(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "serde-1.0.0.crate", "tokio-1.0.0.crate")
	require.NoError(t, Provision(base, testLogger()))
	// a non-empty directory where serde's file should go makes that rename fail
	blocked := filepath.Join(base, "S", "SE-SH", "serde-1.0.0.crate")
	require.NoError(t, os.Mkdir(blocked, 0755))
	writeFiles(t, blocked, "inside")

	res, err := Relocate(context.Background(), base, Options{Workers: 2, Logger: testLogger()})
	require.NoError(t, err)
	assert.Equal(t, Result{Moved: 1, Failed: 1, Total: 2}, res)

	_, err = os.Stat(filepath.Join(base, "T", "TM-TP", "tokio-1.0.0.crate"))
	assert.NoError(t, err)
}

func TestOccupancy_Lines(t *testing.T) {
	occ := NewOccupancy()
	occ.Add(Key{"S", "SE-SH"}, 2048)
	occ.Add(Key{"A", "AA-AD"}, 10)
	occ.Add(Key{"S", "SA-SD"}, 0)

	assert.Equal(t, []string{
		"First-level directory counts:",
		"  A/: 1 files (10 B)",
		"  S/: 2 files (2.0 KiB)",
		"Second-level directory counts:",
		"  A/AA-AD/: 1 files (10 B)",
		"  S/SA-SD/: 1 files (0 B)",
		"  S/SE-SH/: 1 files (2.0 KiB)",
	}, occ.Lines())

	var buf bytes.Buffer
	_, err := occ.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "  S/SE-SH/: 1 files (2.0 KiB)\n")
}

func TestSurvey(t *testing.T) {
	base := t.TempDir()
	writeFiles(t, base, "serde-1.0.0.crate", "7z-1.0.tar")
	_, err := Relocate(context.Background(), base, Options{Workers: 1, Logger: testLogger()})
	require.NoError(t, err)
	writeFiles(t, base, "late-0.1.0.crate")

	occ, stray, err := Survey(base)
	require.NoError(t, err)
	assert.Equal(t, 1, stray)
	assert.Equal(t, 2, occ.Total())
	assert.Equal(t, 1, occ.ByBucket[Key{"S", "SE-SH"}].Files)
}
