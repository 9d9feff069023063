package util

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestStream_AllUnitsProduceOneResult(t *testing.T) {
	units := make([]int, 100)
	for i := range units {
		units[i] = i
	}

	results := Stream(context.Background(), 8, units, func(_ context.Context, n int) int {
		return n * 2
	})

	sum := 0
	seen := Collect(results, len(units), discardLogger(), "test", func(r int) {
		sum += r
	})

	assert.Equal(t, len(units), seen)
	assert.Equal(t, 2*(99*100/2), sum)
}

func TestStream_RespectsWidth(t *testing.T) {
	const width = 3
	var inFlight, peak atomic.Int32

	units := make([]struct{}, 20)
	results := Stream(context.Background(), width, units, func(_ context.Context, _ struct{}) bool {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(5 * time.Millisecond)
		inFlight.Add(-1)
		return true
	})
	Collect(results, len(units), discardLogger(), "test", func(bool) {})

	assert.LessOrEqual(t, peak.Load(), int32(width))
	assert.Positive(t, peak.Load())
}

func TestStream_ZeroWidthRunsSerially(t *testing.T) {
	results := Stream(context.Background(), 0, []string{"a", "b"}, func(_ context.Context, s string) string {
		return s
	})
	var got []string
	Collect(results, 2, discardLogger(), "test", func(s string) { got = append(got, s) })
	assert.ElementsMatch(t, []string{"a", "b"}, got)
}

func TestStream_NoUnits(t *testing.T) {
	results := Stream(context.Background(), 4, nil, func(_ context.Context, s string) string { return s })
	n := Collect(results, 0, discardLogger(), "test", func(string) {})
	assert.Zero(t, n)
}
