package util

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"
)

// Stream runs work over every unit with at most workers units in flight and
// returns a channel carrying one result per unit, in completion order. The
// channel is closed once every unit has finished. Callers must drain it.
//
// A width below 1 is treated as 1. Units never see each other's results;
// aggregation belongs to whoever reads the channel.
func Stream[T, R any](ctx context.Context, workers int, units []T, work func(context.Context, T) R) <-chan R {
	if workers < 1 {
		workers = 1
	}
	out := make(chan R, workers)
	go func() {
		defer close(out)
		var g errgroup.Group
		g.SetLimit(workers)
		for _, unit := range units {
			g.Go(func() error {
				out <- work(ctx, unit)
				return nil
			})
		}
		// work never returns an error; the group is only used for its limit
		_ = g.Wait()
	}()
	return out
}

// ProgressInterval is how often Collect logs progress while results arrive.
var ProgressInterval = time.Second

// Collect drains results, calling fold for each one on the calling goroutine.
// While results are outstanding it logs "<label> progress" every
// ProgressInterval. It returns the number of results folded.
func Collect[R any](results <-chan R, total int, logger *slog.Logger, label string, fold func(R)) int {
	ticker := time.NewTicker(ProgressInterval)
	defer ticker.Stop()

	processed := 0
	for {
		select {
		case r, ok := <-results:
			if !ok {
				return processed
			}
			fold(r)
			processed++
		case <-ticker.C:
			logger.Info(label+" progress", "processed", processed, "total", total, "percent", percent(processed, total))
		}
	}
}

func percent(n, total int) string {
	if total == 0 {
		return "100.00"
	}
	return strconv.FormatFloat(float64(n)/float64(total)*100, 'f', 2, 64)
}
