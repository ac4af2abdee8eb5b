// Package pool runs per-security units of work over a bounded set of
// workers. Securities are independent: a unit only touches its own ledger, so
// workers share nothing mutable. Callers must dispatch each symbol at most
// once per run.
package pool

import (
	"context"
	"log/slog"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// Func processes one security and reports its outcome. Errors never cross the
// unit boundary; a Func maps them to OutcomeFailed itself.
type Func func(ctx context.Context, symbol string) model.Outcome

// Summary aggregates the per-unit outcomes of a run.
type Summary struct {
	Updated   int
	Unchanged int
	Complete  int
	Skipped   int
	Failed    int
}

// Total is the number of units processed.
func (s Summary) Total() int {
	return s.Updated + s.Unchanged + s.Complete + s.Skipped + s.Failed
}

// Run processes all symbols with at most workers concurrent units. A
// non-positive workers defaults to the available processing units. A unit
// that panics is contained and counted as failed. Cancelling the context
// stops dispatching new units; units already running finish.
func Run(ctx context.Context, workers int, symbols []string, fn Func, logger *slog.Logger) Summary {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if logger == nil {
		logger = slog.Default()
	}

	start := time.Now()
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup
	var updated, unchanged, complete, skipped, failed atomic.Int64

dispatch:
	for i, symbol := range symbols {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			// Units never dispatched still count toward the summary.
			skipped.Add(int64(len(symbols) - i))
			logger.Warn("run cancelled", "remaining", len(symbols)-i)
			break dispatch
		}

		wg.Add(1)
		go func(symbol string) {
			defer wg.Done()
			defer func() { <-sem }()
			defer func() {
				if r := recover(); r != nil {
					logger.Error("unit panicked", "symbol", symbol, "panic", r)
					failed.Add(1)
				}
			}()

			switch fn(ctx, symbol) {
			case model.OutcomeUpdated:
				updated.Add(1)
			case model.OutcomeUnchanged:
				unchanged.Add(1)
			case model.OutcomeComplete:
				complete.Add(1)
			case model.OutcomeSkipped:
				skipped.Add(1)
			default:
				failed.Add(1)
			}
		}(symbol)
	}
	wg.Wait()

	s := Summary{
		Updated:   int(updated.Load()),
		Unchanged: int(unchanged.Load()),
		Complete:  int(complete.Load()),
		Skipped:   int(skipped.Load()),
		Failed:    int(failed.Load()),
	}
	logger.Info("run complete",
		"units", s.Total(),
		"updated", s.Updated,
		"unchanged", s.Unchanged,
		"complete", s.Complete,
		"skipped", s.Skipped,
		"failed", s.Failed,
		"duration", time.Since(start),
	)
	return s
}
