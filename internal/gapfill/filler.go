package gapfill

import (
	"context"
	"log/slog"
	"time"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/nse"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/pool"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/runlog"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/schedule"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/store"
)

// Config holds filler settings.
type Config struct {
	Workers  int
	Location *time.Location
	Now      func() time.Time
}

// Filler patches missing delivery data across the store.
type Filler struct {
	cfg    Config
	client *nse.Client
	store  *store.Store
	shard  *schedule.Shard
	flog   *runlog.FailureLog
	logger *slog.Logger
}

// New creates a Filler.
func New(cfg Config, client *nse.Client, st *store.Store, shard *schedule.Shard,
	flog *runlog.FailureLog, logger *slog.Logger) *Filler {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Filler{
		cfg:    cfg,
		client: client,
		store:  st,
		shard:  shard,
		flog:   flog,
		logger: logger,
	}
}

// Run sweeps the store once. With sharding enabled only today's bucket is
// visited, so a full sweep takes one calendar week of daily runs.
func (f *Filler) Run(ctx context.Context) (pool.Summary, error) {
	symbols, err := f.store.List()
	if err != nil {
		return pool.Summary{}, err
	}

	today := f.cfg.Now().In(f.cfg.Location).Weekday()
	picked := f.shard.Filter(symbols, today)
	f.logger.Info("delivery gap sweep",
		"securities", len(symbols),
		"in_bucket", len(picked),
		"weekday", today,
	)

	return pool.Run(ctx, f.cfg.Workers, picked, f.fillSymbol, f.logger), nil
}

// fillSymbol repairs one ledger. The delivery history is fetched only when a
// scan finds at least one deficient row, and the ledger is rewritten only when
// at least one row was actually patched.
func (f *Filler) fillSymbol(ctx context.Context, sym string) model.Outcome {
	ledger, err := f.store.Load(sym)
	if err != nil {
		f.fail(sym, err)
		return model.OutcomeFailed
	}

	deficient := 0
	for _, r := range ledger.Records {
		if r.NeedsDelivery() {
			deficient++
		}
	}
	if deficient == 0 {
		return model.OutcomeComplete
	}

	r := nse.SupportedRange(f.cfg.Now().In(f.cfg.Location))
	hist, err := f.client.FetchHistory(ctx, sym, r, nse.FeedDeliverable)
	if err != nil {
		f.fail(sym, err)
		return model.OutcomeFailed
	}
	hist = nse.FilterDeliverySeries(hist)
	if len(hist) == 0 {
		f.logger.Warn("no delivery history available", "symbol", sym, "deficient", deficient)
		return model.OutcomeUnchanged
	}
	// A ledger relocated by a rename keeps its pre-rename rows under the old
	// symbol, while the history comes back under the current one. Match on
	// series and date only; the ledger is already scoped to one security.
	bySeriesDate := make(map[model.Key]model.Record, len(hist))
	for _, h := range hist {
		k := h.Key()
		k.Symbol = ""
		if _, ok := bySeriesDate[k]; !ok {
			bySeriesDate[k] = h
		}
	}

	patched := 0
	for i := range ledger.Records {
		rec := &ledger.Records[i]
		if !rec.NeedsDelivery() {
			continue
		}
		k := rec.Key()
		k.Symbol = ""
		src, ok := bySeriesDate[k]
		if !ok || src.DelivQty.Missing || src.DelivPer.Missing {
			continue
		}
		// Both fields move together so a half-repaired row cannot occur.
		rec.DelivQty = src.DelivQty
		rec.DelivPer = src.DelivPer
		patched++
	}
	if patched == 0 {
		return model.OutcomeUnchanged
	}

	if err := f.store.Save(ledger); err != nil {
		f.fail(sym, err)
		return model.OutcomeFailed
	}
	f.logger.Info("delivery gaps filled", "symbol", sym, "patched", patched, "deficient", deficient)
	return model.OutcomeUpdated
}

func (f *Filler) fail(sym string, err error) {
	f.logger.Warn("unit failed", "stage", "gapfill", "symbol", sym, "err", err)
	f.flog.Append("gapfill", sym, "", err.Error())
}
