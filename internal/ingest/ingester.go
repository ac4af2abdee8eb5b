package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/nse"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/pool"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/runlog"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/store"
)

// Config holds ingester settings.
type Config struct {
	Workers  int            // worker pool size; 0 = available processing units
	Location *time.Location // the exchange's timezone
	Now      func() time.Time
}

// Ingester merges daily batch feeds into per-security ledgers.
type Ingester struct {
	cfg     Config
	client  *nse.Client
	store   *store.Store
	bhav    *store.BhavCache
	renames model.RenameMap
	flog    *runlog.FailureLog
	logger  *slog.Logger
}

// New creates an Ingester. The rename map is a per-run immutable snapshot;
// see LoadRenames.
func New(cfg Config, client *nse.Client, st *store.Store, bhav *store.BhavCache,
	renames model.RenameMap, flog *runlog.FailureLog, logger *slog.Logger) *Ingester {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Ingester{
		cfg:     cfg,
		client:  client,
		store:   st,
		bhav:    bhav,
		renames: renames,
		flog:    flog,
		logger:  logger,
	}
}

// LoadRenames fetches the rename-history feed and snapshots it at cachePath,
// falling back to the cached copy when the fetch fails. A run without any
// usable snapshot proceeds with no redirection at all.
func LoadRenames(ctx context.Context, client *nse.Client, cachePath string, logger *slog.Logger) model.RenameMap {
	raw, err := client.FetchSymbolChanges(ctx)
	if err == nil {
		if err := store.SaveRenameHistory(cachePath, raw); err != nil {
			logger.Warn("could not cache rename history", "err", err)
		}
	} else {
		logger.Warn("rename history fetch failed, using cached copy", "err", err)
	}

	m, err := store.LoadRenameHistory(cachePath)
	if err != nil {
		logger.Warn("no rename history available", "err", err)
		return model.RenameMap{}
	}
	return m
}

// Run ingests the batch for one date. The download is skipped when the batch
// is already cached; re-runs are idempotent. An unavailable batch aborts the
// date: merging against a partial or absent batch is never attempted.
func (i *Ingester) Run(ctx context.Context, date model.Date) (pool.Summary, error) {
	if !i.bhav.Has(date) {
		body, err := i.client.FetchDailyBatch(ctx, date)
		if err != nil {
			i.flog.Append("ingest", "", date.String(), fmt.Sprintf("daily batch unavailable: %v", err))
			return pool.Summary{}, fmt.Errorf("daily batch %s: %w", date, err)
		}
		if err := i.bhav.Write(date, body); err != nil {
			return pool.Summary{}, err
		}
	}

	recs, err := i.bhav.Load(date)
	if err != nil {
		i.flog.Append("ingest", "", date.String(), fmt.Sprintf("cached batch unreadable: %v", err))
		return pool.Summary{}, fmt.Errorf("cached batch %s: %w", date, err)
	}

	bySymbol := make(map[string][]model.Record)
	for _, r := range recs {
		if !r.Series.Valid() {
			continue
		}
		bySymbol[r.Symbol] = append(bySymbol[r.Symbol], r)
	}
	symbols := make([]string, 0, len(bySymbol))
	for sym := range bySymbol {
		symbols = append(symbols, sym)
	}
	sort.Strings(symbols)

	i.logger.Info("ingesting daily batch",
		"date", date,
		"rows", len(recs),
		"securities", len(symbols),
	)

	batches := newBatchIndex(i.bhav)
	summary := pool.Run(ctx, i.cfg.Workers, symbols, func(ctx context.Context, sym string) model.Outcome {
		return i.processSymbol(ctx, sym, bySymbol[sym], batches)
	}, i.logger)
	return summary, nil
}

// RunRecent ingests today and the two days before it, in the exchange's
// timezone. Dates whose batch was already processed fall through Run's cache
// check; dates the exchange was closed simply have no batch and are skipped.
func (i *Ingester) RunRecent(ctx context.Context) error {
	today := model.DateOf(i.cfg.Now().In(i.cfg.Location))
	for _, date := range []model.Date{today.AddDays(-2), today.AddDays(-1), today} {
		if _, err := i.Run(ctx, date); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			i.logger.Warn("date skipped", "date", date, "err", err)
		}
	}
	return nil
}

// processSymbol is one unit of work: route the symbol's batch rows into its
// ledger.
func (i *Ingester) processSymbol(ctx context.Context, sym string, rows []model.Record, batches *batchIndex) model.Outcome {
	if !i.store.Has(sym) {
		// The security may have traded under another symbol before.
		if old, ok := i.renames.Previous(sym); ok {
			if err := i.store.Rename(old, sym); err != nil {
				i.fail("ingest", sym, "", err)
				return model.OutcomeFailed
			}
		}
	}

	ledger, err := i.store.Load(sym)
	if err != nil {
		i.fail("ingest", sym, "", err)
		return model.OutcomeFailed
	}

	if ledger.Empty() {
		return i.bootstrap(ctx, ledger, rows, batches)
	}

	if !i.store.Merge(ledger, rows) {
		return model.OutcomeUnchanged
	}
	if err := i.store.Save(ledger); err != nil {
		i.fail("ingest", sym, "", err)
		return model.OutcomeFailed
	}
	return model.OutcomeUpdated
}

// bootstrap populates a brand-new ledger with the security's entire history
// rather than a single batch day. Backfilled EQ rows that predate the
// provider's delivery coverage are repaired from locally cached batches when
// possible. If no history comes back at all, the ledger starts from the batch
// rows alone.
func (i *Ingester) bootstrap(ctx context.Context, ledger *store.Ledger, rows []model.Record, batches *batchIndex) model.Outcome {
	sym := ledger.Symbol
	r := nse.SupportedRange(i.cfg.Now().In(i.cfg.Location))
	hist, err := i.client.FetchHistory(ctx, sym, r, nse.FeedPriceVolumeDeliverable)
	if err != nil {
		i.fail("bootstrap", sym, "", err)
		return model.OutcomeFailed
	}

	if len(hist) == 0 {
		i.logger.Info("no history available, starting ledger from batch rows", "symbol", sym)
		ledger.Records = rows
	} else {
		repaired := 0
		for idx := range hist {
			rec := &hist[idx]
			if rec.Series != model.SeriesEQ || !rec.NeedsDelivery() {
				continue
			}
			batch, ok := batches.lookup(rec.Key(), rec.Date)
			if !ok || batch.DelivQty.Missing || batch.DelivPer.Missing {
				continue
			}
			rec.DelivQty = batch.DelivQty
			rec.DelivPer = batch.DelivPer
			repaired++
		}
		ledger.Records = hist
		i.logger.Info("ledger bootstrapped from full history",
			"symbol", sym,
			"records", len(hist),
			"delivery_repaired", repaired,
		)
	}

	if err := i.store.Save(ledger); err != nil {
		i.fail("bootstrap", sym, "", err)
		return model.OutcomeFailed
	}
	return model.OutcomeUpdated
}

func (i *Ingester) fail(stage, sym, date string, err error) {
	i.logger.Warn("unit failed", "stage", stage, "symbol", sym, "err", err)
	i.flog.Append(stage, sym, date, err.Error())
}

// batchIndex lazily loads cached batch files and indexes them by merge key.
// Bootstrap repair probes one date at a time; loading each batch at most once
// per run keeps that affordable. Workers bootstrapping different symbols
// share one index, hence the lock.
type batchIndex struct {
	bhav *store.BhavCache

	mu    sync.Mutex
	cache map[string]map[model.Key]model.Record
}

func newBatchIndex(bhav *store.BhavCache) *batchIndex {
	return &batchIndex{bhav: bhav, cache: make(map[string]map[model.Key]model.Record)}
}

func (b *batchIndex) lookup(key model.Key, date model.Date) (model.Record, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx, ok := b.cache[date.String()]
	if !ok {
		idx = map[model.Key]model.Record{}
		if b.bhav.Has(date) {
			if recs, err := b.bhav.Load(date); err == nil {
				idx = store.Index(recs)
			}
		}
		b.cache[date.String()] = idx
	}
	rec, ok := idx[key]
	return rec, ok
}
