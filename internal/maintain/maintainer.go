package maintain

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/pool"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/runlog"
	"github.com/rogeredwin/SecurityWiseNSEData/internal/store"
)

// Passes selects which maintenance passes a sweep applies.
type Passes struct {
	Dedupe    bool
	Normalize bool
	Sort      bool
}

// AllPasses selects every pass.
func AllPasses() Passes { return Passes{Dedupe: true, Normalize: true, Sort: true} }

// ParsePasses parses a comma-separated pass list ("dedupe,sort") or "all".
func ParsePasses(spec string) (Passes, error) {
	var p Passes
	for _, name := range strings.Split(spec, ",") {
		switch strings.TrimSpace(strings.ToLower(name)) {
		case "all":
			return AllPasses(), nil
		case "dedupe":
			p.Dedupe = true
		case "normalize":
			p.Normalize = true
		case "sort":
			p.Sort = true
		default:
			return Passes{}, fmt.Errorf("unknown maintenance pass %q", name)
		}
	}
	return p, nil
}

// Maintainer sweeps the whole store, one ledger per work unit.
type Maintainer struct {
	store   *store.Store
	passes  Passes
	flog    *runlog.FailureLog
	logger  *slog.Logger
	workers int
}

// New creates a Maintainer.
func New(st *store.Store, workers int, passes Passes, flog *runlog.FailureLog, logger *slog.Logger) *Maintainer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Maintainer{store: st, passes: passes, flog: flog, logger: logger, workers: workers}
}

// Run maintains every ledger in the store.
func (m *Maintainer) Run(ctx context.Context) (pool.Summary, error) {
	symbols, err := m.store.List()
	if err != nil {
		return pool.Summary{}, err
	}
	m.logger.Info("maintenance sweep", "securities", len(symbols))
	return pool.Run(ctx, m.workers, symbols, m.maintainSymbol, m.logger), nil
}

func (m *Maintainer) maintainSymbol(ctx context.Context, sym string) model.Outcome {
	ledger, err := m.store.Load(sym)
	if err != nil {
		m.fail(sym, err)
		return model.OutcomeFailed
	}

	before := len(ledger.Records)
	dirty := false
	if m.passes.Dedupe {
		ledger.Records = Dedupe(ledger.Records)
		dirty = len(ledger.Records) != before
	}
	if m.passes.Sort && !sortedByDate(ledger.Records) {
		SortByDate(ledger.Records)
		dirty = true
	}
	if !dirty && m.passes.Normalize {
		// Loading already canonicalized every field in memory, so a ledger
		// whose file spells a date differently looks identical here. Compare
		// against the file, not the pre-transform records.
		dirty, err = m.store.NeedsRewrite(ledger)
		if err != nil {
			m.fail(sym, err)
			return model.OutcomeFailed
		}
	}
	if !dirty {
		return model.OutcomeUnchanged
	}

	if err := m.store.Save(ledger); err != nil {
		m.fail(sym, err)
		return model.OutcomeFailed
	}
	m.logger.Info("ledger maintained",
		"symbol", sym,
		"records", len(ledger.Records),
		"duplicates_dropped", before-len(ledger.Records),
	)
	return model.OutcomeUpdated
}

func (m *Maintainer) fail(sym string, err error) {
	m.logger.Warn("unit failed", "stage", "maintain", "symbol", sym, "err", err)
	m.flog.Append("maintain", sym, "", err.Error())
}

// Dedupe removes rows that duplicate an earlier row in every field, keeping
// the first occurrence. Rows that share a merge key but differ elsewhere are
// both kept; collapsing those is a merge decision, not cleanup.
func Dedupe(recs []model.Record) []model.Record {
	out := recs[:0]
	byKey := make(map[model.Key][]int, len(recs))
next:
	for _, r := range recs {
		k := r.Key()
		for _, i := range byKey[k] {
			if out[i].Equal(r) {
				continue next
			}
		}
		byKey[k] = append(byKey[k], len(out))
		out = append(out, r)
	}
	return out
}

// SortByDate orders records by date ascending, stably, so same-day rows of
// different series keep their relative order. Rows carrying the invalid date
// marker sort before everything else, where they stay visible.
func SortByDate(recs []model.Record) {
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].Date.Before(recs[j].Date)
	})
}

func sortedByDate(recs []model.Record) bool {
	return sort.SliceIsSorted(recs, func(i, j int) bool {
		return recs[i].Date.Before(recs[j].Date)
	})
}
