package store

import (
	"testing"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// batchCSV is a trimmed-down daily batch body in the provider's shape:
// padded fields, DD-Mon-YYYY dates, "-" delivery sentinels outside EQ.
const batchCSV = `SYMBOL, SERIES, DATE1, PREV_CLOSE, OPEN_PRICE, HIGH_PRICE, LOW_PRICE, LAST_PRICE, CLOSE_PRICE, AVG_PRICE, TTL_TRD_QNTY, TURNOVER_LACS, NO_OF_TRADES, DELIV_QTY, DELIV_PER
ABC, EQ, 02-Jan-2024, 10.1, 10.2, 10.9, 10.05, 10.5, 10.55, 10.4, 120000, 12.48, 450, 60000, 50.25
XYZ, BE, 02-Jan-2024, 5.1, 5.2, 5.4, 5.05, 5.3, 5.35, 5.2, 9000, 0.48, 45, -, -
GARBAGE, EQ, not-a-date, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, -, -
`

func TestBhavCache(t *testing.T) {
	c, err := NewBhavCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewBhavCache: %v", err)
	}
	day := model.MustParseDate("02-01-2024")

	if c.Has(day) {
		t.Error("cache should start empty")
	}
	if err := c.Write(day, []byte(batchCSV)); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !c.Has(day) {
		t.Error("Has should see the cached batch")
	}

	recs, err := c.Load(day)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	// The unparseable-date row is dropped; the others are normalized.
	if len(recs) != 2 {
		t.Fatalf("loaded %d records, want 2", len(recs))
	}
	if recs[0].Symbol != "ABC" || recs[0].Series != model.SeriesEQ {
		t.Errorf("first record = %q %q", recs[0].Symbol, recs[0].Series)
	}
	if recs[0].Date.String() != "02-01-2024" {
		t.Errorf("date not canonicalized: %q", recs[0].Date)
	}
	if recs[0].DelivQty.Missing {
		t.Error("EQ row's delivery quantity should be present")
	}
	if !recs[1].DelivQty.Missing {
		t.Error("BE row's delivery sentinel should survive")
	}

	idx := Index(recs)
	key := model.Key{Symbol: "ABC", Series: model.SeriesEQ, Date: "02-01-2024"}
	if _, ok := idx[key]; !ok {
		t.Error("index should find the EQ row by merge key")
	}
}

func TestRenameHistoryCache(t *testing.T) {
	path := t.TempDir() + "/symbolchange.csv"
	raw := []byte("Acme Industries,ACMEOLD,ACME,05-Jan-2023\n")

	if err := SaveRenameHistory(path, raw); err != nil {
		t.Fatalf("SaveRenameHistory: %v", err)
	}
	m, err := LoadRenameHistory(path)
	if err != nil {
		t.Fatalf("LoadRenameHistory: %v", err)
	}
	if old, ok := m.Previous("ACME"); !ok || old != "ACMEOLD" {
		t.Errorf("Previous(ACME) = %q, %v", old, ok)
	}
}
