package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

func rec(sym string, series model.Series, date string, trades int64) model.Record {
	return model.Record{
		Symbol:   sym,
		Series:   series,
		Date:     model.MustParseDate(date),
		Open:     model.Dec(decimal.NewFromInt(10)),
		Close:    model.Dec(decimal.NewFromInt(11)),
		Volume:   model.Int(1000),
		Trades:   model.Int(trades),
		DelivQty: model.MissingInt(),
		DelivPer: model.MissingDec(),
	}
}

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(t.TempDir(), nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestLoadMissingLedger(t *testing.T) {
	s := newTestStore(t)

	l, err := s.Load("NEWCO")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !l.Empty() || l.Symbol != "NEWCO" {
		t.Errorf("expected empty ledger for NEWCO, got %d records", len(l.Records))
	}
	if s.Has("NEWCO") {
		t.Error("Load must not create a file")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := newTestStore(t)

	l := &Ledger{Symbol: "ABC", Records: []model.Record{
		rec("ABC", model.SeriesEQ, "01-01-2020", 100),
		rec("ABC", model.SeriesBE, "02-01-2020", 7),
	}}
	if err := s.Save(l); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := s.Load("ABC")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got.Records) != 2 {
		t.Fatalf("loaded %d records, want 2", len(got.Records))
	}
	for i := range l.Records {
		if !got.Records[i].Equal(l.Records[i]) {
			t.Errorf("record %d changed across save/load:\n%+v\n%+v", i, got.Records[i], l.Records[i])
		}
	}
}

func TestMergeNoOverwrite(t *testing.T) {
	s := newTestStore(t)

	l := &Ledger{Symbol: "ABC", Records: []model.Record{
		rec("ABC", model.SeriesEQ, "01-01-2020", 100),
	}}

	t.Run("collision keeps existing row", func(t *testing.T) {
		incoming := rec("ABC", model.SeriesEQ, "01-01-2020", 999)
		if changed := s.Merge(l, []model.Record{incoming}); changed {
			t.Error("merge of a colliding key must report no change")
		}
		if len(l.Records) != 1 {
			t.Fatalf("ledger has %d records, want 1", len(l.Records))
		}
		if l.Records[0].Trades.Value != 100 {
			t.Errorf("existing trade count overwritten: %v", l.Records[0].Trades)
		}
	})

	t.Run("new keys append", func(t *testing.T) {
		add := []model.Record{
			rec("ABC", model.SeriesEQ, "02-01-2020", 50),
			rec("ABC", model.SeriesBL, "01-01-2020", 3), // same date, new series
		}
		if changed := s.Merge(l, add); !changed {
			t.Error("merge of new keys must report a change")
		}
		if len(l.Records) != 3 {
			t.Errorf("ledger has %d records, want 3", len(l.Records))
		}
	})

	t.Run("duplicate keys within one batch collapse", func(t *testing.T) {
		dup := rec("ABC", model.SeriesSM, "03-01-2020", 1)
		s.Merge(l, []model.Record{dup, dup})
		if len(l.Records) != 4 {
			t.Errorf("ledger has %d records, want 4", len(l.Records))
		}
	})
}

func TestRename(t *testing.T) {
	s := newTestStore(t)

	old := &Ledger{Symbol: "OLD", Records: []model.Record{rec("OLD", model.SeriesEQ, "01-01-2020", 1)}}
	if err := s.Save(old); err != nil {
		t.Fatalf("Save: %v", err)
	}

	t.Run("relocates when target absent", func(t *testing.T) {
		if err := s.Rename("OLD", "NEW"); err != nil {
			t.Fatalf("Rename: %v", err)
		}
		if s.Has("OLD") {
			t.Error("old ledger file should be gone")
		}
		l, err := s.Load("NEW")
		if err != nil {
			t.Fatalf("Load(NEW): %v", err)
		}
		if len(l.Records) != 1 {
			t.Errorf("history lost in rename: %d records", len(l.Records))
		}
	})

	t.Run("no-op when target exists", func(t *testing.T) {
		other := &Ledger{Symbol: "OTHER", Records: []model.Record{rec("OTHER", model.SeriesEQ, "02-01-2020", 2)}}
		if err := s.Save(other); err != nil {
			t.Fatalf("Save: %v", err)
		}
		if err := s.Rename("OTHER", "NEW"); err != nil {
			t.Fatalf("Rename: %v", err)
		}
		if !s.Has("OTHER") {
			t.Error("rename onto an existing ledger must be a no-op")
		}
	})

	t.Run("no-op when source absent", func(t *testing.T) {
		if err := s.Rename("GHOST", "ANYTHING"); err != nil {
			t.Fatalf("Rename: %v", err)
		}
		if s.Has("ANYTHING") {
			t.Error("rename of a missing ledger must create nothing")
		}
	})
}

func TestCorruptLedger(t *testing.T) {
	s := newTestStore(t)

	t.Run("bad header", func(t *testing.T) {
		path := filepath.Join(s.Dir(), "BAD.csv")
		if err := os.WriteFile(path, []byte("FOO,BAR\n1,2\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := s.Load("BAD")
		if !errors.Is(err, ErrCorruptLedger) {
			t.Errorf("err = %v, want ErrCorruptLedger", err)
		}
	})

	t.Run("empty file", func(t *testing.T) {
		path := filepath.Join(s.Dir(), "EMPTY.csv")
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			t.Fatal(err)
		}
		_, err := s.Load("EMPTY")
		if !errors.Is(err, ErrCorruptLedger) {
			t.Errorf("err = %v, want ErrCorruptLedger", err)
		}
	})
}

func TestList(t *testing.T) {
	s := newTestStore(t)

	for _, sym := range []string{"AAA", "BBB"} {
		if err := s.Save(&Ledger{Symbol: sym}); err != nil {
			t.Fatal(err)
		}
	}
	// Non-ledger files are ignored.
	if err := os.WriteFile(filepath.Join(s.Dir(), "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	symbols, err := s.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(symbols) != 2 || symbols[0] != "AAA" || symbols[1] != "BBB" {
		t.Errorf("List() = %v, want [AAA BBB]", symbols)
	}
}

func TestNeedsRewrite(t *testing.T) {
	s := newTestStore(t)

	l := &Ledger{Symbol: "ABC", Records: []model.Record{rec("ABC", model.SeriesEQ, "03-01-2024", 5)}}

	t.Run("missing file", func(t *testing.T) {
		dirty, err := s.NeedsRewrite(l)
		if err != nil || !dirty {
			t.Errorf("NeedsRewrite = %v, %v, want true", dirty, err)
		}
	})

	t.Run("freshly saved ledger is clean", func(t *testing.T) {
		if err := s.Save(l); err != nil {
			t.Fatal(err)
		}
		dirty, err := s.NeedsRewrite(l)
		if err != nil || dirty {
			t.Errorf("NeedsRewrite = %v, %v, want false", dirty, err)
		}
	})

	t.Run("record change is dirty", func(t *testing.T) {
		changed := &Ledger{Symbol: "ABC", Records: []model.Record{rec("ABC", model.SeriesEQ, "03-01-2024", 6)}}
		dirty, err := s.NeedsRewrite(changed)
		if err != nil || !dirty {
			t.Errorf("NeedsRewrite = %v, %v, want true", dirty, err)
		}
	})

	t.Run("non-canonical spelling on disk is dirty", func(t *testing.T) {
		raw := "SYMBOL,SERIES,DATE1,PREV_CLOSE,OPEN_PRICE,HIGH_PRICE,LOW_PRICE,LAST_PRICE,CLOSE_PRICE,AVG_PRICE,TTL_TRD_QNTY,TURNOVER_LACS,NO_OF_TRADES,DELIV_QTY,DELIV_PER\n" +
			"XYZ,EQ,2024-01-03,,10,,,,11,,1000,,5,-,-\n"
		if err := os.WriteFile(filepath.Join(s.Dir(), "XYZ.csv"), []byte(raw), 0o644); err != nil {
			t.Fatal(err)
		}
		loaded, err := s.Load("XYZ")
		if err != nil {
			t.Fatalf("Load: %v", err)
		}
		dirty, err := s.NeedsRewrite(loaded)
		if err != nil || !dirty {
			t.Errorf("NeedsRewrite = %v, %v, want true", dirty, err)
		}
	})
}
