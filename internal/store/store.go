package store

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// ErrCorruptLedger marks a ledger file that no longer parses against the
// canonical schema. The affected security is skipped for the run.
var ErrCorruptLedger = errors.New("corrupt ledger")

// Ledger is the record collection of one security. Records may be transiently
// unsorted after an ingest; order is only guaranteed after a maintenance sort.
type Ledger struct {
	Symbol  string
	Records []model.Record
}

// Empty reports whether the ledger has no history yet.
func (l *Ledger) Empty() bool { return len(l.Records) == 0 }

// keys returns the set of merge keys present in the ledger.
func (l *Ledger) keys() map[model.Key]int {
	m := make(map[model.Key]int, len(l.Records))
	for i, r := range l.Records {
		m[r.Key()] = i
	}
	return m
}

// Store is the ledger store rooted at one directory. It is the only writer of
// ledger files; concurrent mutation is partitioned by symbol, so callers must
// never dispatch the same symbol to two workers.
type Store struct {
	dir    string
	schema model.Schema
	logger *slog.Logger
}

// New creates a Store over dir, creating it if needed.
func New(dir string, logger *slog.Logger) (*Store, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	return &Store{dir: dir, schema: model.LedgerSchema, logger: logger}, nil
}

// Dir returns the store's root directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) path(symbol string) string {
	return filepath.Join(s.dir, symbol+".csv")
}

// Has reports whether a ledger file exists for symbol.
func (s *Store) Has(symbol string) bool {
	_, err := os.Stat(s.path(symbol))
	return err == nil
}

// Load reads the ledger for symbol. A security not yet in the store gets an
// empty ledger carrying the canonical schema. A file that does not parse is
// reported as ErrCorruptLedger.
func (s *Store) Load(symbol string) (*Ledger, error) {
	rows, err := readCSV(s.path(symbol))
	if os.IsNotExist(err) {
		return &Ledger{Symbol: symbol}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, symbol, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s: file has no header", ErrCorruptLedger, symbol)
	}
	if err := s.checkHeader(rows[0]); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptLedger, symbol, err)
	}

	l := &Ledger{Symbol: symbol, Records: make([]model.Record, 0, len(rows)-1)}
	for i, row := range rows[1:] {
		r, err := model.ParseRecord(s.schema, row)
		if err != nil {
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrCorruptLedger, symbol, i+2, err)
		}
		l.Records = append(l.Records, r)
	}
	return l, nil
}

// Save persists the ledger, replacing the file atomically.
func (s *Store) Save(l *Ledger) error {
	rows := make([][]string, 0, len(l.Records)+1)
	rows = append(rows, s.schema.Columns)
	for _, r := range l.Records {
		rows = append(rows, r.Row(s.schema))
	}
	if err := writeCSVAtomic(s.path(l.Symbol), rows); err != nil {
		return fmt.Errorf("save ledger %s: %w", l.Symbol, err)
	}
	return nil
}

// NeedsRewrite reports whether saving the ledger would change its file:
// a row count or row content mismatch, or a cell whose stored spelling
// differs from the canonical rendering. A missing file always needs a write.
func (s *Store) NeedsRewrite(l *Ledger) (bool, error) {
	raw, err := readCSV(s.path(l.Symbol))
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read ledger %s: %w", l.Symbol, err)
	}
	if len(raw) != len(l.Records)+1 {
		return true, nil
	}
	for i, r := range l.Records {
		want := r.Row(s.schema)
		have := raw[i+1]
		if len(have) != len(want) {
			return true, nil
		}
		for j := range want {
			if have[j] != want[j] {
				return true, nil
			}
		}
	}
	return false, nil
}

// Merge appends every record whose merge key is not already in the ledger and
// reports whether anything was added. On a key collision the existing row
// wins; the incoming row is dropped even when its fields differ.
func (s *Store) Merge(l *Ledger, recs []model.Record) bool {
	existing := l.keys()
	changed := false
	for _, r := range recs {
		if i, ok := existing[r.Key()]; ok {
			if !l.Records[i].Equal(r) {
				s.logger.Debug("merge collision, existing row wins",
					"symbol", r.Symbol,
					"series", r.Series,
					"date", r.Date,
				)
			}
			continue
		}
		existing[r.Key()] = len(l.Records)
		l.Records = append(l.Records, r)
		changed = true
	}
	return changed
}

// Rename relocates the ledger of oldSym to newSym. It is a no-op unless a
// ledger exists under the old symbol and none under the new one.
func (s *Store) Rename(oldSym, newSym string) error {
	if !s.Has(oldSym) || s.Has(newSym) {
		return nil
	}
	if err := os.Rename(s.path(oldSym), s.path(newSym)); err != nil {
		return fmt.Errorf("rename ledger %s to %s: %w", oldSym, newSym, err)
	}
	s.logger.Info("ledger renamed", "old", oldSym, "new", newSym)
	return nil
}

// List returns the symbols present in the store, in directory order.
func (s *Store) List() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list store: %w", err)
	}
	symbols := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, ".csv") {
			continue
		}
		symbols = append(symbols, strings.TrimSuffix(name, ".csv"))
	}
	return symbols, nil
}

func (s *Store) checkHeader(header []string) error {
	if len(header) != len(s.schema.Columns) {
		return fmt.Errorf("header has %d columns, schema v%d wants %d",
			len(header), s.schema.Version, len(s.schema.Columns))
	}
	for i, col := range s.schema.Columns {
		if strings.TrimSpace(header[i]) != col {
			return fmt.Errorf("header column %d is %q, want %q", i, header[i], col)
		}
	}
	return nil
}
