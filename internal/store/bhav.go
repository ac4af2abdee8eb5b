package store

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// BhavCache keeps one local copy of the full-market daily batch file per
// date. A date already in the cache is never downloaded again.
type BhavCache struct {
	dir string
}

// NewBhavCache creates the cache directory if needed.
func NewBhavCache(dir string) (*BhavCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create batch cache dir: %w", err)
	}
	return &BhavCache{dir: dir}, nil
}

// Path returns the cache file for a date (<YYYYMMDD>_NSE.csv).
func (c *BhavCache) Path(d model.Date) string {
	return filepath.Join(c.dir, d.Compact()+"_NSE.csv")
}

// Has reports whether the batch for a date is cached.
func (c *BhavCache) Has(d model.Date) bool {
	_, err := os.Stat(c.Path(d))
	return err == nil
}

// Write stores the raw batch body as fetched.
func (c *BhavCache) Write(d model.Date, raw []byte) error {
	if err := writeFileAtomic(c.Path(d), raw); err != nil {
		return fmt.Errorf("cache batch %s: %w", d, err)
	}
	return nil
}

// Load parses a cached batch into normalized records (fields trimmed, dates
// canonicalized). Rows whose date does not parse are dropped. Series are not
// filtered here; the delivery-repair join wants every row.
func (c *BhavCache) Load(d model.Date) ([]model.Record, error) {
	rows, err := readCSV(c.Path(d))
	if err != nil {
		return nil, fmt.Errorf("read batch %s: %w", d, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("batch %s: file has no header", d)
	}

	recs := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		r, err := model.ParseRecord(model.LedgerSchema, row)
		if err != nil {
			return nil, fmt.Errorf("batch %s row %d: %w", d, i+2, err)
		}
		if r.Date.IsZero() {
			continue
		}
		recs = append(recs, r)
	}
	return recs, nil
}

// Index builds a merge-key lookup over batch records.
func Index(recs []model.Record) map[model.Key]model.Record {
	m := make(map[model.Key]model.Record, len(recs))
	for _, r := range recs {
		if _, ok := m[r.Key()]; !ok {
			m[r.Key()] = r
		}
	}
	return m
}
