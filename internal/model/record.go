package model

import (
	"fmt"
	"strings"
)

func trim(s string) string { return strings.TrimSpace(s) }

// Record is one security's trading data for one calendar day.
type Record struct {
	Symbol string
	Series Series
	Date   Date

	PrevClose OptDecimal
	Open      OptDecimal
	High      OptDecimal
	Low       OptDecimal
	Last      OptDecimal
	Close     OptDecimal
	Avg       OptDecimal
	Volume    OptInt
	Turnover  OptDecimal

	Trades   OptInt
	DelivQty OptInt
	DelivPer OptDecimal
}

// Key is the dedup/merge key of a ledger row. The date component is the
// canonical string form, so rows with the invalid date marker collide on "".
type Key struct {
	Symbol string
	Series Series
	Date   string
}

// Key returns the record's merge key.
func (r Record) Key() Key {
	return Key{Symbol: r.Symbol, Series: r.Series, Date: r.Date.String()}
}

// Equal reports whether every field of r and x is equal. Rows that share a
// merge key but differ in any other field are not equal.
func (r Record) Equal(x Record) bool {
	return r.Symbol == x.Symbol &&
		r.Series == x.Series &&
		r.Date.Equal(x.Date) &&
		r.PrevClose.Equal(x.PrevClose) &&
		r.Open.Equal(x.Open) &&
		r.High.Equal(x.High) &&
		r.Low.Equal(x.Low) &&
		r.Last.Equal(x.Last) &&
		r.Close.Equal(x.Close) &&
		r.Avg.Equal(x.Avg) &&
		r.Volume.Equal(x.Volume) &&
		r.Turnover.Equal(x.Turnover) &&
		r.Trades.Equal(x.Trades) &&
		r.DelivQty.Equal(x.DelivQty) &&
		r.DelivPer.Equal(x.DelivPer)
}

// NeedsDelivery reports whether the row is a candidate for delivery gap
// filling: a delivery series with either delivery field still missing.
func (r Record) NeedsDelivery() bool {
	return r.Series.HasDelivery() && (r.DelivQty.Missing || r.DelivPer.Missing)
}

// ParseRecord maps a row onto a Record by the schema's column names.
// An unparseable date becomes the invalid marker, not an error; callers decide
// whether to drop or repair such rows.
func ParseRecord(s Schema, row []string) (Record, error) {
	if len(row) != len(s.Columns) {
		return Record{}, fmt.Errorf("row has %d fields, schema v%d wants %d", len(row), s.Version, len(s.Columns))
	}
	var r Record
	for i, col := range s.Columns {
		v := row[i]
		switch col {
		case ColSymbol:
			r.Symbol = trim(v)
		case ColSeries:
			r.Series = Series(trim(v))
		case ColDate:
			d, err := ParseDate(v)
			if err == nil {
				r.Date = d
			}
		case ColPrevClose:
			r.PrevClose = ParseOptDecimal(v)
		case ColOpen:
			r.Open = ParseOptDecimal(v)
		case ColHigh:
			r.High = ParseOptDecimal(v)
		case ColLow:
			r.Low = ParseOptDecimal(v)
		case ColLast:
			r.Last = ParseOptDecimal(v)
		case ColClose:
			r.Close = ParseOptDecimal(v)
		case ColAvg:
			r.Avg = ParseOptDecimal(v)
		case ColVolume:
			r.Volume = ParseOptInt(v)
		case ColTurnover:
			r.Turnover = ParseOptDecimal(v)
		case ColTrades:
			r.Trades = ParseOptInt(v)
		case ColDelivQty:
			r.DelivQty = ParseOptInt(v)
		case ColDelivPer:
			r.DelivPer = ParseOptDecimal(v)
		default:
			return Record{}, fmt.Errorf("schema v%d has unknown column %q", s.Version, col)
		}
	}
	return r, nil
}

// Row renders the record in the schema's column order.
func (r Record) Row(s Schema) []string {
	row := make([]string, len(s.Columns))
	for i, col := range s.Columns {
		switch col {
		case ColSymbol:
			row[i] = r.Symbol
		case ColSeries:
			row[i] = string(r.Series)
		case ColDate:
			row[i] = r.Date.String()
		case ColPrevClose:
			row[i] = r.PrevClose.String()
		case ColOpen:
			row[i] = r.Open.String()
		case ColHigh:
			row[i] = r.High.String()
		case ColLow:
			row[i] = r.Low.String()
		case ColLast:
			row[i] = r.Last.String()
		case ColClose:
			row[i] = r.Close.String()
		case ColAvg:
			row[i] = r.Avg.String()
		case ColVolume:
			row[i] = r.Volume.String()
		case ColTurnover:
			row[i] = r.Turnover.String()
		case ColTrades:
			row[i] = r.Trades.String()
		case ColDelivQty:
			row[i] = r.DelivQty.String()
		case ColDelivPer:
			row[i] = r.DelivPer.String()
		}
	}
	return row
}
