package model

import (
	"fmt"
	"strings"
	"time"
)

// DateFormat is the canonical on-disk date layout (DD-MM-YYYY).
const DateFormat = "02-01-2006"

// ProviderDateFormat is the month-name layout used by NSE responses (e.g. "03-Jan-2016").
const ProviderDateFormat = "02-Jan-2006"

// compactDateFormat names batch cache files (YYYYMMDD).
const compactDateFormat = "20060102"

// AcceptedDateFormats are the layouts a ledger date may arrive in. Normalization
// re-expresses any of them in DateFormat.
var AcceptedDateFormats = []string{
	DateFormat,
	"2006-01-02",
	"2006/01/02",
	"02/01/2006",
	ProviderDateFormat,
}

// Date is a calendar day with no time component. The zero Date is the explicit
// invalid/null marker and renders as the empty string.
type Date struct {
	t time.Time
}

// NewDate returns the Date for the given year, month and day.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates a time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Date())
}

// ParseDate parses a date in any of the accepted layouts. Leading and trailing
// whitespace is ignored.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	for _, layout := range AcceptedDateFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return Date{t}, nil
		}
	}
	return Date{}, fmt.Errorf("unrecognized date %q", s)
}

// MustParseDate is like ParseDate but panics on error. For tests and constants.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// IsZero reports whether d is the invalid/null marker.
func (d Date) IsZero() bool { return d.t.IsZero() }

// String renders the canonical DD-MM-YYYY form, or "" for the invalid marker.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(DateFormat)
}

// Compact renders YYYYMMDD, the form used in batch cache filenames.
func (d Date) Compact() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(compactDateFormat)
}

// Provider renders the DD-Mon-YYYY form used in provider URLs and bodies.
func (d Date) Provider() string {
	if d.IsZero() {
		return ""
	}
	return d.t.Format(ProviderDateFormat)
}

// Year returns the calendar year.
func (d Date) Year() int { return d.t.Year() }

// AddDays returns the date i days later (or earlier for negative i).
func (d Date) AddDays(i int) Date {
	return Date{d.t.AddDate(0, 0, i)}
}

// Before reports whether d is strictly before x. The invalid marker sorts
// before every valid date.
func (d Date) Before(x Date) bool { return d.t.Before(x.t) }

// Equal reports whether d and x are the same calendar day.
func (d Date) Equal(x Date) bool { return d.t.Equal(x.t) }

// Time returns the canonical time representation (midnight UTC).
func (d Date) Time() time.Time { return d.t }

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From Date
	To   Date
}

// Years returns the calendar years touched by the range, in order.
func (r DateRange) Years() []int {
	if r.From.IsZero() || r.To.IsZero() || r.To.Before(r.From) {
		return nil
	}
	years := make([]int, 0, r.To.Year()-r.From.Year()+1)
	for y := r.From.Year(); y <= r.To.Year(); y++ {
		years = append(years, y)
	}
	return years
}
