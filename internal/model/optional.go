package model

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// MissingSentinel is the provider's literal marker for "value not yet known".
// It is distinct from zero, which means "known to be zero".
const MissingSentinel = "-"

// OptInt is an integer field that may carry the missing sentinel.
type OptInt struct {
	Value   int64
	Missing bool
}

// Int returns a present OptInt.
func Int(v int64) OptInt { return OptInt{Value: v} }

// MissingInt returns the missing sentinel.
func MissingInt() OptInt { return OptInt{Missing: true} }

// ParseOptInt parses a provider integer field. The sentinel, the empty string
// and anything unparseable all map to missing. Thousands separators are
// stripped; the historical feed quotes numbers like "1,23,456".
func ParseOptInt(s string) OptInt {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == MissingSentinel {
		return MissingInt()
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return MissingInt()
	}
	return Int(v)
}

// String renders the value, or the sentinel when missing.
func (o OptInt) String() string {
	if o.Missing {
		return MissingSentinel
	}
	return strconv.FormatInt(o.Value, 10)
}

// Equal reports field equality, treating all missing values as equal.
func (o OptInt) Equal(x OptInt) bool {
	if o.Missing || x.Missing {
		return o.Missing == x.Missing
	}
	return o.Value == x.Value
}

// OptDecimal is a decimal field that may carry the missing sentinel.
type OptDecimal struct {
	Value   decimal.Decimal
	Missing bool
}

// Dec returns a present OptDecimal.
func Dec(v decimal.Decimal) OptDecimal { return OptDecimal{Value: v} }

// MissingDec returns the missing sentinel.
func MissingDec() OptDecimal { return OptDecimal{Missing: true} }

// ParseOptDecimal parses a provider decimal field. The sentinel, the empty
// string and anything unparseable all map to missing.
func ParseOptDecimal(s string) OptDecimal {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if s == "" || s == MissingSentinel {
		return MissingDec()
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return MissingDec()
	}
	return Dec(v)
}

// String renders the value, or the sentinel when missing.
func (o OptDecimal) String() string {
	if o.Missing {
		return MissingSentinel
	}
	return o.Value.String()
}

// Equal reports field equality, treating all missing values as equal.
func (o OptDecimal) Equal(x OptDecimal) bool {
	if o.Missing || x.Missing {
		return o.Missing == x.Missing
	}
	return o.Value.Equal(x.Value)
}
