package model

// Series is an NSE trading-series code.
type Series string

// Trading series observed in the daily batch feed.
const (
	SeriesEQ Series = "EQ"
	SeriesBE Series = "BE"
	SeriesBL Series = "BL"
	SeriesBZ Series = "BZ"
	SeriesSM Series = "SM"
	SeriesST Series = "ST"
	SeriesSZ Series = "SZ"
)

// validSeries is the set of series a ledger tracks.
var validSeries = map[Series]bool{
	SeriesSM: true,
	SeriesBE: true,
	SeriesBZ: true,
	SeriesEQ: true,
	SeriesST: true,
	SeriesSZ: true,
	SeriesBL: true,
}

// deliverySeries is the subset for which the provider publishes delivery data.
var deliverySeries = map[Series]bool{
	SeriesEQ: true,
	SeriesBL: true,
	SeriesSM: true,
}

// Valid reports whether s is a tracked trading series.
func (s Series) Valid() bool { return validSeries[s] }

// HasDelivery reports whether delivery statistics exist for s.
func (s Series) HasDelivery() bool { return deliverySeries[s] }
