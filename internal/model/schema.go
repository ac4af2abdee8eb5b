package model

// Column names of the canonical record layout. Both provider feeds use other
// header spellings; rows are mapped onto these names once at the provider
// boundary and accessed by name everywhere else.
const (
	ColSymbol    = "SYMBOL"
	ColSeries    = "SERIES"
	ColDate      = "DATE1"
	ColPrevClose = "PREV_CLOSE"
	ColOpen      = "OPEN_PRICE"
	ColHigh      = "HIGH_PRICE"
	ColLow       = "LOW_PRICE"
	ColLast      = "LAST_PRICE"
	ColClose     = "CLOSE_PRICE"
	ColAvg       = "AVG_PRICE"
	ColVolume    = "TTL_TRD_QNTY"
	ColTurnover  = "TURNOVER_LACS"
	ColTrades    = "NO_OF_TRADES"
	ColDelivQty  = "DELIV_QTY"
	ColDelivPer  = "DELIV_PER"
)

// Schema is a versioned, ordered column descriptor. It is shipped with the
// engine, so a new ledger can always be bootstrapped even from an empty store.
type Schema struct {
	Version int
	Columns []string
}

// LedgerSchema is the canonical 15-column layout of ledger files and of the
// daily batch feed (price, volume and delivery).
var LedgerSchema = Schema{
	Version: 1,
	Columns: []string{
		ColSymbol, ColSeries, ColDate,
		ColPrevClose, ColOpen, ColHigh, ColLow, ColLast, ColClose, ColAvg,
		ColVolume, ColTurnover, ColTrades, ColDelivQty, ColDelivPer,
	},
}

// DeliverySchema is the 6-column layout of the delivery-only historical feed.
var DeliverySchema = Schema{
	Version: 1,
	Columns: []string{
		ColSymbol, ColSeries, ColDate,
		ColTrades, ColDelivQty, ColDelivPer,
	},
}
