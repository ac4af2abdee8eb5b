package nse

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"time"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// EarliestYear is the first year the historical endpoint has data for.
const EarliestYear = 1996

// FeedType selects the historical endpoint's response shape.
type FeedType string

const (
	// FeedDeliverable returns the 6-column delivery history.
	FeedDeliverable FeedType = "deliverable"
	// FeedPriceVolumeDeliverable returns the full 15-column history.
	FeedPriceVolumeDeliverable FeedType = "priceVolumeDeliverable"
)

func (f FeedType) schema() model.Schema {
	if f == FeedDeliverable {
		return model.DeliverySchema
	}
	return model.LedgerSchema
}

// SupportedRange is the full date range the historical endpoint covers as of
// now: the earliest supported year through the end of the current year.
func SupportedRange(now time.Time) model.DateRange {
	return model.DateRange{
		From: model.NewDate(EarliestYear, time.January, 1),
		To:   model.NewDate(now.Year(), time.December, 31),
	}
}

// FetchHistory fetches a security's history over the given range.
//
// The endpoint caps each query at a one-year span, so the range is split into
// whole-year windows and fetched one request per window. Each window gets the
// client's full retry budget; a window whose retries are exhausted, or whose
// 200 body fails to parse as tabular data, is skipped and the fetch moves on.
// Windows are concatenated in order with no cross-window dedup.
//
// An empty result means "nothing available", not an error; the only error
// returned is context cancellation.
func (c *Client) FetchHistory(ctx context.Context, symbol string, r model.DateRange, feed FeedType) ([]model.Record, error) {
	var recs []model.Record
	for _, year := range r.Years() {
		if err := ctx.Err(); err != nil {
			return recs, err
		}

		windowURL := c.historyURL(symbol, year, feed)
		body, err := c.retryFetch(ctx, windowURL)
		if err != nil {
			if ctx.Err() != nil {
				return recs, ctx.Err()
			}
			c.logger.Warn("history window unavailable",
				"symbol", symbol,
				"year", year,
				"err", err,
			)
			continue
		}

		windowRecs, err := parseHistoryCSV(body, feed.schema())
		if err != nil {
			// A malformed 200 body will not improve on retry. Skip the window.
			c.logger.Warn("history window malformed",
				"symbol", symbol,
				"year", year,
				"err", err,
			)
			continue
		}
		recs = append(recs, windowRecs...)
	}
	return recs, nil
}

func (c *Client) historyURL(symbol string, year int, feed FeedType) string {
	q := url.Values{}
	q.Set("from", fmt.Sprintf("01-01-%d", year))
	q.Set("to", fmt.Sprintf("31-12-%d", year))
	q.Set("symbol", symbol)
	q.Set("type", string(feed))
	q.Set("series", "ALL")
	q.Set("csv", "true")
	return c.apiURL + "/historicalOR/generateSecurityWiseHistoricalData?" + q.Encode()
}

// parseHistoryCSV maps a historical response body onto normalized records.
// The provider's header spellings differ from the canonical column names but
// the order does not; the header row is skipped and fields map positionally
// onto the schema, named access from there on. Rows whose date fails to parse
// are dropped.
func parseHistoryCSV(body []byte, s model.Schema) ([]model.Record, error) {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("body has no header row")
	}

	recs := make([]model.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := model.ParseRecord(s, row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		if rec.Date.IsZero() {
			continue
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// FilterDeliverySeries keeps only the rows of series that carry delivery
// data. The gap-filling path restricts its history to these; the bootstrap
// path deliberately does not.
func FilterDeliverySeries(recs []model.Record) []model.Record {
	out := recs[:0:0]
	for _, r := range recs {
		if r.Series.HasDelivery() {
			out = append(out, r)
		}
	}
	return out
}
