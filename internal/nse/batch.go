package nse

import (
	"context"
	"fmt"

	"github.com/rogeredwin/SecurityWiseNSEData/internal/model"
)

// batchDateFormat is the DDMMYYYY form embedded in the archive filename.
const batchDateFormat = "02012006"

// FetchDailyBatch downloads the full-market batch file for a date and returns
// the raw body for caching. Failures after the retry budget abort that date's
// run; the caller must not merge against a partial batch.
func (c *Client) FetchDailyBatch(ctx context.Context, d model.Date) ([]byte, error) {
	u := fmt.Sprintf("%s/products/content/sec_bhavdata_full_%s.csv",
		c.archiveURL, d.Time().Format(batchDateFormat))
	body, err := c.retryFetch(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch daily batch %s: %w", d, err)
	}
	return body, nil
}

// FetchSymbolChanges downloads the rename-history feed. Callers fall back to
// their cached copy when this fails.
func (c *Client) FetchSymbolChanges(ctx context.Context) ([]byte, error) {
	body, err := c.retryFetch(ctx, c.archiveURL+"/content/equities/symbolchange.csv")
	if err != nil {
		return nil, fmt.Errorf("fetch symbol changes: %w", err)
	}
	return body, nil
}
