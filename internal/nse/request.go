package nse

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
)

// fetch performs one paced, breaker-guarded GET and returns the body.
func (c *Client) fetch(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doRequest(ctx, rawURL)
	})
	if err != nil {
		return nil, err
	}
	return body.([]byte), nil
}

func (c *Client) doRequest(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// The provider rejects the default Go user agent outright.
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}
	if len(body) == 0 {
		return nil, &APIError{StatusCode: resp.StatusCode, Message: "empty body"}
	}
	if looksLikeHTML(body) {
		// A block page, not data. Retryable, unlike a malformed CSV body.
		return nil, &APIError{StatusCode: resp.StatusCode, Message: softBlockMessage}
	}

	return body, nil
}

// retryFetch runs fetch under the client's retry policy: a fixed number of
// attempts separated by a fixed delay. Context cancellation stops the loop.
func (c *Client) retryFetch(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	op := func() error {
		var err error
		body, err = c.fetch(ctx, rawURL)
		return err
	}
	notify := func(err error, wait time.Duration) {
		c.logger.Warn("request failed, retrying",
			"url", rawURL,
			"err", err,
			"wait", wait,
		)
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(backoff.NewConstantBackOff(c.retry.Delay), uint64(c.retry.MaxAttempts-1)),
		ctx,
	)
	if err := backoff.RetryNotify(op, policy, notify); err != nil {
		return nil, fmt.Errorf("retries exhausted: %w", err)
	}
	return body, nil
}
