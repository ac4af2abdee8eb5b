package nse

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
)

// Default client settings. The retry budget and pacing are deliberately
// conservative; deployments tune them via config to stay inside the
// provider's tolerance.
const (
	DefaultAPIURL     = "https://www.nseindia.com/api"
	DefaultArchiveURL = "https://nsearchives.nseindia.com"
	DefaultTimeout    = 10 * time.Second
	DefaultUserAgent  = "Mozilla/5.0"

	DefaultMaxAttempts      = 10
	DefaultRetryDelay       = 2 * time.Second
	DefaultRequestsPerSec   = 1.0
	DefaultBurst            = 1
	DefaultBreakerThreshold = 20
)

// RetryPolicy bounds the per-request retry loop: a fixed number of attempts
// with a fixed delay between them.
type RetryPolicy struct {
	MaxAttempts int
	Delay       time.Duration
}

// Client accesses the exchange's data endpoints.
type Client struct {
	apiURL     string
	archiveURL string
	userAgent  string
	httpClient *http.Client
	logger     *slog.Logger

	retry   RetryPolicy
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker
}

// Option configures a Client.
type Option func(*Client)

// NewClient creates a client with the default pacing, retry and breaker
// settings.
func NewClient(opts ...Option) *Client {
	c := &Client{
		apiURL:     DefaultAPIURL,
		archiveURL: DefaultArchiveURL,
		userAgent:  DefaultUserAgent,
		httpClient: &http.Client{Timeout: DefaultTimeout},
		logger:     slog.Default(),
		retry:      RetryPolicy{MaxAttempts: DefaultMaxAttempts, Delay: DefaultRetryDelay},
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSec), DefaultBurst),
	}

	for _, opt := range opts {
		opt(c)
	}
	if c.breaker == nil {
		c.breaker = newBreaker(DefaultBreakerThreshold)
	}

	return c
}

func newBreaker(threshold uint32) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name: "nse",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
	})
}

// WithBaseURLs overrides the API and archive endpoints. For tests.
func WithBaseURLs(apiURL, archiveURL string) Option {
	return func(c *Client) {
		c.apiURL = apiURL
		c.archiveURL = archiveURL
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithRetryPolicy sets the retry budget and inter-attempt delay.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Client) {
		if p.MaxAttempts > 0 {
			c.retry.MaxAttempts = p.MaxAttempts
		}
		if p.Delay > 0 {
			c.retry.Delay = p.Delay
		}
	}
}

// WithRateLimit sets the outbound request pacing.
func WithRateLimit(requestsPerSec float64, burst int) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSec), burst)
	}
}

// WithBreakerThreshold sets how many consecutive failures trip the circuit
// breaker.
func WithBreakerThreshold(threshold uint32) Option {
	return func(c *Client) {
		c.breaker = newBreaker(threshold)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}
