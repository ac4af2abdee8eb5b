// Package nse provides the client for the exchange's public data endpoints.
//
// Endpoints:
//   - historical per-security data: https://www.nseindia.com/api/historicalOR/...
//     (capped at a one-year span per query, so requests are windowed by year)
//   - daily full-market batch: https://nsearchives.nseindia.com/products/content/...
//   - rename history: https://nsearchives.nseindia.com/content/equities/symbolchange.csv
//
// The provider throttles aggressively and answers over-limit requests with an
// HTML block page under a 200 status. Every request is paced by a token
// bucket, retried under a constant-delay policy, and guarded by a circuit
// breaker that trips on consecutive failures.
package nse
