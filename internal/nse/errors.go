package nse

import (
	"bytes"
	"fmt"
)

// APIError represents a failed request to an exchange endpoint. All APIErrors
// are transient from the retry loop's point of view: non-200 statuses, empty
// bodies and soft-block pages all resolve themselves with time.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nse api error %d: %s", e.StatusCode, e.Message)
}

// SoftBlocked reports whether the error is the provider's rate-limit block
// page (HTML under a 200 status).
func (e *APIError) SoftBlocked() bool {
	return e.StatusCode == 200 && e.Message == softBlockMessage
}

// IsRetryable reports whether retrying can help. The provider answers
// throttled requests with block pages, empty bodies and assorted 4xx/5xx
// statuses interchangeably, so every APIError is worth the retry budget.
func (e *APIError) IsRetryable() bool { return true }

const softBlockMessage = "soft block (html body)"

// looksLikeHTML detects the provider's block page: the expected tabular body
// never starts with an angle bracket.
func looksLikeHTML(body []byte) bool {
	trimmed := bytes.TrimLeft(body, " \t\r\n\xef\xbb\xbf")
	return len(trimmed) > 0 && trimmed[0] == '<'
}
