package edgar

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// RateLimitError indicates EDGAR throttled the request (429 or 403).
type RateLimitError struct {
	ResetAt time.Time
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("edgar: rate limited, retry at %s", e.ResetAt.Format(time.RFC3339))
}

// APIError represents a non-success HTTP response from EDGAR.
type APIError struct {
	StatusCode int
	Message    string
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("edgar: HTTP %d: %s (URL: %s)", e.StatusCode, e.Message, e.URL)
}

// IsNotFound checks if the error indicates a missing resource.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404 || apiErr.StatusCode == 410
	}
	return false
}

// IsRateLimited checks if the error indicates throttling.
func IsRateLimited(err error) bool {
	var rateLimitErr *RateLimitError
	return errors.As(err, &rateLimitErr)
}

// isTransient reports whether a failed request is worth retrying.
// Rate limiting, server errors, and network failures are transient;
// client errors such as 404 are not.
func isTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if IsRateLimited(err) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode >= 500
	}
	// Network-level failures (DNS, connection reset, timeout) arrive as
	// plain transport errors rather than APIError.
	return true
}
