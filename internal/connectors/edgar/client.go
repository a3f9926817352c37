package edgar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/custodia-labs/filingwatch/internal/logger"
)

const (
	// RetryDelay is the initial delay between retries.
	RetryDelay = time.Second

	// maxBodySize caps a single response body (50 MB). Full filing
	// submissions with exhibits can be large but not unbounded.
	maxBodySize = 50 << 20
)

// Client performs rate-limited, retrying HTTP GETs against EDGAR.
// A single Client (and its limiter) is shared by the index source and
// all fetch workers.
type Client struct {
	cfg         Config
	http        *http.Client
	rateLimiter *RateLimiter
}

// NewClient creates an EDGAR HTTP client from config.
// Config.Identity must be validated by the caller beforehand.
func NewClient(cfg Config) *Client {
	cfg = cfg.withDefaults()
	return &Client{
		cfg:         cfg,
		http:        &http.Client{Timeout: cfg.Timeout},
		rateLimiter: NewRateLimiter(cfg.RateLimit),
	}
}

// Get fetches a URL with rate limiting and bounded retries on transient
// failures. Non-success statuses return *APIError; the body is fully
// read and returned on success.
func (c *Client) Get(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= c.cfg.RetryMax; attempt++ {
		if attempt > 1 {
			// Exponential backoff: 1s, 2s, 4s...
			delay := RetryDelay * time.Duration(1<<(attempt-2))
			logger.Debug("Retrying %s in %s (attempt %d/%d)", url, delay, attempt, c.cfg.RetryMax)
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
		}

		body, err := c.get(ctx, url)
		if err == nil {
			return body, nil
		}
		lastErr = err

		if !isTransient(err) {
			return nil, err
		}
		logger.Debug("Transient error fetching %s: %v", url, err)
	}

	return nil, fmt.Errorf("giving up after %d attempts: %w", c.cfg.RetryMax, lastErr)
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	// SEC fair-access policy requires a contact identity in the User-Agent.
	req.Header.Set("User-Agent", c.cfg.Identity)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if err := c.rateLimiter.CheckRateLimit(resp); err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{
			StatusCode: resp.StatusCode,
			Message:    http.StatusText(resp.StatusCode),
			URL:        url,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("read body from %s: %w", url, err)
	}
	return body, nil
}

// BaseURL returns the configured EDGAR site root.
func (c *Client) BaseURL() string {
	return c.cfg.BaseURL
}
