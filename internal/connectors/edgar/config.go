package edgar

import (
	"strings"
	"time"

	"github.com/custodia-labs/filingwatch/internal/core/domain"
)

const (
	// DefaultBaseURL is the SEC EDGAR site root.
	DefaultBaseURL = "https://www.sec.gov"

	// DefaultTimeout is the per-request HTTP timeout.
	DefaultTimeout = 30 * time.Second

	// DefaultRateLimit keeps aggregate traffic under the SEC fair-access
	// guideline of 10 requests per second.
	DefaultRateLimit = 5.0

	// DefaultRetryMax is the maximum number of attempts per request.
	DefaultRetryMax = 3
)

// Config holds connector configuration.
type Config struct {
	// BaseURL is the EDGAR site root. Tests point this at a local server.
	BaseURL string

	// Identity is the contact string sent as the User-Agent, required by
	// SEC policy (e.g., "Example Corp admin@example.com").
	Identity string

	// RateLimit is the aggregate request rate in requests per second.
	RateLimit float64

	// RetryMax is the maximum number of attempts per request.
	RetryMax int

	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration
}

// DefaultConfig returns a config with defaults applied.
// Identity has no default and must be set by the caller.
func DefaultConfig() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		RateLimit: DefaultRateLimit,
		RetryMax:  DefaultRetryMax,
		Timeout:   DefaultTimeout,
	}
}

// Validate checks the config is usable. Absence of the identity string is
// a fatal configuration error, caught here at startup rather than on the
// first fetch.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Identity) == "" {
		return domain.ErrNoIdentity
	}
	return nil
}

// withDefaults fills unset fields from DefaultConfig.
func (c Config) withDefaults() Config {
	def := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.RateLimit <= 0 {
		c.RateLimit = def.RateLimit
	}
	if c.RetryMax < 1 {
		c.RetryMax = def.RetryMax
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	return c
}
