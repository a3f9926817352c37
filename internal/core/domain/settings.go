package domain

import (
	"strings"
	"time"
)

// Settings holds all application configuration.
type Settings struct {
	// Identity is the contact string sent as the User-Agent on every
	// request, required by SEC fair-access policy
	// (e.g., "Example Corp admin@example.com").
	Identity string

	// FormTypes is the set of submission types to process.
	FormTypes []string

	// RateLimit is the maximum aggregate request rate against the source,
	// in requests per second, shared across all workers.
	RateLimit float64

	// RetryMax is the maximum number of attempts per request.
	RetryMax int

	// Workers bounds the fetch worker pool.
	Workers int

	// RunTimeout aborts remaining fetches when exceeded; completed
	// records are kept.
	RunTimeout time.Duration

	// DataDir is where the seen store and scheduler state live.
	DataDir string

	// MappingFile is the path to the CIK to ticker/exchange table.
	// Empty disables enrichment (records carry no ticker/exchange).
	MappingFile string

	// Schedule holds the recurring-run configuration.
	Schedule ScheduleSettings
}

// ScheduleSettings configures the recurring daily run.
type ScheduleSettings struct {
	// Enabled turns the background scheduler on.
	Enabled bool

	// Interval is how often to check for a new business day's index.
	Interval time.Duration
}

// DefaultSettings returns settings with sensible defaults.
// Identity has no default: it must be configured explicitly.
func DefaultSettings() Settings {
	return Settings{
		FormTypes:  []string{"8-K"},
		RateLimit:  5, // SEC fair-access guideline is 10 req/s; stay under
		RetryMax:   3,
		Workers:    4,
		RunTimeout: 15 * time.Minute,
		Schedule: ScheduleSettings{
			Enabled:  false,
			Interval: 6 * time.Hour,
		},
	}
}

// Validate checks the settings are usable. A missing identity is a fatal
// configuration error detected before any network call.
func (s Settings) Validate() error {
	if strings.TrimSpace(s.Identity) == "" {
		return ErrNoIdentity
	}
	if s.RateLimit <= 0 {
		return ErrInvalidInput
	}
	if s.RetryMax < 1 {
		return ErrInvalidInput
	}
	if s.Workers < 1 {
		return ErrInvalidInput
	}
	return nil
}
