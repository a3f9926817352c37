package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// Run-fatal errors abort a pipeline run; per-filing errors are recorded
// against the individual filing and never escalate.
var (
	// ErrSourceUnavailable indicates the daily index endpoint could not be
	// reached after retries. Run-fatal.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrMalformedIndex indicates the daily index was retrieved but could
	// not be parsed. Run-fatal, distinct from an empty day.
	ErrMalformedIndex = errors.New("malformed index")

	// ErrContentNotFound indicates a filing document does not exist at its
	// indexed location (404, bad path). Per-filing, recoverable by skip.
	ErrContentNotFound = errors.New("content not found")

	// ErrFetchTimeout indicates a filing fetch exhausted its retry budget
	// on transient failures. Per-filing, recoverable by skip.
	ErrFetchTimeout = errors.New("fetch timeout")

	// ErrNoIdentity indicates the required identity/contact string is not
	// configured. Fatal at startup, before any network call.
	ErrNoIdentity = errors.New("identity not configured")

	// ErrRunInProgress indicates a pipeline run is already active.
	ErrRunInProgress = errors.New("run in progress")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")
)

// HeaderParseError indicates a filing header is missing or invalid.
// Field names the required field that could not be extracted.
type HeaderParseError struct {
	// Field is the missing or invalid header field.
	Field string

	// Accession identifies the filing, when known.
	Accession string
}

func (e *HeaderParseError) Error() string {
	if e.Accession != "" {
		return fmt.Sprintf("header parse: missing field %q in %s", e.Field, e.Accession)
	}
	return fmt.Sprintf("header parse: missing field %q", e.Field)
}

// IsHeaderParseError checks whether err is a HeaderParseError.
// Returns the typed error and true if it is.
func IsHeaderParseError(err error) (*HeaderParseError, bool) {
	var hpe *HeaderParseError
	if errors.As(err, &hpe) {
		return hpe, true
	}
	return nil, false
}

// IsRunFatal reports whether an error aborts the whole run rather than a
// single filing.
func IsRunFatal(err error) bool {
	return errors.Is(err, ErrSourceUnavailable) || errors.Is(err, ErrMalformedIndex)
}
