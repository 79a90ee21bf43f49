package core

import (
	"errors"
	"fmt"
)

// ProviderError represents a failure returned by a provider with full context.
// Err always wraps one of the sentinel errors below, so callers classify with
// errors.Is and display Message directly.
type ProviderError struct {
	Provider   string
	Status     int
	Code       string
	Message    string
	RetryAfter string
	Err        error
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s (status=%d, code=%s)", e.Provider, e.Message, e.Status, e.Code)
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s (code=%s)", e.Provider, e.Message, e.Code)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

// Unwrap returns the underlying sentinel for error chaining.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Sentinel errors for classification. Every failure leaving the dispatch
// layer wraps exactly one of these.
var (
	// ErrConfig marks a missing or invalid API key, or an unknown
	// provider kind.
	ErrConfig = errors.New("configuration error")

	// ErrTransport marks network failures, timeouts, and non-2xx HTTP
	// statuses other than auth and rate-limit responses.
	ErrTransport = errors.New("transport error")

	// ErrRateLimited marks HTTP 429 responses.
	ErrRateLimited = errors.New("rate limited")

	// ErrAuth marks HTTP 401/403 responses.
	ErrAuth = errors.New("unauthorized")

	// ErrMalformedResponse marks a 2xx response with no recognizable
	// image after all of a provider's parse strategies were exhausted.
	ErrMalformedResponse = errors.New("malformed response")

	// ErrNoImage marks a well-formed response in which the model
	// declined to produce an image and returned only text.
	ErrNoImage = errors.New("no image produced")
)
