package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for the trip simulation engine. Callers classify failures
// with errors.Is and the helper checkers below.
var (
	// ErrNoResults marks a valid search that matched nothing. This is not a
	// failure for UI purposes but must stay distinguishable from
	// success-with-data and from provider errors.
	ErrNoResults = errors.New("no results found")

	// ErrProviderUnavailable marks a network failure, timeout, or 5xx from
	// an upstream travel-data provider.
	ErrProviderUnavailable = errors.New("provider unavailable")

	// ErrAuthentication marks a rejected provider credential.
	ErrAuthentication = errors.New("provider authentication failed")

	// ErrRateLimited marks a provider rate-limit rejection.
	ErrRateLimited = errors.New("rate limited by provider")

	// ErrInvalidSearch marks missing or malformed search parameters.
	ErrInvalidSearch = errors.New("invalid search parameters")

	// ErrAirportNotFound marks a city with no entry in the airport table.
	// It is surfaced to the user, never silently defaulted.
	ErrAirportNotFound = errors.New("airport not found")

	// ErrInvalidDateRange marks an end date on or before the start date.
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrIncompleteSelection marks an attempt to advance the flow without
	// the required choices.
	ErrIncompleteSelection = errors.New("incomplete selection")

	// ErrInvalidPhase marks an operation issued in a flow phase that does
	// not permit it.
	ErrInvalidPhase = errors.New("operation not allowed in current phase")

	// ErrPersistence marks a save or delete rejected by durable storage.
	ErrPersistence = errors.New("persistence failure")

	// ErrSimulationNotFound marks a lookup for a simulation that does not
	// exist or is owned by another user.
	ErrSimulationNotFound = errors.New("simulation not found")

	// ErrSessionNotFound marks a lookup for an unknown or expired
	// simulation session.
	ErrSessionNotFound = errors.New("simulation session not found")
)

// ProviderError wraps an error from a specific provider so callers can tie
// a failure to the search that caused it.
type ProviderError struct {
	// Provider is the name of the provider that failed.
	Provider string

	// Err is the underlying error.
	Err error

	// Retryable indicates whether retrying the call may succeed.
	Retryable bool
}

// Error implements the error interface.
func (e *ProviderError) Error() string {
	return fmt.Sprintf("provider %s: %v", e.Provider, e.Err)
}

// Unwrap returns the underlying error for errors.Is / errors.As.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError creates a non-retryable provider error.
func NewProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err}
}

// NewRetryableProviderError creates a retryable provider error.
func NewRetryableProviderError(provider string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Err: err, Retryable: true}
}

// NewProviderUnavailableError creates a retryable unavailability error for
// the named provider.
func NewProviderUnavailableError(provider string) *ProviderError {
	return NewRetryableProviderError(provider, ErrProviderUnavailable)
}

// NormalizationError reports a single malformed item inside an otherwise
// usable provider response. It is absorbed and logged by normalizers, never
// surfaced to the user.
type NormalizationError struct {
	// Provider is the provider whose payload contained the item.
	Provider string

	// Reason describes what made the item unusable.
	Reason string
}

// Error implements the error interface.
func (e *NormalizationError) Error() string {
	return fmt.Sprintf("normalization failed for %s item: %s", e.Provider, e.Reason)
}

// WrapInvalidSearch wraps a formatted message with ErrInvalidSearch.
func WrapInvalidSearch(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidSearch, fmt.Sprintf(format, args...))
}

// IsInvalidSearch reports whether err is a search-parameter validation error.
func IsInvalidSearch(err error) bool {
	return errors.Is(err, ErrInvalidSearch) || errors.Is(err, ErrAirportNotFound)
}

// IsNoResults reports whether err is an empty-result condition.
func IsNoResults(err error) bool {
	return errors.Is(err, ErrNoResults)
}

// IsSimulationNotFound reports whether err is a missing-record condition.
func IsSimulationNotFound(err error) bool {
	return errors.Is(err, ErrSimulationNotFound)
}

// IsRetryable reports whether err is worth retrying at the transport layer.
func IsRetryable(err error) bool {
	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Retryable
	}
	return errors.Is(err, ErrProviderUnavailable)
}
