// Package searchapi adapts the SearchAPI flight engine to the domain
// FlightProvider port. It serves the flat flights payload shape where each
// entry carries a flight_id and inlined leg fields.
package searchapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/logger"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/retry"
)

// Adapter implements domain.FlightProvider against SearchAPI.
type Adapter struct {
	baseURL string
	apiKey  string
	client  *http.Client
}

// NewAdapter creates an Adapter for the given endpoint and credentials.
func NewAdapter(baseURL, apiKey string, timeout time.Duration) *Adapter {
	return &Adapter{
		baseURL: baseURL,
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// Search queries the engine and returns normalized flight options.
func (a *Adapter) Search(ctx context.Context, q domain.FlightQuery) ([]domain.FlightOption, error) {
	endpoint, err := a.searchURL(q)
	if err != nil {
		return nil, err
	}

	cfg := retry.ProviderConfig.
		WithRetryIf(domain.IsRetryable).
		WithOnRetry(logRetry)

	resp, err := retry.DoWithResult(ctx, func() (*searchResponse, error) {
		return a.fetch(ctx, endpoint)
	}, cfg)
	if err != nil {
		return nil, err
	}

	return normalize(resp)
}

func (a *Adapter) searchURL(q domain.FlightQuery) (string, error) {
	u, err := url.Parse(a.baseURL + "/search")
	if err != nil {
		return "", domain.NewProviderError(ProviderName, err)
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("departure_id", q.OriginCode)
	params.Set("arrival_id", q.DestinationCode)
	params.Set("outbound_date", q.DepartureDate)
	params.Set("currency", currency)
	if q.Adults > 1 {
		params.Set("adults", strconv.Itoa(q.Adults))
	}
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// fetch performs one HTTP round trip. The API key travels as a bearer
// token, not a query parameter.
func (a *Adapter) fetch(ctx context.Context, endpoint string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	req.Header.Set("Authorization", "Bearer "+a.apiKey)

	res, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
	}
	defer res.Body.Close()

	switch {
	case res.StatusCode == http.StatusUnauthorized || res.StatusCode == http.StatusForbidden:
		return nil, domain.NewProviderError(ProviderName, domain.ErrAuthentication)
	case res.StatusCode == http.StatusTooManyRequests:
		return nil, domain.NewProviderError(ProviderName, domain.ErrRateLimited)
	case res.StatusCode == http.StatusBadRequest:
		return nil, domain.NewProviderError(ProviderName, domain.WrapInvalidSearch("rejected by flight provider"))
	case res.StatusCode >= 500:
		return nil, domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, res.StatusCode))
	case res.StatusCode != http.StatusOK:
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode response: %w", err))
	}
	if payload.Error != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("upstream error: %s", payload.Error.Message))
	}
	return &payload, nil
}

var _ domain.FlightProvider = (*Adapter)(nil)

// logRetry records a retried upstream call before the backoff sleep.
func logRetry(attempt int, err error) {
	logger.Debug().
		Str("provider", ProviderName).
		Int("attempt", attempt).
		Err(err).
		Msg("Retrying provider call")
}
