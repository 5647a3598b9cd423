// Package googleflights adapts the legacy Google Flights search engine to
// the domain FlightProvider port. Its payload shape groups priced results
// under best_flights with a departure_token identifier.
package googleflights

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

// Adapter implements domain.FlightProvider against the legacy engine.
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
// Transient upstream failures are retried with backoff; auth and rate-limit
// rejections are not.
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

// logRetry records a retried upstream call before the backoff sleep.
func logRetry(attempt int, err error) {
	logger.Debug().
		Str("provider", ProviderName).
		Int("attempt", attempt).
		Err(err).
		Msg("Retrying provider call")
}

// searchURL builds the request URL for a query.
func (a *Adapter) searchURL(q domain.FlightQuery) (string, error) {
	u, err := url.Parse(a.baseURL + "/search.json")
	if err != nil {
		return "", domain.NewProviderError(ProviderName, err)
	}

	params := url.Values{}
	params.Set("engine", "google_flights")
	params.Set("flight_type", "round_trip")
	params.Set("departure_id", q.OriginCode)
	params.Set("arrival_id", q.DestinationCode)
	params.Set("outbound_date", q.DepartureDate)
	params.Set("currency", currency)
	params.Set("hl", "en")
	params.Set("api_key", a.apiKey)
	if q.Adults > 1 {
		params.Set("adults", strconv.Itoa(q.Adults))
	}
	if q.Children > 0 {
		params.Set("children", strconv.Itoa(q.Children))
	}
	u.RawQuery = params.Encode()
	return u.String(), nil
}

// fetch performs one HTTP round trip and maps the status code to the error
// taxonomy.
func (a *Adapter) fetch(ctx context.Context, endpoint string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

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

// Ensure Adapter implements the port at compile time.
var _ domain.FlightProvider = (*Adapter)(nil)
