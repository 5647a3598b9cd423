// Package hotels4 adapts the Hotels4 accommodation API to the domain
// HotelProvider port. Searching is a two-step flow: resolve the city to a
// region id, then list properties for that region and stay window.
package hotels4

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/logger"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/retry"
)

// Adapter implements domain.HotelProvider against Hotels4.
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

// Search resolves the destination city and lists properties for the stay.
// A city with no region match yields ErrNoResults, not a provider failure.
func (a *Adapter) Search(ctx context.Context, q domain.HotelQuery) ([]domain.HotelOption, error) {
	cfg := retry.ProviderConfig.
		WithRetryIf(domain.IsRetryable).
		WithOnRetry(logRetry)

	regionID, err := retry.DoWithResult(ctx, func() (string, error) {
		return a.lookupRegion(ctx, q.CityName)
	}, cfg)
	if err != nil {
		return nil, err
	}

	body, err := a.listRequestBody(regionID, q)
	if err != nil {
		return nil, err
	}

	resp, err := retry.DoWithResult(ctx, func() (*propertiesResponse, error) {
		return a.listProperties(ctx, body)
	}, cfg)
	if err != nil {
		return nil, err
	}

	return normalize(resp)
}

// lookupRegion resolves a city name to the first matching region id.
func (a *Adapter) lookupRegion(ctx context.Context, city string) (string, error) {
	endpoint := a.baseURL + "/locations/v3/search?locale=pt_BR&q=" + url.QueryEscape(city)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", domain.NewProviderError(ProviderName, err)
	}
	a.setHeaders(req)

	res, err := a.client.Do(req)
	if err != nil {
		return "", domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
	}
	defer res.Body.Close()

	if err := a.checkStatus(res.StatusCode); err != nil {
		return "", err
	}

	var payload locationResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return "", domain.NewProviderError(ProviderName, fmt.Errorf("decode region response: %w", err))
	}
	if len(payload.SR) == 0 || payload.SR[0].GaiaID == "" {
		return "", domain.ErrNoResults
	}
	return payload.SR[0].GaiaID, nil
}

// listRequestBody builds the listing request for a region and stay window.
func (a *Adapter) listRequestBody(regionID string, q domain.HotelQuery) ([]byte, error) {
	checkIn, err := toDateParts(q.CheckIn)
	if err != nil {
		return nil, domain.WrapInvalidSearch("invalid check-in date %q", q.CheckIn)
	}
	checkOut, err := toDateParts(q.CheckOut)
	if err != nil {
		return nil, domain.WrapInvalidSearch("invalid check-out date %q", q.CheckOut)
	}

	reqBody := listRequest{
		Currency:     currency,
		CheckInDate:  checkIn,
		CheckOutDate: checkOut,
		ResultsSize:  domain.MaxHotelResults,
	}
	reqBody.Destination.RegionID = regionID

	r := room{Adults: q.Adults}
	for i := 0; i < q.Children; i++ {
		// The party model carries a child count but no ages; the listing
		// API requires one, so every child is sent with a fixed age.
		r.Children = append(r.Children, childAge{Age: 10})
	}
	reqBody.Rooms = []room{r}

	return json.Marshal(reqBody)
}

// listProperties performs the listing round trip.
func (a *Adapter) listProperties(ctx context.Context, body []byte) (*propertiesResponse, error) {
	endpoint := a.baseURL + "/properties/v2/list"

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}
	a.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	res, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
	}
	defer res.Body.Close()

	if err := a.checkStatus(res.StatusCode); err != nil {
		return nil, err
	}

	var payload propertiesResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode listing response: %w", err))
	}
	return &payload, nil
}

func (a *Adapter) setHeaders(req *http.Request) {
	req.Header.Set("X-RapidAPI-Key", a.apiKey)
	req.Header.Set("X-RapidAPI-Host", "hotels4.p.rapidapi.com")
}

// checkStatus maps HTTP status codes to the error taxonomy.
func (a *Adapter) checkStatus(code int) error {
	switch {
	case code == http.StatusOK:
		return nil
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return domain.NewProviderError(ProviderName, domain.ErrAuthentication)
	case code == http.StatusTooManyRequests:
		return domain.NewProviderError(ProviderName, domain.ErrRateLimited)
	case code == http.StatusBadRequest:
		return domain.NewProviderError(ProviderName, domain.WrapInvalidSearch("rejected by hotel provider"))
	case code >= 500:
		return domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, code))
	default:
		return domain.NewProviderError(ProviderName, fmt.Errorf("unexpected status %d", code))
	}
}

// toDateParts splits an ISO date into the day/month/year triple the
// listing endpoint expects.
func toDateParts(iso string) (dateParts, error) {
	t, err := time.Parse(domain.DateLayout, iso)
	if err != nil {
		return dateParts{}, err
	}
	return dateParts{Day: t.Day(), Month: int(t.Month()), Year: t.Year()}, nil
}

var _ domain.HotelProvider = (*Adapter)(nil)

// logRetry records a retried upstream call before the backoff sleep.
func logRetry(attempt int, err error) {
	logger.Debug().
		Str("provider", ProviderName).
		Int("attempt", attempt).
		Err(err).
		Msg("Retrying provider call")
}
