// Package geonames adapts the GeoNames web services to the domain
// PlaceProvider port. It backs destination autocomplete and the nearby
// place lookup that seeds tour generation.
package geonames

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/logger"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/retry"
)

// ProviderName is the unique identifier for the GeoNames provider.
const ProviderName = "geonames"

// minCityPopulation is the autocomplete cutoff; smaller places are noise
// for trip planning.
const minCityPopulation = 15000

// GeoNames in-band status values that signal credential or quota problems.
const (
	statusAuthFailed  = 10
	statusDailyLimit  = 18
	statusHourlyLimit = 19
	statusWeeklyLimit = 20
)

// Adapter implements domain.PlaceProvider against GeoNames.
type Adapter struct {
	baseURL  string
	username string
	client   *http.Client
}

// NewAdapter creates an Adapter for the given endpoint and account.
func NewAdapter(baseURL, username string, timeout time.Duration) *Adapter {
	return &Adapter{
		baseURL:  baseURL,
		username: username,
		client:   &http.Client{Timeout: timeout},
	}
}

// Name returns the provider's unique identifier.
func (a *Adapter) Name() string {
	return ProviderName
}

// GeocodeCity returns Brazilian city candidates for a free-text query,
// filtered to population above the cutoff, sorted descending by
// population, with the static airport code attached when known.
func (a *Adapter) GeocodeCity(ctx context.Context, query string) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("country", "BR")
	params.Set("maxRows", "10")
	params.Set("featureClass", "P")
	params.Set("orderby", "population")
	params.Set("cities", "cities15000")
	params.Set("username", a.username)

	resp, err := a.fetch(ctx, "/searchJSON", params)
	if err != nil {
		return nil, err
	}

	places := make([]domain.Place, 0, len(resp.Geonames))
	for _, g := range resp.Geonames {
		if g.Population <= minCityPopulation {
			continue
		}
		place := toPlace(g)
		place.IATA = domain.AirportCodeFor(place.Name)
		places = append(places, place)
	}

	sort.SliceStable(places, func(i, j int) bool {
		return places[i].Population > places[j].Population
	})

	if len(places) == 0 {
		return nil, domain.ErrNoResults
	}
	return places, nil
}

// FindNearby returns up to maxRows populated places within radiusKm of the
// given coordinates.
func (a *Adapter) FindNearby(ctx context.Context, lat, lng float64, radiusKm, maxRows int) ([]domain.Place, error) {
	params := url.Values{}
	params.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	params.Set("lng", strconv.FormatFloat(lng, 'f', -1, 64))
	params.Set("radius", strconv.Itoa(radiusKm))
	params.Set("maxRows", strconv.Itoa(maxRows))
	params.Set("cities", "cities1000")
	params.Set("username", a.username)

	resp, err := a.fetch(ctx, "/findNearbyPlaceNameJSON", params)
	if err != nil {
		return nil, err
	}
	if len(resp.Geonames) == 0 {
		return nil, domain.ErrNoResults
	}

	places := make([]domain.Place, 0, len(resp.Geonames))
	for _, g := range resp.Geonames {
		places = append(places, toPlace(g))
	}
	return places, nil
}

// fetch performs one GET with retry on transient failures.
func (a *Adapter) fetch(ctx context.Context, path string, params url.Values) (*searchResponse, error) {
	endpoint := a.baseURL + path + "?" + params.Encode()

	cfg := retry.ProviderConfig.
		WithRetryIf(domain.IsRetryable).
		WithOnRetry(logRetry)

	return retry.DoWithResult(ctx, func() (*searchResponse, error) {
		return a.doFetch(ctx, endpoint)
	}, cfg)
}

func (a *Adapter) doFetch(ctx context.Context, endpoint string) (*searchResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, err)
	}

	res, err := a.client.Do(req)
	if err != nil {
		return nil, domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: %v", domain.ErrProviderUnavailable, err))
	}
	defer res.Body.Close()

	if res.StatusCode >= 500 {
		return nil, domain.NewRetryableProviderError(ProviderName, fmt.Errorf("%w: status %d", domain.ErrProviderUnavailable, res.StatusCode))
	}
	if res.StatusCode != http.StatusOK {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("unexpected status %d", res.StatusCode))
	}

	var payload searchResponse
	if err := json.NewDecoder(res.Body).Decode(&payload); err != nil {
		return nil, domain.NewProviderError(ProviderName, fmt.Errorf("decode response: %w", err))
	}
	if payload.Status != nil {
		return nil, statusError(payload.Status)
	}
	return &payload, nil
}

// statusError maps the in-band status block to the error taxonomy.
func statusError(s *statusEntry) error {
	switch s.Value {
	case statusAuthFailed:
		return domain.NewProviderError(ProviderName, domain.ErrAuthentication)
	case statusDailyLimit, statusHourlyLimit, statusWeeklyLimit:
		return domain.NewProviderError(ProviderName, domain.ErrRateLimited)
	default:
		return domain.NewProviderError(ProviderName, fmt.Errorf("upstream error: %s", s.Message))
	}
}

// toPlace converts one raw entry. Coordinates arrive as strings; values
// that do not parse become 0.
func toPlace(g geonameEntry) domain.Place {
	lat, _ := strconv.ParseFloat(g.Lat, 64)
	lng, _ := strconv.ParseFloat(g.Lng, 64)
	return domain.Place{
		GeonameID:   g.GeonameID,
		Name:        g.Name,
		AdminName:   g.AdminName1,
		CountryName: g.CountryName,
		Lat:         lat,
		Lng:         lng,
		Population:  g.Population,
	}
}

var _ domain.PlaceProvider = (*Adapter)(nil)

// logRetry records a retried upstream call before the backoff sleep.
func logRetry(attempt int, err error) {
	logger.Debug().
		Str("provider", ProviderName).
		Int("attempt", attempt).
		Err(err).
		Msg("Retrying provider call")
}
