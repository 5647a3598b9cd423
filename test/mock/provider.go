// Package mock provides test doubles for the trip simulation system.
// These mocks are designed for integration testing where we need
// configurable behavior (delays, errors, specific responses).
package mock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// FlightProvider is a configurable mock implementation of
// domain.FlightProvider. It supports configurable delays, errors, and
// responses for testing various scenarios including timeouts and partial
// failures.
type FlightProvider struct {
	name      string
	options   []domain.FlightOption
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewFlightProvider creates a new mock flight provider with the given name.
// The provider is configured using the builder pattern methods.
func NewFlightProvider(name string) *FlightProvider {
	return &FlightProvider{name: name}
}

// WithOptions configures the provider to return the given flight options.
func (p *FlightProvider) WithOptions(options []domain.FlightOption) *FlightProvider {
	p.options = options
	return p
}

// WithError configures the provider to return the given error.
func (p *FlightProvider) WithError(err error) *FlightProvider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait the given duration before
// responding. This is useful for testing timeout behavior.
func (p *FlightProvider) WithDelay(d time.Duration) *FlightProvider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *FlightProvider) Name() string {
	return p.name
}

// Search implements domain.FlightProvider.Search.
// It respects context cancellation, applies the configured delay, and
// returns the configured options or error.
func (p *FlightProvider) Search(ctx context.Context, q domain.FlightQuery) ([]domain.FlightOption, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if err := wait(ctx, p.delay); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if len(p.options) == 0 {
		return nil, domain.ErrNoResults
	}
	return p.options, nil
}

// CallCount returns the number of times Search was called.
func (p *FlightProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

var _ domain.FlightProvider = (*FlightProvider)(nil)

// HotelProvider is a configurable mock implementation of
// domain.HotelProvider.
type HotelProvider struct {
	name      string
	options   []domain.HotelOption
	err       error
	delay     time.Duration
	callCount int
	mu        sync.Mutex
}

// NewHotelProvider creates a new mock hotel provider with the given name.
func NewHotelProvider(name string) *HotelProvider {
	return &HotelProvider{name: name}
}

// WithOptions configures the provider to return the given hotel options.
func (p *HotelProvider) WithOptions(options []domain.HotelOption) *HotelProvider {
	p.options = options
	return p
}

// WithError configures the provider to return the given error.
func (p *HotelProvider) WithError(err error) *HotelProvider {
	p.err = err
	return p
}

// WithDelay configures the provider to wait before responding.
func (p *HotelProvider) WithDelay(d time.Duration) *HotelProvider {
	p.delay = d
	return p
}

// Name returns the provider's unique identifier.
func (p *HotelProvider) Name() string {
	return p.name
}

// Search implements domain.HotelProvider.Search.
func (p *HotelProvider) Search(ctx context.Context, q domain.HotelQuery) ([]domain.HotelOption, error) {
	p.mu.Lock()
	p.callCount++
	p.mu.Unlock()

	if err := wait(ctx, p.delay); err != nil {
		return nil, err
	}
	if p.err != nil {
		return nil, p.err
	}
	if len(p.options) == 0 {
		return nil, domain.ErrNoResults
	}
	return p.options, nil
}

// CallCount returns the number of times Search was called.
func (p *HotelProvider) CallCount() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.callCount
}

var _ domain.HotelProvider = (*HotelProvider)(nil)

// PlaceProvider is a configurable mock implementation of
// domain.PlaceProvider.
type PlaceProvider struct {
	cities []domain.Place
	nearby []domain.Place
	err    error
}

// NewPlaceProvider creates a new mock place provider.
func NewPlaceProvider() *PlaceProvider {
	return &PlaceProvider{}
}

// WithCities configures the geocode results.
func (p *PlaceProvider) WithCities(cities []domain.Place) *PlaceProvider {
	p.cities = cities
	return p
}

// WithNearby configures the nearby-place results.
func (p *PlaceProvider) WithNearby(places []domain.Place) *PlaceProvider {
	p.nearby = places
	return p
}

// WithError configures both lookups to fail with the given error.
func (p *PlaceProvider) WithError(err error) *PlaceProvider {
	p.err = err
	return p
}

// GeocodeCity implements domain.PlaceProvider.GeocodeCity.
func (p *PlaceProvider) GeocodeCity(ctx context.Context, query string) ([]domain.Place, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.cities) == 0 {
		return nil, domain.ErrNoResults
	}
	return p.cities, nil
}

// FindNearby implements domain.PlaceProvider.FindNearby.
func (p *PlaceProvider) FindNearby(ctx context.Context, lat, lng float64, radiusKm, maxRows int) ([]domain.Place, error) {
	if p.err != nil {
		return nil, p.err
	}
	if len(p.nearby) == 0 {
		return nil, domain.ErrNoResults
	}
	if len(p.nearby) > maxRows {
		return p.nearby[:maxRows], nil
	}
	return p.nearby, nil
}

var _ domain.PlaceProvider = (*PlaceProvider)(nil)

// Store is an in-memory implementation of domain.SimulationStore.
// It is safe for concurrent use and supports forcing the next Save to
// fail, for exercising the save-retry path.
type Store struct {
	mu       sync.Mutex
	records  map[string]*domain.PersistedSimulation
	order    []string
	nextID   int
	saveErr  error
	failOnce bool
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{records: make(map[string]*domain.PersistedSimulation)}
}

// FailNextSave makes the next Save call fail with the given error.
func (s *Store) FailNextSave(err error) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveErr = err
	s.failOnce = true
	return s
}

// Save implements domain.SimulationStore.Save.
func (s *Store) Save(ctx context.Context, record *domain.PersistedSimulation) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failOnce {
		s.failOnce = false
		return "", s.saveErr
	}

	id := record.ID
	if id == "" {
		s.nextID++
		id = fmt.Sprintf("sim-%d", s.nextID)
	}

	stored := *record
	stored.ID = id
	s.records[id] = &stored
	s.order = append(s.order, id)
	return id, nil
}

// List implements domain.SimulationStore.List. Records are returned
// newest first.
func (s *Store) List(ctx context.Context, ownerID string) ([]domain.PersistedSimulation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.PersistedSimulation
	for i := len(s.order) - 1; i >= 0; i-- {
		record, ok := s.records[s.order[i]]
		if ok && record.OwnerID == ownerID {
			out = append(out, *record)
		}
	}
	return out, nil
}

// Delete implements domain.SimulationStore.Delete.
func (s *Store) Delete(ctx context.Context, ownerID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[id]
	if !ok || record.OwnerID != ownerID {
		return domain.ErrSimulationNotFound
	}
	delete(s.records, id)
	return nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

var _ domain.SimulationStore = (*Store)(nil)

func wait(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return ctx.Err()
	}
}
