package domain

import "context"

//go:generate mockgen -source=provider.go -destination=mock_provider.go -package=domain

// FlightQuery carries the parameters of a flight search.
type FlightQuery struct {
	// OriginCode and DestinationCode are resolved IATA airport codes.
	OriginCode      string
	DestinationCode string

	// DepartureDate is the outbound date in DateLayout format.
	DepartureDate string

	// Adults and Children are the party composition.
	Adults   int
	Children int
}

// HotelQuery carries the parameters of a hotel search.
type HotelQuery struct {
	// CityName is the bare destination city name.
	CityName string

	// CheckIn and CheckOut are calendar dates in DateLayout format.
	CheckIn  string
	CheckOut string

	// Adults and Children are the party composition.
	Adults   int
	Children int
}

// FlightProvider is the port to an external flight-search provider.
// Implementations normalize their raw payload into canonical FlightOptions
// and return ErrNoResults when the response is empty, so callers can tell
// "zero matches" from "not yet searched".
type FlightProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Search queries the provider and returns normalized flight options.
	Search(ctx context.Context, q FlightQuery) ([]FlightOption, error)
}

// HotelProvider is the port to an external hotel-search provider.
type HotelProvider interface {
	// Name returns the provider's unique identifier.
	Name() string

	// Search queries the provider and returns normalized hotel options.
	Search(ctx context.Context, q HotelQuery) ([]HotelOption, error)
}

// PlaceProvider is the port to the geographic data provider. It feeds both
// the origin/destination pickers and tour generation.
type PlaceProvider interface {
	// GeocodeCity returns ranked candidate places for a free-text query,
	// filtered to population > 15,000 and sorted descending by population.
	GeocodeCity(ctx context.Context, query string) ([]Place, error)

	// FindNearby returns up to maxRows populated places within radiusKm of
	// the given coordinates.
	FindNearby(ctx context.Context, lat, lng float64, radiusKm, maxRows int) ([]Place, error)
}

// SimulationStore is the port to durable storage for saved simulations.
type SimulationStore interface {
	// Save persists the record and returns its assigned id.
	Save(ctx context.Context, sim *PersistedSimulation) (string, error)

	// List returns the owner's saved simulations, newest first.
	List(ctx context.Context, ownerID string) ([]PersistedSimulation, error)

	// Delete removes the record if it belongs to ownerID. Returns
	// ErrSimulationNotFound when no such record exists for that owner.
	Delete(ctx context.Context, ownerID, id string) error
}
