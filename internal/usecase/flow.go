// Package usecase orchestrates the simulation flow: issuing candidate
// searches, guarding phase transitions, deriving costs and persisting the
// final selection.
package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/infrastructure/logger"
)

// Defaults for the flow dependencies.
const (
	DefaultSearchTimeout = 30 * time.Second

	// NearbyRadiusKm and NearbyMaxRows bound the place lookup that seeds
	// tour generation.
	NearbyRadiusKm = 30
	NearbyMaxRows  = 20
)

// TourGenerator derives tour options from places near the destination.
type TourGenerator interface {
	FromPlaces(places []domain.Place, max int) []domain.TourOption
}

// Summary is the read-only costed view of a completed selection.
type Summary struct {
	Selection domain.TripSelection `json:"selection"`
	Cost      domain.CostBreakdown `json:"cost"`
}

// SearchParams carries everything a candidate search needs. Origin and
// Destination arrive already geocoded by the city autocomplete.
type SearchParams struct {
	Origin      domain.PlaceRef
	Destination domain.PlaceRef
	StartDate   string
	EndDate     string
	Adults      int
	Children    int
}

// TripFlowUseCase drives a session through the simulation flow.
type TripFlowUseCase interface {
	// StartSearch validates the parameters, resolves airport codes and
	// issues the flight and hotel searches together. It returns once both
	// slots settle; a superseded search's late results are discarded.
	StartSearch(ctx context.Context, session *Session, params SearchParams) (Snapshot, error)

	// ChooseFlight sets the chosen flight from the candidate list.
	ChooseFlight(session *Session, flightID string) error

	// ChooseHotel sets the chosen hotel from the candidate list.
	ChooseHotel(session *Session, hotelID string) error

	// AdvanceToTours moves to tour selection, loading tour candidates for
	// the destination. Requires both flight and hotel to be chosen.
	AdvanceToTours(ctx context.Context, session *Session) ([]domain.TourOption, error)

	// ToggleTour flips one tour's membership and returns the recomputed
	// cost breakdown.
	ToggleTour(session *Session, tourID string) (domain.CostBreakdown, error)

	// BackToSelecting returns from tour selection to flight and hotel
	// selection. Chosen tours are kept.
	BackToSelecting(session *Session) error

	// AdvanceToSummary moves to the read-only costed summary.
	AdvanceToSummary(session *Session) (Summary, error)

	// Save persists the selection with a re-derived total and ends the
	// flow. On failure the session stays in summarizing for retry.
	Save(ctx context.Context, session *Session) (string, error)

	// SaveRecord persists an already-mapped record. This is the import
	// path for selection documents submitted by legacy clients.
	SaveRecord(ctx context.Context, record *domain.PersistedSimulation) (string, error)

	// SearchCities returns geocoded city candidates for autocomplete.
	SearchCities(ctx context.Context, query string) ([]domain.Place, error)

	// ListSaved returns the owner's saved simulations, newest first.
	ListSaved(ctx context.Context, ownerID string) ([]domain.PersistedSimulation, error)

	// DeleteSaved removes one saved simulation, ownership-checked.
	DeleteSaved(ctx context.Context, ownerID, id string) error
}

// tripFlow implements TripFlowUseCase.
type tripFlow struct {
	flightProviders []domain.FlightProvider
	hotelProvider   domain.HotelProvider
	places          domain.PlaceProvider
	store           domain.SimulationStore
	tours           TourGenerator

	searchTimeout time.Duration
	log           *logger.Logger
}

// Config carries the tunable options of the flow.
type Config struct {
	SearchTimeout time.Duration
}

// NewTripFlow creates the flow use case. A nil config uses defaults; a nil
// logger is replaced with a no-op one.
func NewTripFlow(
	flightProviders []domain.FlightProvider,
	hotelProvider domain.HotelProvider,
	places domain.PlaceProvider,
	store domain.SimulationStore,
	tourGen TourGenerator,
	cfg *Config,
	log *logger.Logger,
) TripFlowUseCase {
	timeout := DefaultSearchTimeout
	if cfg != nil && cfg.SearchTimeout > 0 {
		timeout = cfg.SearchTimeout
	}
	if log == nil {
		log = logger.Nop()
	}

	return &tripFlow{
		flightProviders: flightProviders,
		hotelProvider:   hotelProvider,
		places:          places,
		store:           store,
		tours:           tourGen,
		searchTimeout:   timeout,
		log:             log,
	}
}

// StartSearch implements TripFlowUseCase.StartSearch.
func (uc *tripFlow) StartSearch(ctx context.Context, session *Session, params SearchParams) (Snapshot, error) {
	sel := domain.NewTripSelection()
	sel.Origin = params.Origin
	sel.Destination = params.Destination
	sel.StartDate = params.StartDate
	sel.EndDate = params.EndDate
	sel.Party = domain.PartySize{Adults: params.Adults, Children: params.Children}

	if err := sel.Validate(); err != nil {
		return Snapshot{}, err
	}
	if err := resolveAirport(&sel.Origin); err != nil {
		return Snapshot{}, err
	}
	if err := resolveAirport(&sel.Destination); err != nil {
		return Snapshot{}, err
	}

	gen := session.beginSearch(sel)

	flightQuery := domain.FlightQuery{
		OriginCode:      sel.Origin.IATA,
		DestinationCode: sel.Destination.IATA,
		DepartureDate:   sel.StartDate,
		Adults:          sel.Party.Adults,
		Children:        sel.Party.Children,
	}
	hotelQuery := domain.HotelQuery{
		CityName: sel.Destination.CityName,
		CheckIn:  sel.StartDate,
		CheckOut: sel.EndDate,
		Adults:   sel.Party.Adults,
		Children: sel.Party.Children,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		uc.searchFlights(ctx, session, gen, flightQuery)
	}()
	go func() {
		defer wg.Done()
		uc.searchHotels(ctx, session, gen, hotelQuery)
	}()
	wg.Wait()

	return session.Snapshot(), nil
}

// resolveAirport fills the airport code from the static table when the
// geocoder did not attach one.
func resolveAirport(place *domain.PlaceRef) error {
	if place.CityName == "" {
		place.CityName = cityNameFromDisplay(place.Display)
	}
	if place.IATA != "" {
		return nil
	}
	code, err := domain.ResolveAirportCode(place.Display)
	if err != nil {
		return err
	}
	place.IATA = code
	return nil
}

func cityNameFromDisplay(display string) string {
	for i := 0; i < len(display); i++ {
		if display[i] == ',' {
			return display[:i]
		}
	}
	return display
}

// ChooseFlight implements TripFlowUseCase.ChooseFlight.
func (uc *tripFlow) ChooseFlight(session *Session, flightID string) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.phase != PhaseSelecting {
		return fmt.Errorf("%w: cannot choose a flight in phase %q", domain.ErrInvalidPhase, session.phase)
	}
	for _, candidate := range session.flightSlot.Candidates {
		if candidate.ID == flightID {
			chosen := candidate
			session.selection.ChosenFlight = &chosen
			return nil
		}
	}
	return domain.WrapInvalidSearch("unknown flight id %q", flightID)
}

// ChooseHotel implements TripFlowUseCase.ChooseHotel.
func (uc *tripFlow) ChooseHotel(session *Session, hotelID string) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.phase != PhaseSelecting {
		return fmt.Errorf("%w: cannot choose a hotel in phase %q", domain.ErrInvalidPhase, session.phase)
	}
	for _, candidate := range session.hotelSlot.Candidates {
		if candidate.ID == hotelID {
			chosen := candidate
			session.selection.ChosenHotel = &chosen
			return nil
		}
	}
	return domain.WrapInvalidSearch("unknown hotel id %q", hotelID)
}

// AdvanceToTours implements TripFlowUseCase.AdvanceToTours.
func (uc *tripFlow) AdvanceToTours(ctx context.Context, session *Session) ([]domain.TourOption, error) {
	session.mu.Lock()
	if session.phase != PhaseSelecting {
		phase := session.phase
		session.mu.Unlock()
		return nil, fmt.Errorf("%w: cannot advance to tours from phase %q", domain.ErrInvalidPhase, phase)
	}
	if !session.selection.HasFlightAndHotel() {
		session.mu.Unlock()
		return nil, fmt.Errorf("%w: flight and hotel must both be chosen", domain.ErrIncompleteSelection)
	}
	dest := session.selection.Destination
	session.mu.Unlock()

	places, err := uc.places.FindNearby(ctx, dest.Lat, dest.Lng, NearbyRadiusKm, NearbyMaxRows)
	if err != nil && !domain.IsNoResults(err) {
		return nil, err
	}

	candidates := uc.tours.FromPlaces(places, NearbyMaxRows)

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.phase != PhaseSelecting {
		return nil, fmt.Errorf("%w: session moved on during tour loading", domain.ErrInvalidPhase)
	}
	session.tourCandidates = candidates
	session.phase = PhaseTourSelection
	return append([]domain.TourOption(nil), candidates...), nil
}

// ToggleTour implements TripFlowUseCase.ToggleTour.
func (uc *tripFlow) ToggleTour(session *Session, tourID string) (domain.CostBreakdown, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.phase != PhaseTourSelection {
		return domain.CostBreakdown{}, fmt.Errorf("%w: cannot toggle tours in phase %q", domain.ErrInvalidPhase, session.phase)
	}

	for _, candidate := range session.tourCandidates {
		if candidate.ID == tourID {
			session.selection.ToggleTour(candidate)
			return domain.AggregateCost(session.selection)
		}
	}
	return domain.CostBreakdown{}, domain.WrapInvalidSearch("unknown tour id %q", tourID)
}

// BackToSelecting implements TripFlowUseCase.BackToSelecting. The chosen
// tour set deliberately survives the back edge.
func (uc *tripFlow) BackToSelecting(session *Session) error {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.phase != PhaseTourSelection {
		return fmt.Errorf("%w: cannot go back from phase %q", domain.ErrInvalidPhase, session.phase)
	}
	session.phase = PhaseSelecting
	return nil
}

// AdvanceToSummary implements TripFlowUseCase.AdvanceToSummary.
func (uc *tripFlow) AdvanceToSummary(session *Session) (Summary, error) {
	session.mu.Lock()
	defer session.mu.Unlock()

	if session.phase != PhaseTourSelection {
		return Summary{}, fmt.Errorf("%w: cannot summarize from phase %q", domain.ErrInvalidPhase, session.phase)
	}

	cost, err := domain.AggregateCost(session.selection)
	if err != nil {
		return Summary{}, err
	}
	session.phase = PhaseSummarizing
	return Summary{Selection: session.selection.Clone(), Cost: cost}, nil
}

// Save implements TripFlowUseCase.Save. The persisted total is re-derived
// from the aggregator, never taken from the caller.
func (uc *tripFlow) Save(ctx context.Context, session *Session) (string, error) {
	session.mu.Lock()
	if session.phase != PhaseSummarizing {
		phase := session.phase
		session.mu.Unlock()
		return "", fmt.Errorf("%w: cannot save from phase %q", domain.ErrInvalidPhase, phase)
	}
	sel := session.selection.Clone()
	ownerID := session.ownerID
	session.mu.Unlock()

	cost, err := domain.AggregateCost(&sel)
	if err != nil {
		return "", err
	}

	record := &domain.PersistedSimulation{
		OwnerID:        ownerID,
		Departure:      sel.Origin.Display,
		Destination:    sel.Destination.Display,
		StartDate:      sel.StartDate,
		EndDate:        sel.EndDate,
		Adults:         sel.Party.Adults,
		Children:       sel.Party.Children,
		SelectedFlight: sel.ChosenFlight,
		SelectedHotel:  sel.ChosenHotel,
		SelectedTours:  sel.TourList(),
		TotalCost:      cost.Total,
	}

	id, err := uc.store.Save(ctx, record)
	if err != nil {
		uc.log.WithSession(session.ID()).Error().Err(err).Msg("Saving simulation failed")
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	if session.phase == PhaseSummarizing {
		session.phase = PhasePersisted
		session.selection = domain.NewTripSelection()
		session.flightSlot = FlightSlot{}
		session.hotelSlot = HotelSlot{}
		session.tourCandidates = nil
	}
	return id, nil
}

// SaveRecord implements TripFlowUseCase.SaveRecord.
func (uc *tripFlow) SaveRecord(ctx context.Context, record *domain.PersistedSimulation) (string, error) {
	id, err := uc.store.Save(ctx, record)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return id, nil
}

// SearchCities implements TripFlowUseCase.SearchCities.
func (uc *tripFlow) SearchCities(ctx context.Context, query string) ([]domain.Place, error) {
	if len(query) < 2 {
		return nil, domain.WrapInvalidSearch("query must have at least 2 characters")
	}
	return uc.places.GeocodeCity(ctx, query)
}

// ListSaved implements TripFlowUseCase.ListSaved.
func (uc *tripFlow) ListSaved(ctx context.Context, ownerID string) ([]domain.PersistedSimulation, error) {
	sims, err := uc.store.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}
	return sims, nil
}

// DeleteSaved implements TripFlowUseCase.DeleteSaved.
func (uc *tripFlow) DeleteSaved(ctx context.Context, ownerID, id string) error {
	err := uc.store.Delete(ctx, ownerID, id)
	if err == nil || domain.IsSimulationNotFound(err) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
}

var _ TripFlowUseCase = (*tripFlow)(nil)
