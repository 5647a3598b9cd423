package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// stubTourGen returns a fixed tour list regardless of input.
type stubTourGen struct {
	tours []domain.TourOption
}

func (s stubTourGen) FromPlaces(_ []domain.Place, _ int) []domain.TourOption {
	return s.tours
}

func testParams() SearchParams {
	return SearchParams{
		Origin:      domain.PlaceRef{Display: "São Paulo, São Paulo", CityName: "São Paulo", GeonameID: 3448439, Lat: -23.54, Lng: -46.63},
		Destination: domain.PlaceRef{Display: "Rio de Janeiro, Rio de Janeiro", CityName: "Rio de Janeiro", GeonameID: 3451190, Lat: -22.90, Lng: -43.20},
		StartDate:   "2025-07-10",
		EndDate:     "2025-07-13",
		Adults:      2,
	}
}

func testFlights() []domain.FlightOption {
	return []domain.FlightOption{
		{ID: "f-1", Price: domain.Money{Amount: 450.00, Currency: "BRL"}, Provider: "googleflights"},
		{ID: "f-2", Price: domain.Money{Amount: 520.00, Currency: "BRL"}, Provider: "searchapi"},
	}
}

func testHotels() []domain.HotelOption {
	return []domain.HotelOption{
		{ID: "h-1", Name: "Hotel Atlantico", PricePerNight: domain.Money{Amount: 300.00, Currency: "BRL"}},
	}
}

func testTours() []domain.TourOption {
	return []domain.TourOption{
		{ID: "t-1", Name: "Tour em Niterói", PricePerPerson: domain.Money{Amount: 120.00, Currency: "BRL"}, Synthetic: true},
		{ID: "t-2", Name: "Tour em Petrópolis", PricePerPerson: domain.Money{Amount: 80.00, Currency: "BRL"}, Synthetic: true},
	}
}

// testFlow builds a flow with mocks wired for one happy-path search.
type flowFixture struct {
	flow     TripFlowUseCase
	session  *Session
	flights  *domain.MockFlightProvider
	hotels   *domain.MockHotelProvider
	places   *domain.MockPlaceProvider
	store    *domain.MockSimulationStore
}

func newFixture(t *testing.T) *flowFixture {
	ctrl := gomock.NewController(t)

	f := &flowFixture{
		flights: domain.NewMockFlightProvider(ctrl),
		hotels:  domain.NewMockHotelProvider(ctrl),
		places:  domain.NewMockPlaceProvider(ctrl),
		store:   domain.NewMockSimulationStore(ctrl),
		session: NewSession("user-1"),
	}
	f.flights.EXPECT().Name().Return("flights").AnyTimes()
	f.hotels.EXPECT().Name().Return("hotels").AnyTimes()

	f.flow = NewTripFlow(
		[]domain.FlightProvider{f.flights},
		f.hotels,
		f.places,
		f.store,
		stubTourGen{tours: testTours()},
		nil,
		nil,
	)
	return f
}

// search drives the fixture session into the selecting phase.
func (f *flowFixture) search(t *testing.T) Snapshot {
	f.flights.EXPECT().Search(gomock.Any(), gomock.Any()).Return(testFlights(), nil)
	f.hotels.EXPECT().Search(gomock.Any(), gomock.Any()).Return(testHotels(), nil)

	snap, err := f.flow.StartSearch(context.Background(), f.session, testParams())
	require.NoError(t, err)
	return snap
}

// selectBoth drives the fixture session into tour selection.
func (f *flowFixture) selectBoth(t *testing.T) {
	f.search(t)
	require.NoError(t, f.flow.ChooseFlight(f.session, "f-1"))
	require.NoError(t, f.flow.ChooseHotel(f.session, "h-1"))
	f.places.EXPECT().FindNearby(gomock.Any(), -22.90, -43.20, NearbyRadiusKm, NearbyMaxRows).Return([]domain.Place{{GeonameID: 1}}, nil)
	_, err := f.flow.AdvanceToTours(context.Background(), f.session)
	require.NoError(t, err)
}

// TestStartSearch tests the candidate search with both slots succeeding.
func TestStartSearch(t *testing.T) {
	f := newFixture(t)

	snap := f.search(t)

	assert.Equal(t, PhaseSelecting, snap.Phase)
	assert.Len(t, snap.FlightCandidates, 2)
	assert.Len(t, snap.HotelCandidates, 1)
	assert.True(t, snap.FlightSettled)
	assert.True(t, snap.HotelSettled)
	assert.NoError(t, snap.FlightErr)
	assert.NoError(t, snap.HotelErr)
	assert.Equal(t, "GRU", snap.Selection.Origin.IATA)
	assert.Equal(t, "GIG", snap.Selection.Destination.IATA)
}

// TestStartSearch_Validation tests parameter validation and airport
// resolution failures.
func TestStartSearch_Validation(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SearchParams)
		wantErr error
	}{
		{
			name:    "missing origin",
			mutate:  func(p *SearchParams) { p.Origin = domain.PlaceRef{} },
			wantErr: domain.ErrInvalidSearch,
		},
		{
			name:    "inverted dates",
			mutate:  func(p *SearchParams) { p.StartDate, p.EndDate = p.EndDate, p.StartDate },
			wantErr: domain.ErrInvalidDateRange,
		},
		{
			name:    "zero adults",
			mutate:  func(p *SearchParams) { p.Adults = 0 },
			wantErr: domain.ErrInvalidSearch,
		},
		{
			name:    "city without airport",
			mutate:  func(p *SearchParams) { p.Destination = domain.PlaceRef{Display: "Xique-Xique, Bahia"} },
			wantErr: domain.ErrAirportNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			params := testParams()
			tt.mutate(&params)

			_, err := f.flow.StartSearch(context.Background(), f.session, params)

			assert.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, PhaseEmpty, f.session.Snapshot().Phase)
		})
	}
}

// TestStartSearch_OneSlotFails verifies one provider's failure does not
// block the other slot's results.
func TestStartSearch_OneSlotFails(t *testing.T) {
	f := newFixture(t)
	f.flights.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, domain.NewProviderError("flights", domain.ErrRateLimited))
	f.hotels.EXPECT().Search(gomock.Any(), gomock.Any()).Return(testHotels(), nil)

	snap, err := f.flow.StartSearch(context.Background(), f.session, testParams())

	require.NoError(t, err)
	assert.Equal(t, PhaseSelecting, snap.Phase)
	assert.Empty(t, snap.FlightCandidates)
	assert.ErrorIs(t, snap.FlightErr, domain.ErrRateLimited)
	assert.Len(t, snap.HotelCandidates, 1)
	assert.NoError(t, snap.HotelErr)
}

// TestStartSearch_EmptyResultIsNotAnError verifies no-results settles the
// slot cleanly, distinct from a provider failure.
func TestStartSearch_EmptyResultIsNotAnError(t *testing.T) {
	f := newFixture(t)
	f.flights.EXPECT().Search(gomock.Any(), gomock.Any()).Return(testFlights(), nil)
	f.hotels.EXPECT().Search(gomock.Any(), gomock.Any()).Return(nil, domain.ErrNoResults)

	snap, err := f.flow.StartSearch(context.Background(), f.session, testParams())

	require.NoError(t, err)
	assert.Equal(t, PhaseSelecting, snap.Phase)
	assert.Empty(t, snap.HotelCandidates)
	assert.True(t, snap.HotelSettled)
	assert.NoError(t, snap.HotelErr)
}

// TestStaleResultsDiscarded verifies a superseded search's results never
// overwrite the newer search's slots.
func TestStaleResultsDiscarded(t *testing.T) {
	session := NewSession("user-1")

	sel := domain.NewTripSelection()
	sel.Origin = testParams().Origin
	sel.Destination = testParams().Destination
	sel.StartDate = "2025-07-10"
	sel.EndDate = "2025-07-13"
	sel.Party = domain.PartySize{Adults: 2}

	oldGen := session.beginSearch(sel)
	newGen := session.beginSearch(sel)

	applied := session.commitFlights(oldGen, testFlights(), nil)
	assert.False(t, applied, "stale generation must be discarded")
	assert.Empty(t, session.Snapshot().FlightCandidates)

	require.True(t, session.commitFlights(newGen, testFlights()[:1], nil))
	require.True(t, session.commitHotels(newGen, testHotels(), nil))

	snap := session.Snapshot()
	assert.Equal(t, PhaseSelecting, snap.Phase)
	assert.Len(t, snap.FlightCandidates, 1)
}

// TestCommitAfterPhaseMoved verifies a result arriving after the session
// left the searching phase is not applied.
func TestCommitAfterPhaseMoved(t *testing.T) {
	session := NewSession("user-1")
	sel := domain.NewTripSelection()
	gen := session.beginSearch(sel)

	require.True(t, session.commitFlights(gen, testFlights(), nil))
	require.True(t, session.commitHotels(gen, testHotels(), nil))
	require.Equal(t, PhaseSelecting, session.Snapshot().Phase)

	assert.False(t, session.commitFlights(gen, nil, errors.New("late failure")))
	assert.NoError(t, session.Snapshot().FlightErr)
}

// TestChooseFlightAndHotel tests selection and re-selection.
func TestChooseFlightAndHotel(t *testing.T) {
	f := newFixture(t)
	f.search(t)

	require.NoError(t, f.flow.ChooseFlight(f.session, "f-1"))
	require.NoError(t, f.flow.ChooseFlight(f.session, "f-2"))
	require.NoError(t, f.flow.ChooseHotel(f.session, "h-1"))

	snap := f.session.Snapshot()
	assert.Equal(t, "f-2", snap.Selection.ChosenFlight.ID)
	assert.Equal(t, "h-1", snap.Selection.ChosenHotel.ID)
}

// TestChooseFlight_UnknownID tests rejection of ids outside the candidate
// list.
func TestChooseFlight_UnknownID(t *testing.T) {
	f := newFixture(t)
	f.search(t)

	err := f.flow.ChooseFlight(f.session, "nope")

	assert.ErrorIs(t, err, domain.ErrInvalidSearch)
}

// TestChooseFlight_WrongPhase tests the phase guard.
func TestChooseFlight_WrongPhase(t *testing.T) {
	f := newFixture(t)

	err := f.flow.ChooseFlight(f.session, "f-1")

	assert.ErrorIs(t, err, domain.ErrInvalidPhase)
}

// TestAdvanceToTours_IncompleteSelection verifies advancing without a hotel
// fails and does not mutate state.
func TestAdvanceToTours_IncompleteSelection(t *testing.T) {
	f := newFixture(t)
	f.search(t)
	require.NoError(t, f.flow.ChooseFlight(f.session, "f-1"))

	_, err := f.flow.AdvanceToTours(context.Background(), f.session)

	assert.ErrorIs(t, err, domain.ErrIncompleteSelection)
	snap := f.session.Snapshot()
	assert.Equal(t, PhaseSelecting, snap.Phase)
	assert.Empty(t, snap.TourCandidates)
}

// TestAdvanceToTours tests the transition into tour selection.
func TestAdvanceToTours(t *testing.T) {
	f := newFixture(t)
	f.selectBoth(t)

	snap := f.session.Snapshot()
	assert.Equal(t, PhaseTourSelection, snap.Phase)
	assert.Len(t, snap.TourCandidates, 2)
}

// TestAdvanceToTours_NoNearbyPlaces verifies an empty place lookup still
// advances with zero candidates.
func TestAdvanceToTours_NoNearbyPlaces(t *testing.T) {
	f := newFixture(t)
	f.flow = NewTripFlow(
		[]domain.FlightProvider{f.flights},
		f.hotels,
		f.places,
		f.store,
		stubTourGen{},
		nil,
		nil,
	)
	f.search(t)
	require.NoError(t, f.flow.ChooseFlight(f.session, "f-1"))
	require.NoError(t, f.flow.ChooseHotel(f.session, "h-1"))
	f.places.EXPECT().FindNearby(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, domain.ErrNoResults)

	tours, err := f.flow.AdvanceToTours(context.Background(), f.session)

	require.NoError(t, err)
	assert.Empty(t, tours)
	assert.Equal(t, PhaseTourSelection, f.session.Snapshot().Phase)
}

// TestToggleTour tests toggling and cost recomputation, including the
// on-then-off round trip returning to the prior total.
func TestToggleTour(t *testing.T) {
	f := newFixture(t)
	f.selectBoth(t)

	cost, err := f.flow.ToggleTour(f.session, "t-1")
	require.NoError(t, err)
	assert.Equal(t, 120.00, cost.Tours)
	assert.Equal(t, 450.00+900.00+120.00, cost.Total)

	cost, err = f.flow.ToggleTour(f.session, "t-2")
	require.NoError(t, err)
	assert.Equal(t, 200.00, cost.Tours)
	assert.Equal(t, 1550.00, cost.Total)

	cost, err = f.flow.ToggleTour(f.session, "t-2")
	require.NoError(t, err)
	assert.Equal(t, 120.00, cost.Tours)
	assert.Equal(t, 450.00+900.00+120.00, cost.Total)
}

// TestToggleTour_UnknownID tests rejection of unknown tour ids.
func TestToggleTour_UnknownID(t *testing.T) {
	f := newFixture(t)
	f.selectBoth(t)

	_, err := f.flow.ToggleTour(f.session, "nope")

	assert.ErrorIs(t, err, domain.ErrInvalidSearch)
}

// TestBackToSelecting_KeepsTours verifies the back edge keeps chosen tours.
func TestBackToSelecting_KeepsTours(t *testing.T) {
	f := newFixture(t)
	f.selectBoth(t)
	_, err := f.flow.ToggleTour(f.session, "t-1")
	require.NoError(t, err)

	require.NoError(t, f.flow.BackToSelecting(f.session))

	snap := f.session.Snapshot()
	assert.Equal(t, PhaseSelecting, snap.Phase)
	assert.Len(t, snap.Selection.ChosenTours, 1)

	require.NoError(t, f.flow.ChooseFlight(f.session, "f-2"))
	assert.Len(t, f.session.Snapshot().Selection.ChosenTours, 1)
}

// TestAdvanceToSummaryAndSave tests the summary view and successful save,
// including the example trip totaling 1550.00 BRL.
func TestAdvanceToSummaryAndSave(t *testing.T) {
	f := newFixture(t)
	f.selectBoth(t)
	_, err := f.flow.ToggleTour(f.session, "t-1")
	require.NoError(t, err)
	_, err = f.flow.ToggleTour(f.session, "t-2")
	require.NoError(t, err)

	summary, err := f.flow.AdvanceToSummary(f.session)
	require.NoError(t, err)
	assert.Equal(t, 1550.00, summary.Cost.Total)
	assert.Equal(t, 3, summary.Cost.Nights)

	var saved *domain.PersistedSimulation
	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, sim *domain.PersistedSimulation) (string, error) {
			saved = sim
			return "sim-1", nil
		})

	id, err := f.flow.Save(context.Background(), f.session)
	require.NoError(t, err)
	assert.Equal(t, "sim-1", id)

	require.NotNil(t, saved)
	assert.Equal(t, "user-1", saved.OwnerID)
	assert.Equal(t, 1550.00, saved.TotalCost)
	assert.Len(t, saved.SelectedTours, 2)
	assert.Equal(t, "Rio de Janeiro, Rio de Janeiro", saved.Destination)

	snap := f.session.Snapshot()
	assert.Equal(t, PhasePersisted, snap.Phase)
	assert.Nil(t, snap.Selection.ChosenFlight)
	assert.Empty(t, snap.Selection.ChosenTours)
}

// TestSave_FailureKeepsSummarizing verifies a store failure leaves the
// session on the summary for retry.
func TestSave_FailureKeepsSummarizing(t *testing.T) {
	f := newFixture(t)
	f.selectBoth(t)
	_, err := f.flow.AdvanceToSummary(f.session)
	require.NoError(t, err)

	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return("", errors.New("connection refused"))

	_, err = f.flow.Save(context.Background(), f.session)

	assert.ErrorIs(t, err, domain.ErrPersistence)
	snap := f.session.Snapshot()
	assert.Equal(t, PhaseSummarizing, snap.Phase)
	assert.NotNil(t, snap.Selection.ChosenFlight)

	f.store.EXPECT().Save(gomock.Any(), gomock.Any()).Return("sim-2", nil)
	id, err := f.flow.Save(context.Background(), f.session)
	require.NoError(t, err)
	assert.Equal(t, "sim-2", id)
}

// TestSearchCities tests the autocomplete wrapper.
func TestSearchCities(t *testing.T) {
	f := newFixture(t)
	f.places.EXPECT().GeocodeCity(gomock.Any(), "rio").Return([]domain.Place{{Name: "Rio de Janeiro"}}, nil)

	places, err := f.flow.SearchCities(context.Background(), "rio")

	require.NoError(t, err)
	assert.Len(t, places, 1)

	_, err = f.flow.SearchCities(context.Background(), "r")
	assert.ErrorIs(t, err, domain.ErrInvalidSearch)
}

// TestListAndDeleteSaved tests the store wrappers.
func TestListAndDeleteSaved(t *testing.T) {
	f := newFixture(t)
	f.store.EXPECT().List(gomock.Any(), "user-1").Return([]domain.PersistedSimulation{{ID: "sim-1"}}, nil)
	f.store.EXPECT().Delete(gomock.Any(), "user-1", "sim-1").Return(nil)
	f.store.EXPECT().Delete(gomock.Any(), "user-1", "missing").Return(domain.ErrSimulationNotFound)

	sims, err := f.flow.ListSaved(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Len(t, sims, 1)

	assert.NoError(t, f.flow.DeleteSaved(context.Background(), "user-1", "sim-1"))
	assert.ErrorIs(t, f.flow.DeleteSaved(context.Background(), "user-1", "missing"), domain.ErrSimulationNotFound)
}

// TestSaveRecord tests the direct-persist path used by document imports.
func TestSaveRecord(t *testing.T) {
	f := newFixture(t)
	record := &domain.PersistedSimulation{OwnerID: "user-1", Destination: "Rio de Janeiro, Rio de Janeiro", TotalCost: 1550}

	f.store.EXPECT().Save(gomock.Any(), record).Return("sim-7", nil)

	id, err := f.flow.SaveRecord(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, "sim-7", id)

	f.store.EXPECT().Save(gomock.Any(), record).Return("", errors.New("connection refused"))

	_, err = f.flow.SaveRecord(context.Background(), record)
	assert.ErrorIs(t, err, domain.ErrPersistence)
}
