package storage

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

const snakeSelection = `{
	"departure": "São Paulo, São Paulo",
	"destination": "Rio de Janeiro, Rio de Janeiro",
	"start_date": "2025-07-10",
	"end_date": "2025-07-13",
	"adults": 2,
	"children": 0,
	"selected_flight": {
		"id": "f-1",
		"price": {"amount": 450.00, "currency": "BRL"},
		"segments": [{"airline": {"code": "G3", "name": "GOL"}, "flight_number": "G3 1045",
			"departure": {"airport": {"code": "GRU", "name": "Guarulhos"}, "time": "08:15"},
			"arrival": {"airport": {"code": "GIG", "name": "Galeão"}, "time": "09:20"},
			"duration": "65min"}]
	},
	"selected_hotel": {"id": "h-1", "name": "Hotel Atlantico", "price": {"amount": 300.00, "currency": "BRL"}},
	"selected_activities": [
		{"id": "t-1", "name": "Tour em Niterói", "price": {"amount": 120.00, "currency": "BRL"}},
		{"id": "t-2", "name": "Tour em Petrópolis", "price": {"amount": 80.00, "currency": "BRL"}}
	]
}`

const camelSelection = `{
	"departure": "São Paulo, São Paulo",
	"destination": "Rio de Janeiro, Rio de Janeiro",
	"startDate": "2025-07-10",
	"endDate": "2025-07-13",
	"adults": 2,
	"children": 0,
	"selectedFlight": {
		"id": "f-1",
		"price": {"amount": 450.00, "currency": "BRL"},
		"segments": [{"airline": {"code": "G3", "name": "GOL"}, "flight_number": "G3 1045",
			"departure": {"airport": {"code": "GRU", "name": "Guarulhos"}, "time": "08:15"},
			"arrival": {"airport": {"code": "GIG", "name": "Galeão"}, "time": "09:20"},
			"duration": "65min"}]
	},
	"selectedHotel": {"id": "h-1", "name": "Hotel Atlantico", "price": {"amount": 300.00, "currency": "BRL"}},
	"selectedTours": [
		{"id": "t-1", "name": "Tour em Niterói", "price": {"amount": 120.00, "currency": "BRL"}},
		{"id": "t-2", "name": "Tour em Petrópolis", "price": {"amount": 80.00, "currency": "BRL"}}
	]
}`

// TestDecodeSelection_BothConventions verifies both key conventions decode
// to the same logical selection.
func TestDecodeSelection_BothConventions(t *testing.T) {
	snake, err := DecodeSelection([]byte(snakeSelection))
	require.NoError(t, err)
	camel, err := DecodeSelection([]byte(camelSelection))
	require.NoError(t, err)

	assert.Equal(t, snake.StartDate, camel.StartDate)
	assert.Equal(t, snake.EndDate, camel.EndDate)
	assert.Equal(t, snake.ChosenFlight.ID, camel.ChosenFlight.ID)
	assert.Equal(t, snake.ChosenHotel.ID, camel.ChosenHotel.ID)
	assert.Equal(t, snake.TourList(), camel.TourList())

	snakeCost, err := domain.AggregateCost(snake)
	require.NoError(t, err)
	camelCost, err := domain.AggregateCost(camel)
	require.NoError(t, err)
	assert.Equal(t, snakeCost, camelCost)
	assert.Equal(t, 1550.00, snakeCost.Total)
}

// TestDecodeSelection_SnakePreferred verifies snake_case wins when both
// conventions are present.
func TestDecodeSelection_SnakePreferred(t *testing.T) {
	doc := `{
		"destination": "Rio de Janeiro",
		"start_date": "2025-07-10",
		"startDate": "2031-01-01",
		"end_date": "2025-07-13",
		"adults": 1,
		"selected_flight": {"id": "snake", "price": {"amount": 100, "currency": "BRL"}},
		"selectedFlight": {"id": "camel", "price": {"amount": 999, "currency": "BRL"}}
	}`

	sel, err := DecodeSelection([]byte(doc))
	require.NoError(t, err)

	assert.Equal(t, "2025-07-10", sel.StartDate)
	assert.Equal(t, "snake", sel.ChosenFlight.ID)
}

// TestDecodeSelection_MissingComponents verifies a sparse document decodes
// as "none selected" instead of erroring.
func TestDecodeSelection_MissingComponents(t *testing.T) {
	doc := `{"destination": "Rio de Janeiro", "start_date": "2025-07-10", "end_date": "2025-07-13", "adults": 1}`

	sel, err := DecodeSelection([]byte(doc))
	require.NoError(t, err)

	assert.Nil(t, sel.ChosenFlight)
	assert.Nil(t, sel.ChosenHotel)
	assert.Empty(t, sel.ChosenTours)
}

// TestDecodeFlight_LegacyFlatShape verifies the flat {airline, price}
// shape becomes a single-segment option.
func TestDecodeFlight_LegacyFlatShape(t *testing.T) {
	flight, err := decodeFlight(json.RawMessage(`{"airline": "GOL", "price": 450.00}`))
	require.NoError(t, err)

	require.NotNil(t, flight)
	assert.Equal(t, 450.00, flight.Price.Amount)
	assert.Equal(t, "BRL", flight.Price.Currency)
	require.Len(t, flight.Segments, 1)
	assert.Equal(t, "GOL", flight.Segments[0].Airline.Name)
	assert.Equal(t, domain.UnknownField, flight.Segments[0].Departure.Airport.Code)
}

// TestDecodeFlight_PriceObjectWithoutCurrency verifies the currency
// defaults when the stored price object omits it.
func TestDecodeFlight_PriceObjectWithoutCurrency(t *testing.T) {
	flight, err := decodeFlight(json.RawMessage(`{"id": "f-1", "price": {"amount": 320.00}}`))
	require.NoError(t, err)

	assert.Equal(t, 320.00, flight.Price.Amount)
	assert.Equal(t, "BRL", flight.Price.Currency)
}

// TestDecodeFlight_Absent verifies absent and null values decode to nil.
func TestDecodeFlight_Absent(t *testing.T) {
	for _, raw := range []json.RawMessage{nil, json.RawMessage(`null`)} {
		flight, err := decodeFlight(raw)
		require.NoError(t, err)
		assert.Nil(t, flight)
	}
}

// TestEncodeRecord verifies the record derives its total from the
// aggregator rather than any caller-supplied value.
func TestEncodeRecord(t *testing.T) {
	sel, err := DecodeSelection([]byte(snakeSelection))
	require.NoError(t, err)

	record, err := EncodeRecord(sel, "user-1")
	require.NoError(t, err)

	assert.Equal(t, "user-1", record.OwnerID)
	assert.Equal(t, 1550.00, record.TotalCost)
	assert.Equal(t, "São Paulo, São Paulo", record.Departure)
	assert.Len(t, record.SelectedTours, 2)
	assert.Equal(t, "t-1", record.SelectedTours[0].ID)
}

// TestEncodeRecord_InvalidDates verifies an empty-night range is rejected.
func TestEncodeRecord_InvalidDates(t *testing.T) {
	sel := domain.NewTripSelection()
	sel.Destination = domain.PlaceRef{Display: "Rio de Janeiro"}
	sel.StartDate = "2025-07-13"
	sel.EndDate = "2025-07-13"

	_, err := EncodeRecord(sel, "user-1")

	assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
}

// TestModelRoundTrip verifies a record survives the row mapping, and a
// legacy row with a flat flight still loads.
func TestModelRoundTrip(t *testing.T) {
	sel, err := DecodeSelection([]byte(snakeSelection))
	require.NoError(t, err)
	record, err := EncodeRecord(sel, "user-1")
	require.NoError(t, err)
	record.ID = "sim-1"

	model, err := toModel(record)
	require.NoError(t, err)
	loaded, err := fromModel(model)
	require.NoError(t, err)

	assert.Equal(t, record.ID, loaded.ID)
	assert.Equal(t, record.TotalCost, loaded.TotalCost)
	assert.Equal(t, record.SelectedFlight.ID, loaded.SelectedFlight.ID)
	assert.Equal(t, record.SelectedHotel.Name, loaded.SelectedHotel.Name)
	assert.Len(t, loaded.SelectedTours, 2)

	legacy := simulationModel{
		ID:             "sim-old",
		UserID:         "user-1",
		Destination:    "Rio de Janeiro",
		SelectedFlight: []byte(`{"airline": "GOL", "price": 450}`),
	}
	old, err := fromModel(legacy)
	require.NoError(t, err)
	require.NotNil(t, old.SelectedFlight)
	assert.Len(t, old.SelectedFlight.Segments, 1)
	assert.Nil(t, old.SelectedHotel)
	assert.Empty(t, old.SelectedTours)
}
