// Package storage persists completed simulations in MySQL through gorm and
// maps between the durable schema and the domain entities. The codec in
// this package reconciles the two historical key conventions produced by
// older clients and degrades gracefully when loading legacy records.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// rawSelection mirrors a submitted selection document. For every field that
// has appeared under two key conventions both are captured; the snake_case
// key wins when both are present.
type rawSelection struct {
	Departure   string `json:"departure"`
	Destination string `json:"destination"`

	StartDateSnake string `json:"start_date"`
	StartDateCamel string `json:"startDate"`
	EndDateSnake   string `json:"end_date"`
	EndDateCamel   string `json:"endDate"`

	Adults   int `json:"adults"`
	Children int `json:"children"`

	FlightSnake json.RawMessage `json:"selected_flight"`
	FlightCamel json.RawMessage `json:"selectedFlight"`
	HotelSnake  json.RawMessage `json:"selected_hotel"`
	HotelCamel  json.RawMessage `json:"selectedHotel"`
	ToursSnake  json.RawMessage `json:"selected_activities"`
	ToursCamel  json.RawMessage `json:"selectedTours"`
}

// DecodeSelection parses a selection document that may use either key
// convention into a canonical TripSelection.
func DecodeSelection(data []byte) (*domain.TripSelection, error) {
	var raw rawSelection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode selection: %w", err)
	}

	sel := domain.NewTripSelection()
	sel.Origin = domain.PlaceRef{Display: raw.Departure}
	sel.Destination = domain.PlaceRef{Display: raw.Destination}
	sel.StartDate = prefer(raw.StartDateSnake, raw.StartDateCamel)
	sel.EndDate = prefer(raw.EndDateSnake, raw.EndDateCamel)
	sel.Party = domain.PartySize{Adults: raw.Adults, Children: raw.Children}

	flight, err := decodeFlight(preferRaw(raw.FlightSnake, raw.FlightCamel))
	if err != nil {
		return nil, err
	}
	sel.ChosenFlight = flight

	hotel, err := decodeHotel(preferRaw(raw.HotelSnake, raw.HotelCamel))
	if err != nil {
		return nil, err
	}
	sel.ChosenHotel = hotel

	tours, err := decodeTours(preferRaw(raw.ToursSnake, raw.ToursCamel))
	if err != nil {
		return nil, err
	}
	for _, tour := range tours {
		sel.ChosenTours[tour.ID] = tour
	}

	return sel, nil
}

// EncodeRecord maps a completed selection to the durable record. The total
// is re-derived from the aggregator, never taken from the caller, so the
// persisted total always matches the persisted line items.
func EncodeRecord(sel *domain.TripSelection, ownerID string) (*domain.PersistedSimulation, error) {
	cost, err := domain.AggregateCost(sel)
	if err != nil {
		return nil, err
	}

	return &domain.PersistedSimulation{
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
	}, nil
}

// prefer returns the first non-empty value.
func prefer(snake, camel string) string {
	if snake != "" {
		return snake
	}
	return camel
}

// preferRaw returns the first non-absent JSON value.
func preferRaw(snake, camel json.RawMessage) json.RawMessage {
	if present(snake) {
		return snake
	}
	return camel
}

// present reports whether a raw JSON value carries data.
func present(raw json.RawMessage) bool {
	return len(raw) > 0 && !bytes.Equal(raw, []byte("null"))
}

// flexFlight tolerates both the canonical flight shape and the legacy flat
// one. Legacy records carry a top-level airline string and a bare numeric
// price with no segments.
type flexFlight struct {
	ID       string                 `json:"id"`
	Airline  string                 `json:"airline"`
	Price    json.RawMessage        `json:"price"`
	Segments []domain.FlightSegment `json:"segments"`
	Provider string                 `json:"provider"`
}

// decodeFlight parses a stored flight value. A flat legacy record becomes
// a single-segment option; absent input is "none selected".
func decodeFlight(raw json.RawMessage) (*domain.FlightOption, error) {
	if !present(raw) {
		return nil, nil
	}

	var ff flexFlight
	if err := json.Unmarshal(raw, &ff); err != nil {
		return nil, fmt.Errorf("decode flight: %w", err)
	}

	option := &domain.FlightOption{
		ID:       ff.ID,
		Segments: ff.Segments,
		Price:    decodeMoney(ff.Price),
		Provider: ff.Provider,
	}

	if len(option.Segments) == 0 {
		seg := domain.PlaceholderSegment()
		if ff.Airline != "" {
			seg.Airline.Name = ff.Airline
		}
		option.Segments = []domain.FlightSegment{seg}
	}
	return option, nil
}

// decodeMoney accepts both the canonical {amount, currency} object and the
// legacy bare number.
func decodeMoney(raw json.RawMessage) domain.Money {
	if !present(raw) {
		return domain.Money{Currency: domain.DefaultCurrency}
	}

	var money domain.Money
	if err := json.Unmarshal(raw, &money); err == nil && money.Currency != "" {
		return money
	}

	var amount float64
	if err := json.Unmarshal(raw, &amount); err == nil {
		return domain.Money{Amount: amount, Currency: domain.DefaultCurrency}
	}

	if money.Amount != 0 || money.Currency != "" {
		if money.Currency == "" {
			money.Currency = domain.DefaultCurrency
		}
		return money
	}
	return domain.Money{Currency: domain.DefaultCurrency}
}

// decodeHotel parses a stored hotel value; absent input is "none selected".
func decodeHotel(raw json.RawMessage) (*domain.HotelOption, error) {
	if !present(raw) {
		return nil, nil
	}

	var hotel domain.HotelOption
	if err := json.Unmarshal(raw, &hotel); err != nil {
		return nil, fmt.Errorf("decode hotel: %w", err)
	}
	hotel.EnsureImages()
	return &hotel, nil
}

// decodeTours parses a stored tour list; absent input is an empty set.
func decodeTours(raw json.RawMessage) ([]domain.TourOption, error) {
	if !present(raw) {
		return nil, nil
	}

	var tours []domain.TourOption
	if err := json.Unmarshal(raw, &tours); err != nil {
		return nil, fmt.Errorf("decode tours: %w", err)
	}
	return tours, nil
}
