package domain

import (
	"fmt"
	"regexp"
	"sort"
	"time"
)

// DateLayout is the calendar-date format used throughout the engine.
const DateLayout = "2006-01-02"

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// PartySize is the traveling party composition.
type PartySize struct {
	// Adults is the number of adults (at least 1).
	Adults int `json:"adults"`

	// Children is the number of children (0 or more).
	Children int `json:"children"`
}

// PlaceRef is a resolved origin or destination: a display string plus the
// normalized place identifiers needed by downstream searches.
type PlaceRef struct {
	// Display is the "City, State" form shown to the user.
	Display string `json:"display"`

	// GeonameID is the place identifier from the geocoder.
	GeonameID int64 `json:"geoname_id"`

	// CityName is the bare city name used by the hotel search.
	CityName string `json:"city_name"`

	// IATA is the resolved airport code used by the flight search.
	IATA string `json:"iata"`

	// Lat and Lng feed the nearby-places lookup for tour generation.
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// TripSelection is the evolving record of what the user has chosen so far.
// It is created empty when a search starts, populated incrementally, read by
// the serializer on save, and discarded if the user abandons the flow.
type TripSelection struct {
	// Origin and Destination are the endpoints of the trip.
	Origin      PlaceRef `json:"origin"`
	Destination PlaceRef `json:"destination"`

	// StartDate and EndDate are calendar dates in DateLayout format.
	// EndDate must be strictly after StartDate before cost aggregation.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Party is the traveling party composition.
	Party PartySize `json:"party"`

	// ChosenFlight is the selected flight, nil until one is chosen.
	ChosenFlight *FlightOption `json:"selected_flight,omitempty"`

	// ChosenHotel is the selected hotel, nil until one is chosen.
	ChosenHotel *HotelOption `json:"selected_hotel,omitempty"`

	// ChosenTours is the selected tour set keyed by tour id.
	ChosenTours map[string]TourOption `json:"selected_tours,omitempty"`
}

// NewTripSelection creates an empty selection.
func NewTripSelection() *TripSelection {
	return &TripSelection{
		ChosenTours: make(map[string]TourOption),
	}
}

// Clone returns a copy sharing no mutable state with the receiver, so a
// snapshot taken under a lock stays stable after the lock is released.
func (s *TripSelection) Clone() TripSelection {
	clone := *s
	if s.ChosenFlight != nil {
		flight := *s.ChosenFlight
		clone.ChosenFlight = &flight
	}
	if s.ChosenHotel != nil {
		hotel := *s.ChosenHotel
		clone.ChosenHotel = &hotel
	}
	if s.ChosenTours != nil {
		clone.ChosenTours = make(map[string]TourOption, len(s.ChosenTours))
		for id, tour := range s.ChosenTours {
			clone.ChosenTours[id] = tour
		}
	}
	return clone
}

// Validate checks that the selection carries everything a search needs:
// both endpoints, both dates in order, and a legal party size.
// Returns a wrapped ErrInvalidSearch or ErrInvalidDateRange on failure.
func (s *TripSelection) Validate() error {
	if s.Origin.Display == "" {
		return fmt.Errorf("%w: origin is required", ErrInvalidSearch)
	}
	if s.Destination.Display == "" {
		return fmt.Errorf("%w: destination is required", ErrInvalidSearch)
	}
	if err := validateDate("start_date", s.StartDate); err != nil {
		return err
	}
	if err := validateDate("end_date", s.EndDate); err != nil {
		return err
	}
	if _, err := s.Nights(); err != nil {
		return err
	}
	if s.Party.Adults < 1 {
		return fmt.Errorf("%w: adults must be at least 1", ErrInvalidSearch)
	}
	if s.Party.Children < 0 {
		return fmt.Errorf("%w: children cannot be negative", ErrInvalidSearch)
	}
	return nil
}

// validateDate checks a date field for presence and format.
func validateDate(field, value string) error {
	if value == "" {
		return fmt.Errorf("%w: %s is required", ErrInvalidSearch, field)
	}
	if !dateRegex.MatchString(value) {
		return fmt.Errorf("%w: %s must be in YYYY-MM-DD format, got %q", ErrInvalidSearch, field, value)
	}
	if _, err := time.Parse(DateLayout, value); err != nil {
		return fmt.Errorf("%w: %s is not a valid date: %s", ErrInvalidSearch, field, value)
	}
	return nil
}

// Nights returns the whole-day count between start and end date, the hotel
// cost multiplier. Returns ErrInvalidDateRange when the range is empty,
// inverted, or unparseable, so callers never compute a zero- or
// negative-night cost.
func (s *TripSelection) Nights() (int, error) {
	start, err := time.Parse(DateLayout, s.StartDate)
	if err != nil {
		return 0, fmt.Errorf("%w: start date %q", ErrInvalidDateRange, s.StartDate)
	}
	end, err := time.Parse(DateLayout, s.EndDate)
	if err != nil {
		return 0, fmt.Errorf("%w: end date %q", ErrInvalidDateRange, s.EndDate)
	}
	nights := int(end.Sub(start).Hours() / 24)
	if nights <= 0 {
		return 0, fmt.Errorf("%w: end date must be after start date", ErrInvalidDateRange)
	}
	return nights, nil
}

// ToggleTour flips set membership for the given tour: it is added when
// absent and removed when present. Returns true when the tour ends up
// selected.
func (s *TripSelection) ToggleTour(tour TourOption) bool {
	if s.ChosenTours == nil {
		s.ChosenTours = make(map[string]TourOption)
	}
	if _, ok := s.ChosenTours[tour.ID]; ok {
		delete(s.ChosenTours, tour.ID)
		return false
	}
	s.ChosenTours[tour.ID] = tour
	return true
}

// TourList returns the chosen tours ordered by id for stable serialization.
func (s *TripSelection) TourList() []TourOption {
	tours := make([]TourOption, 0, len(s.ChosenTours))
	for _, t := range s.ChosenTours {
		tours = append(tours, t)
	}
	sort.Slice(tours, func(i, j int) bool { return tours[i].ID < tours[j].ID })
	return tours
}

// HasFlightAndHotel reports whether both mandatory components are chosen.
func (s *TripSelection) HasFlightAndHotel() bool {
	return s.ChosenFlight != nil && s.ChosenHotel != nil
}
