// Package http provides the HTTP handler layer for the trip simulation API.
// It handles request parsing, validation, response formatting, and error
// mapping.
package http

import (
	"fmt"
	"regexp"
	"strings"
)

// dateRegex matches dates in YYYY-MM-DD format.
var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ValidationErrors collects field-level validation failures.
type ValidationErrors struct {
	Errors map[string]string
}

// Error implements the error interface.
func (v *ValidationErrors) Error() string {
	fields := make([]string, 0, len(v.Errors))
	for field := range v.Errors {
		fields = append(fields, field)
	}
	return fmt.Sprintf("validation failed for fields: %s", strings.Join(fields, ", "))
}

// ToMap returns the field error map.
func (v *ValidationErrors) ToMap() map[string]string {
	return v.Errors
}

// add records one field failure, lazily creating the map.
func (v *ValidationErrors) add(field, message string) {
	if v.Errors == nil {
		v.Errors = make(map[string]string)
	}
	v.Errors[field] = message
}

// hasErrors reports whether any field failed.
func (v *ValidationErrors) hasErrors() bool {
	return len(v.Errors) > 0
}

// PlaceRefDTO is a geocoded endpoint as submitted by the autocomplete
// client.
type PlaceRefDTO struct {
	// Display is the "City, State" form (e.g., "Rio de Janeiro, Rio de Janeiro")
	Display string `json:"display"`

	// GeonameID is the place identifier from the cities endpoint
	GeonameID int64 `json:"geoname_id"`

	// CityName is the bare city name; derived from Display when absent
	CityName string `json:"city_name,omitempty"`

	// IATA is the airport code; resolved from the static table when absent
	IATA string `json:"iata,omitempty"`

	// Lat and Lng are the place coordinates
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// StartSearchRequest is the request body for issuing candidate searches.
type StartSearchRequest struct {
	// Origin is the trip starting point
	Origin PlaceRefDTO `json:"origin"`

	// Destination is the trip destination
	Destination PlaceRefDTO `json:"destination"`

	// StartDate is the outbound date in YYYY-MM-DD format
	StartDate string `json:"start_date"`

	// EndDate is the return date in YYYY-MM-DD format
	EndDate string `json:"end_date"`

	// Adults is the number of adults (at least 1)
	Adults int `json:"adults"`

	// Children is the number of children (0 or more)
	Children int `json:"children"`
}

// Validate checks the request fields. Airport resolution and date-range
// ordering are checked downstream; this catches shape problems early.
func (r *StartSearchRequest) Validate() error {
	v := &ValidationErrors{}

	if strings.TrimSpace(r.Origin.Display) == "" {
		v.add("origin", "origin is required")
	}
	if strings.TrimSpace(r.Destination.Display) == "" {
		v.add("destination", "destination is required")
	}
	validateDateField(v, "start_date", r.StartDate)
	validateDateField(v, "end_date", r.EndDate)
	if r.Adults < 1 {
		v.add("adults", "adults must be at least 1")
	}
	if r.Children < 0 {
		v.add("children", "children cannot be negative")
	}

	if v.hasErrors() {
		return v
	}
	return nil
}

func validateDateField(v *ValidationErrors, field, value string) {
	if strings.TrimSpace(value) == "" {
		v.add(field, field+" is required")
		return
	}
	if !dateRegex.MatchString(value) {
		v.add(field, field+" must be in YYYY-MM-DD format")
	}
}

// ChooseFlightRequest is the request body for choosing a flight.
type ChooseFlightRequest struct {
	// FlightID is the candidate flight identifier
	FlightID string `json:"flight_id"`
}

// Validate checks the request fields.
func (r *ChooseFlightRequest) Validate() error {
	if strings.TrimSpace(r.FlightID) == "" {
		v := &ValidationErrors{}
		v.add("flight_id", "flight_id is required")
		return v
	}
	return nil
}

// ChooseHotelRequest is the request body for choosing a hotel.
type ChooseHotelRequest struct {
	// HotelID is the candidate hotel identifier
	HotelID string `json:"hotel_id"`
}

// Validate checks the request fields.
func (r *ChooseHotelRequest) Validate() error {
	if strings.TrimSpace(r.HotelID) == "" {
		v := &ValidationErrors{}
		v.add("hotel_id", "hotel_id is required")
		return v
	}
	return nil
}

// ToggleTourRequest is the request body for toggling a tour.
type ToggleTourRequest struct {
	// TourID is the candidate tour identifier
	TourID string `json:"tour_id"`
}

// Validate checks the request fields.
func (r *ToggleTourRequest) Validate() error {
	if strings.TrimSpace(r.TourID) == "" {
		v := &ValidationErrors{}
		v.add("tour_id", "tour_id is required")
		return v
	}
	return nil
}
