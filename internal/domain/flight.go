// Package domain contains the core business entities and rules for the trip
// simulation engine. These entities are provider-agnostic and form the
// foundation upon which all other components are built.
package domain

// UnknownField is the sentinel used when a provider omits a textual field.
// Canonical entities never carry absent values; renderers and cost math can
// rely on every field being populated.
const UnknownField = "N/A"

// FlightOption represents a single bookable flight (direct or multi-leg)
// after normalization from a provider payload.
type FlightOption struct {
	// ID is a stable identifier: the provider-supplied token, or a
	// synthesized fallback when the provider omits one.
	ID string `json:"id"`

	// Segments is the ordered list of legs. Never empty: a flight with no
	// parseable legs gets a single placeholder segment instead.
	Segments []FlightSegment `json:"segments"`

	// Price is the total price for the whole party.
	Price Money `json:"price"`

	// Provider identifies which flight provider this option came from.
	Provider string `json:"provider,omitempty"`
}

// FlightSegment represents one leg of a flight.
type FlightSegment struct {
	// Airline is the operating airline for this leg.
	Airline AirlineInfo `json:"airline"`

	// FlightNumber is the airline's flight number (e.g., "G3 1045").
	FlightNumber string `json:"flight_number"`

	// Departure is the departure airport and local time.
	Departure SegmentPoint `json:"departure"`

	// Arrival is the arrival airport and local time.
	Arrival SegmentPoint `json:"arrival"`

	// DurationLabel is a human-readable duration (e.g., "95min").
	DurationLabel string `json:"duration"`
}

// AirlineInfo contains information about an airline.
type AirlineInfo struct {
	// Code is the airline designator (e.g., "G3").
	Code string `json:"code"`

	// Name is the full airline name (e.g., "Gol Linhas Aéreas").
	Name string `json:"name"`
}

// SegmentPoint is a departure or arrival point of a segment.
type SegmentPoint struct {
	// Airport identifies the airport of this point.
	Airport AirportRef `json:"airport"`

	// Time is the provider-supplied local time string, or UnknownField.
	Time string `json:"time"`
}

// AirportRef identifies an airport by IATA code and display name.
type AirportRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Money is an amount in a single display currency.
type Money struct {
	// Amount is the numeric value. Always >= 0 on canonical entities.
	Amount float64 `json:"amount"`

	// Currency is the ISO 4217 currency code (e.g., "BRL").
	Currency string `json:"currency"`
}

// PlaceholderSegment returns a segment with every field set to the explicit
// unknown sentinel. Used when a provider response omits leg details entirely.
func PlaceholderSegment() FlightSegment {
	return FlightSegment{
		Airline:       AirlineInfo{Code: UnknownField, Name: UnknownField},
		FlightNumber:  UnknownField,
		Departure:     SegmentPoint{Airport: AirportRef{Code: UnknownField, Name: UnknownField}, Time: UnknownField},
		Arrival:       SegmentPoint{Airport: AirportRef{Code: UnknownField, Name: UnknownField}, Time: UnknownField},
		DurationLabel: UnknownField,
	}
}

// EnsureSegments guarantees the segments invariant: if the option has no
// segments, a single placeholder segment is installed.
func (f *FlightOption) EnsureSegments() {
	if len(f.Segments) == 0 {
		f.Segments = []FlightSegment{PlaceholderSegment()}
	}
}
