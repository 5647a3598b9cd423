package googleflights

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// ProviderName is the unique identifier for the legacy Google Flights provider.
const ProviderName = "googleflights"

// currency is the fixed display currency for this provider's prices.
const currency = domain.DefaultCurrency

// normalize converts a raw search response into canonical flight options.
// Items that cannot be normalized are dropped and logged, never fatal.
// An absent or empty best_flights list yields ErrNoResults so callers can
// tell "zero matches" from "not yet searched".
func normalize(resp *searchResponse) ([]domain.FlightOption, error) {
	if resp == nil || len(resp.BestFlights) == 0 {
		return nil, domain.ErrNoResults
	}

	options := make([]domain.FlightOption, 0, len(resp.BestFlights))
	for _, bf := range resp.BestFlights {
		option, err := normalizeFlight(bf)
		if err != nil {
			log.Warn().Err(err).Str("provider", ProviderName).Msg("Dropping malformed flight item")
			continue
		}
		options = append(options, option)
	}

	if len(options) == 0 {
		return nil, domain.ErrNoResults
	}
	return options, nil
}

// normalizeFlight converts one best-flight grouping. Absent fields become
// explicit placeholders, never omissions.
func normalizeFlight(bf bestFlight) (domain.FlightOption, error) {
	if bf.Price < 0 {
		return domain.FlightOption{}, &domain.NormalizationError{Provider: ProviderName, Reason: "negative price"}
	}

	option := domain.FlightOption{
		ID:       bf.DepartureToken,
		Price:    domain.Money{Amount: bf.Price, Currency: currency},
		Provider: ProviderName,
	}
	if option.ID == "" {
		// No booking token on this response; synthesize a stable id.
		option.ID = uuid.New().String()
	}

	for _, leg := range bf.Flights {
		option.Segments = append(option.Segments, normalizeLeg(leg))
	}
	option.EnsureSegments()

	return option, nil
}

// normalizeLeg converts one leg entry with placeholder fallbacks.
func normalizeLeg(leg legEntry) domain.FlightSegment {
	seg := domain.FlightSegment{
		Airline: domain.AirlineInfo{
			Code: airlineCode(leg.FlightNumber),
			Name: orUnknown(leg.Airline),
		},
		FlightNumber: orUnknown(leg.FlightNumber),
		Departure: domain.SegmentPoint{
			Airport: domain.AirportRef{Code: orUnknown(leg.DepartureAirport.ID), Name: orUnknown(leg.DepartureAirport.Name)},
			Time:    orUnknown(leg.DepartureAirport.Time),
		},
		Arrival: domain.SegmentPoint{
			Airport: domain.AirportRef{Code: orUnknown(leg.ArrivalAirport.ID), Name: orUnknown(leg.ArrivalAirport.Name)},
			Time:    orUnknown(leg.ArrivalAirport.Time),
		},
		DurationLabel: domain.UnknownField,
	}
	if leg.Duration > 0 {
		seg.DurationLabel = fmt.Sprintf("%dmin", leg.Duration)
	}
	return seg
}

// airlineCode extracts the airline designator from a flight number like
// "G3 1045".
func airlineCode(flightNumber string) string {
	parts := strings.Fields(flightNumber)
	if len(parts) == 0 {
		return domain.UnknownField
	}
	return parts[0]
}

// orUnknown substitutes the unknown sentinel for empty provider fields.
func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.UnknownField
	}
	return s
}
