package searchapi

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// ProviderName is the unique identifier for the SearchAPI flight provider.
const ProviderName = "searchapi"

const currency = domain.DefaultCurrency

// normalize converts a raw search response into canonical flight options.
// Each flat entry becomes a single-segment option; absent leg fields fall
// back to explicit placeholders so downstream rendering never sees blanks.
func normalize(resp *searchResponse) ([]domain.FlightOption, error) {
	if resp == nil || len(resp.Flights) == 0 {
		return nil, domain.ErrNoResults
	}

	options := make([]domain.FlightOption, 0, len(resp.Flights))
	for _, fe := range resp.Flights {
		option, err := normalizeFlight(fe)
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

// normalizeFlight converts one flat entry into a single-segment option.
func normalizeFlight(fe flightEntry) (domain.FlightOption, error) {
	if fe.Price < 0 {
		return domain.FlightOption{}, &domain.NormalizationError{Provider: ProviderName, Reason: "negative price"}
	}

	option := domain.FlightOption{
		ID:       fe.FlightID,
		Price:    domain.Money{Amount: fe.Price, Currency: currency},
		Provider: ProviderName,
	}
	if option.ID == "" {
		option.ID = uuid.New().String()
	}

	seg := domain.FlightSegment{
		Airline: domain.AirlineInfo{
			Code: airlineCode(fe.FlightNumber, fe.Airline),
			Name: orUnknown(fe.Airline),
		},
		FlightNumber:  orUnknown(fe.FlightNumber),
		Departure:     segmentPoint(fe.DepartureAirport),
		Arrival:       segmentPoint(fe.ArrivalAirport),
		DurationLabel: domain.UnknownField,
	}
	if fe.Duration > 0 {
		seg.DurationLabel = fmt.Sprintf("%dmin", fe.Duration)
	}

	option.Segments = []domain.FlightSegment{seg}
	return option, nil
}

// segmentPoint converts an optional airport reference.
func segmentPoint(a *airportEntry) domain.SegmentPoint {
	if a == nil {
		return domain.SegmentPoint{
			Airport: domain.AirportRef{Code: domain.UnknownField, Name: domain.UnknownField},
			Time:    domain.UnknownField,
		}
	}
	return domain.SegmentPoint{
		Airport: domain.AirportRef{Code: orUnknown(a.ID), Name: orUnknown(a.Name)},
		Time:    orUnknown(a.Time),
	}
}

// airlineCode derives the designator from the flight number, falling back
// to the airline display name when no number is present.
func airlineCode(flightNumber, airline string) string {
	if parts := strings.Fields(flightNumber); len(parts) > 0 {
		return parts[0]
	}
	return orUnknown(airline)
}

func orUnknown(s string) string {
	if strings.TrimSpace(s) == "" {
		return domain.UnknownField
	}
	return s
}
