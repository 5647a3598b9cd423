package mock

import (
	"fmt"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// SampleFlightOptions returns flight options for testing with all required
// fields populated with realistic values. Prices step up by 70 BRL so tests
// can pick distinct candidates.
func SampleFlightOptions(provider string, count int) []domain.FlightOption {
	options := make([]domain.FlightOption, count)
	for i := 0; i < count; i++ {
		options[i] = domain.FlightOption{
			ID: fmt.Sprintf("%s-flight-%d", provider, i+1),
			Segments: []domain.FlightSegment{
				{
					Airline:      domain.AirlineInfo{Code: "G3", Name: "Gol Linhas Aéreas"},
					FlightNumber: fmt.Sprintf("G3 %d", 1000+i),
					Departure: domain.SegmentPoint{
						Airport: domain.AirportRef{Code: "GRU", Name: "Aeroporto Internacional de Guarulhos"},
						Time:    fmt.Sprintf("2025-07-10 %02d:00", 8+2*i),
					},
					Arrival: domain.SegmentPoint{
						Airport: domain.AirportRef{Code: "GIG", Name: "Aeroporto Internacional do Galeão"},
						Time:    fmt.Sprintf("2025-07-10 %02d:05", 9+2*i),
					},
					DurationLabel: "65min",
				},
			},
			Price:    domain.Money{Amount: 450 + float64(i)*70, Currency: domain.DefaultCurrency},
			Provider: provider,
		}
	}
	return options
}

// SampleHotelOptions returns hotel options for testing. Nightly rates step
// up by 50 BRL.
func SampleHotelOptions(count int) []domain.HotelOption {
	options := make([]domain.HotelOption, count)
	for i := 0; i < count; i++ {
		options[i] = domain.HotelOption{
			ID:            fmt.Sprintf("hotel-%d", i+1),
			Name:          fmt.Sprintf("Hotel Atlântico %d", i+1),
			RatingScore:   4.2,
			PricePerNight: domain.Money{Amount: 300 + float64(i)*50, Currency: domain.DefaultCurrency},
			Address:       "Av. Atlântica, 1702",
			Description:   "Copacabana",
			Amenities:     []string{"Wi-Fi", "Piscina"},
			Images:        []string{domain.DefaultHotelImage},
		}
	}
	return options
}

// SamplePlaces returns populated places near Rio de Janeiro for testing
// geocoding and tour generation.
func SamplePlaces(count int) []domain.Place {
	places := make([]domain.Place, count)
	for i := 0; i < count; i++ {
		places[i] = domain.Place{
			GeonameID:   int64(3451190 + i),
			Name:        fmt.Sprintf("Bairro %d", i+1),
			AdminName:   "Rio de Janeiro",
			CountryName: "Brazil",
			Lat:         -22.9 - float64(i)*0.01,
			Lng:         -43.2 - float64(i)*0.01,
			Population:  50000 - int64(i)*1000,
		}
	}
	return places
}

// SampleSelection returns a complete selection ready to be costed: a 450
// BRL flight, a 300 BRL per night hotel over three nights and one 200 BRL
// tour, totaling 1550 BRL.
func SampleSelection() *domain.TripSelection {
	flight := SampleFlightOptions("test", 1)[0]
	hotel := SampleHotelOptions(1)[0]

	return &domain.TripSelection{
		Origin:      domain.PlaceRef{Display: "São Paulo, São Paulo", GeonameID: 3448439, CityName: "São Paulo", IATA: "GRU"},
		Destination: domain.PlaceRef{Display: "Rio de Janeiro, Rio de Janeiro", GeonameID: 3451190, CityName: "Rio de Janeiro", IATA: "GIG"},
		StartDate:   "2025-07-10",
		EndDate:     "2025-07-13",
		Party:       domain.PartySize{Adults: 2},
		ChosenFlight: &flight,
		ChosenHotel:  &hotel,
		ChosenTours: map[string]domain.TourOption{
			"tour-1": {
				ID:             "tour-1",
				Name:           "Tour em Rio de Janeiro",
				PricePerPerson: domain.Money{Amount: 200, Currency: domain.DefaultCurrency},
				Synthetic:      true,
			},
		},
	}
}
