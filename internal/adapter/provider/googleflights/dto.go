package googleflights

// searchResponse is the raw payload of the legacy Google Flights engine.
// Pricing lives on the best-flight grouping; leg details live in the nested
// flights array. Field presence is unreliable across responses.
type searchResponse struct {
	BestFlights []bestFlight   `json:"best_flights"`
	Error       *responseError `json:"error,omitempty"`
}

// responseError is the error envelope some responses carry in-band.
type responseError struct {
	Message string `json:"message"`
}

// bestFlight is one priced flight grouping.
type bestFlight struct {
	// DepartureToken is the booking token; absent on some responses.
	DepartureToken string `json:"departure_token"`

	// Price is the total price as a bare number; 0 when absent.
	Price float64 `json:"price"`

	// Flights holds the legs; may be missing entirely.
	Flights []legEntry `json:"flights"`
}

// legEntry is one leg of a best-flight grouping.
type legEntry struct {
	DepartureAirport airportEntry `json:"departure_airport"`
	ArrivalAirport   airportEntry `json:"arrival_airport"`

	// Duration is the leg duration in minutes.
	Duration int `json:"duration"`

	// Airline is the operating airline display name.
	Airline string `json:"airline"`

	// FlightNumber is like "G3 1045"; its first token is the airline code.
	FlightNumber string `json:"flight_number"`
}

// airportEntry is an airport reference inside a leg.
type airportEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}
