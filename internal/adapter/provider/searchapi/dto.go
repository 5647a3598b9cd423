package searchapi

// searchResponse is the raw payload of the SearchAPI flight engine. Unlike
// the legacy engine, results arrive as a flat flights array with the leg
// detail inlined on each entry.
type searchResponse struct {
	Flights []flightEntry  `json:"flights"`
	Error   *responseError `json:"error,omitempty"`
}

// responseError is the error envelope some responses carry in-band.
type responseError struct {
	Message string `json:"message"`
}

// flightEntry is one priced result. Only flight_id, airline and price are
// reliably present; the leg fields may all be missing.
type flightEntry struct {
	FlightID string  `json:"flight_id"`
	Airline  string  `json:"airline"`
	Price    float64 `json:"price"`

	FlightNumber     string        `json:"flight_number"`
	DepartureAirport *airportEntry `json:"departure_airport,omitempty"`
	ArrivalAirport   *airportEntry `json:"arrival_airport,omitempty"`

	// Duration is the total duration in minutes; 0 when absent.
	Duration int `json:"duration"`
}

// airportEntry is an airport reference inlined on a flight entry.
type airportEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Time string `json:"time"`
}
