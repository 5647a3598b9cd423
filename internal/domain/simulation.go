package domain

import "time"

// PersistedSimulation is the durable record of a saved trip simulation.
// It is exclusively owned by the user who created it; the engine never
// mutates another user's record.
type PersistedSimulation struct {
	// ID is the storage-assigned record identifier.
	ID string `json:"id"`

	// OwnerID is the authenticated user who created the record.
	OwnerID string `json:"owner_id"`

	// CreatedAt is when the record was saved.
	CreatedAt time.Time `json:"created_at"`

	// Departure and Destination are the trip endpoint display strings.
	Departure   string `json:"departure,omitempty"`
	Destination string `json:"destination"`

	// StartDate and EndDate are calendar dates in DateLayout format.
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	// Adults and Children are the party composition.
	Adults   int `json:"adults"`
	Children int `json:"children"`

	// SelectedFlight is the flight snapshot, nil when none was chosen.
	SelectedFlight *FlightOption `json:"selected_flight"`

	// SelectedHotel is the hotel snapshot, nil when none was chosen.
	SelectedHotel *HotelOption `json:"selected_hotel"`

	// SelectedTours is the tour snapshot list, possibly empty.
	SelectedTours []TourOption `json:"selected_tours"`

	// TotalCost is the derived total, always re-computed from the line
	// items at save time so it matches them.
	TotalCost float64 `json:"total_cost"`
}
