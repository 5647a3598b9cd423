package http

import (
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// SessionResponse is returned when a session is created.
type SessionResponse struct {
	// SessionID identifies the simulation session
	SessionID string `json:"session_id"`

	// Phase is the current flow phase
	Phase string `json:"phase"`
}

// SlotStatusDTO describes one candidate search slot. A settled slot with no
// error and no items is a valid empty result, rendered differently from a
// failure.
type SlotStatusDTO struct {
	// Settled reports whether the search has returned
	Settled bool `json:"settled"`

	// Error is the human-readable failure message, empty on success
	Error string `json:"error,omitempty"`
}

// FlightSlotDTO is the flight candidate slot.
type FlightSlotDTO struct {
	SlotStatusDTO
	Items []domain.FlightOption `json:"items"`
}

// HotelSlotDTO is the hotel candidate slot.
type HotelSlotDTO struct {
	SlotStatusDTO
	Items []domain.HotelOption `json:"items"`
}

// SnapshotResponse is the full session view.
type SnapshotResponse struct {
	// SessionID identifies the simulation session
	SessionID string `json:"session_id"`

	// Phase is the current flow phase
	Phase string `json:"phase"`

	// Selection is the evolving trip selection
	Selection domain.TripSelection `json:"selection"`

	// Flights and Hotels are the candidate slots
	Flights FlightSlotDTO `json:"flights"`
	Hotels  HotelSlotDTO  `json:"hotels"`

	// Tours are the tour candidates, present from tour selection onward
	Tours []domain.TourOption `json:"tours,omitempty"`
}

// ToursResponse carries the tour candidates after advancing.
type ToursResponse struct {
	Tours []domain.TourOption `json:"tours"`
}

// CostResponse carries a recomputed cost breakdown.
type CostResponse struct {
	Cost domain.CostBreakdown `json:"cost"`
}

// SummaryResponse is the read-only costed view before saving.
type SummaryResponse struct {
	Selection domain.TripSelection `json:"selection"`
	Cost      domain.CostBreakdown `json:"cost"`
}

// SavedResponse is returned after a successful save.
type SavedResponse struct {
	// ID is the persisted simulation identifier
	ID string `json:"id"`
}

// CitiesResponse carries autocomplete candidates.
type CitiesResponse struct {
	Cities []domain.Place `json:"cities"`
}

// SimulationsResponse carries the owner's saved simulations.
type SimulationsResponse struct {
	Simulations []domain.PersistedSimulation `json:"simulations"`
}
