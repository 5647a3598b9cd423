package http

import (
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/usecase"
)

// ToSearchParams converts a validated request to use-case parameters.
func ToSearchParams(req *StartSearchRequest) usecase.SearchParams {
	return usecase.SearchParams{
		Origin:      toPlaceRef(req.Origin),
		Destination: toPlaceRef(req.Destination),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		Adults:      req.Adults,
		Children:    req.Children,
	}
}

func toPlaceRef(dto PlaceRefDTO) domain.PlaceRef {
	return domain.PlaceRef{
		Display:   dto.Display,
		GeonameID: dto.GeonameID,
		CityName:  dto.CityName,
		IATA:      dto.IATA,
		Lat:       dto.Lat,
		Lng:       dto.Lng,
	}
}

// ToSnapshotResponse converts a session snapshot to its response shape.
// Slot errors become human-readable messages so one provider's failure
// renders alongside the other slot's results.
func ToSnapshotResponse(snap usecase.Snapshot) *SnapshotResponse {
	resp := &SnapshotResponse{
		SessionID: snap.ID,
		Phase:     string(snap.Phase),
		Selection: snap.Selection,
		Flights: FlightSlotDTO{
			SlotStatusDTO: SlotStatusDTO{Settled: snap.FlightSettled, Error: slotMessage(snap.FlightErr)},
			Items:         snap.FlightCandidates,
		},
		Hotels: HotelSlotDTO{
			SlotStatusDTO: SlotStatusDTO{Settled: snap.HotelSettled, Error: slotMessage(snap.HotelErr)},
			Items:         snap.HotelCandidates,
		},
		Tours: snap.TourCandidates,
	}
	if resp.Flights.Items == nil {
		resp.Flights.Items = []domain.FlightOption{}
	}
	if resp.Hotels.Items == nil {
		resp.Hotels.Items = []domain.HotelOption{}
	}
	return resp
}

// slotMessage maps a slot failure to a stable user-facing message.
func slotMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case domain.IsRetryable(err):
		return "The search provider is temporarily unavailable. Please try again."
	default:
		return "The search could not be completed."
	}
}
