package domain

// DefaultCurrency is the fixed display currency for aggregated costs.
const DefaultCurrency = "BRL"

// CostBreakdown itemizes the derived trip cost. The presentation layer shows
// each component subtotal, not only the grand total.
type CostBreakdown struct {
	// Flight is the flight subtotal (per stay).
	Flight float64 `json:"flight"`

	// Hotel is the hotel subtotal: nightly rate times Nights.
	Hotel float64 `json:"hotel"`

	// Tours is the sum of per-person tour prices for the chosen set.
	Tours float64 `json:"tours"`

	// Total is Flight + Hotel + Tours.
	Total float64 `json:"total"`

	// Nights is the stay duration used as the hotel multiplier.
	Nights int `json:"nights"`

	// Currency is the display currency of all amounts.
	Currency string `json:"currency"`
}

// AggregateCost derives the cost breakdown for a selection. It is a pure
// function of the selection: flight price per stay, hotel price per night
// times nights, tour prices per person summed over the chosen set.
// Returns ErrInvalidDateRange when the date range yields no positive night
// count, rather than computing a zero- or negative-night hotel cost.
func AggregateCost(sel *TripSelection) (CostBreakdown, error) {
	nights, err := sel.Nights()
	if err != nil {
		return CostBreakdown{}, err
	}

	breakdown := CostBreakdown{
		Nights:   nights,
		Currency: DefaultCurrency,
	}

	if sel.ChosenFlight != nil {
		breakdown.Flight = sel.ChosenFlight.Price.Amount
	}
	if sel.ChosenHotel != nil {
		breakdown.Hotel = sel.ChosenHotel.PricePerNight.Amount * float64(nights)
	}
	for _, tour := range sel.ChosenTours {
		breakdown.Tours += tour.PricePerPerson.Amount
	}

	breakdown.Total = breakdown.Flight + breakdown.Hotel + breakdown.Tours
	return breakdown, nil
}
