package domain

// TourCategories is the fixed label set a tour category is drawn from.
var TourCategories = []string{"Histórico", "Cultural", "Natureza", "Aventura", "Gastronômico"}

// TourDurations is the fixed label set a tour duration is drawn from.
var TourDurations = []string{"2-3 horas", "4-5 horas", "Dia inteiro"}

// TourIncludedItems is the standard inclusion list attached to every
// generated tour.
var TourIncludedItems = []string{
	"Guia profissional bilíngue",
	"Transporte com ar condicionado",
	"Ingressos para atrações",
	"Água mineral",
	"Seguro viagem",
}

// TourOption represents a local tour offering. Tours are generated
// synthetically from geographic data; their price and rating are
// presentation placeholders, not real provider quotes, which is why the
// entity carries an explicit Synthetic tag.
type TourOption struct {
	// ID is the source place identifier (geoname id as a string).
	ID string `json:"id"`

	// Name is the tour display name, derived from the place name.
	Name string `json:"name"`

	// Description is a short generated blurb about the place.
	Description string `json:"description"`

	// PricePerPerson is the placeholder per-person price.
	PricePerPerson Money `json:"price"`

	// RatingScore is the placeholder rating on a 0-5 scale.
	RatingScore float64 `json:"rating"`

	// DurationLabel is one of TourDurations.
	DurationLabel string `json:"duration"`

	// Category is one of TourCategories.
	Category string `json:"category"`

	// IncludedItems lists what the tour includes.
	IncludedItems []string `json:"included"`

	// MeetingPoint is the derived meeting location.
	MeetingPoint string `json:"meeting_point"`

	// PhotoURL is a stock photo URL keyed on the place name.
	PhotoURL string `json:"photo,omitempty"`

	// BookingType is the confirmation mode label.
	BookingType string `json:"booking_type,omitempty"`

	// Synthetic marks the price and rating as generated placeholders.
	Synthetic bool `json:"synthetic"`
}

// Place is a geographic point-of-interest record from the place provider.
// It drives both destination autocomplete and tour generation.
type Place struct {
	// GeonameID is the stable numeric identifier of the place.
	GeonameID int64 `json:"geoname_id"`

	// Name is the place display name.
	Name string `json:"name"`

	// AdminName is the first-level administrative division (state).
	AdminName string `json:"admin_name"`

	// CountryName is the country display name.
	CountryName string `json:"country_name"`

	// Lat and Lng are the place coordinates.
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`

	// Population is the recorded population; autocomplete filters on it.
	Population int64 `json:"population"`

	// IATA is the airport code for the city when the static table has one.
	IATA string `json:"iata,omitempty"`
}

// Display returns the "Name, AdminName" form used across the flow.
func (p Place) Display() string {
	if p.AdminName == "" {
		return p.Name
	}
	return p.Name + ", " + p.AdminName
}
