package domain

// MaxHotelResults bounds the number of hotel candidates kept after a search.
const MaxHotelResults = 6

// MaxHotelAmenities bounds the amenities carried on a canonical hotel.
const MaxHotelAmenities = 5

// DefaultHotelImage is the placeholder used when a property has no gallery.
const DefaultHotelImage = "icone-hotel.jpg"

// HotelOption represents a single hotel property after normalization.
type HotelOption struct {
	// ID is the provider-supplied property identifier.
	ID string `json:"id"`

	// Name is the property display name.
	Name string `json:"name"`

	// RatingScore is the guest review score on a 0-5 scale.
	// Defaults to 0 when the provider value is absent or unparseable.
	RatingScore float64 `json:"rating"`

	// PricePerNight is the lead nightly rate. Amount is never negative;
	// unparseable provider prices normalize to 0 rather than failing the
	// whole search.
	PricePerNight Money `json:"price"`

	// Address is the street address line, possibly empty.
	Address string `json:"address"`

	// Description is a short location summary, possibly empty.
	Description string `json:"description"`

	// Amenities lists up to MaxHotelAmenities amenity names.
	Amenities []string `json:"amenities"`

	// Images holds at least one image URL; DefaultHotelImage when the
	// provider supplies none.
	Images []string `json:"images"`
}

// EnsureImages guarantees the images invariant: an option with no images
// gets the placeholder image.
func (h *HotelOption) EnsureImages() {
	if len(h.Images) == 0 {
		h.Images = []string{DefaultHotelImage}
	}
}
