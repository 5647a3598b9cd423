package hotels4

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// ProviderName is the unique identifier for the Hotels4 provider.
const ProviderName = "hotels4"

const currency = domain.DefaultCurrency

// normalize converts a raw property listing into canonical hotel options.
// At most domain.MaxHotelResults entries are kept; items without a usable
// name are dropped and logged.
func normalize(resp *propertiesResponse) ([]domain.HotelOption, error) {
	if resp == nil {
		return nil, domain.ErrNoResults
	}

	properties := resp.Data.PropertySearch.Properties
	if len(properties) == 0 {
		return nil, domain.ErrNoResults
	}
	if len(properties) > domain.MaxHotelResults {
		properties = properties[:domain.MaxHotelResults]
	}

	options := make([]domain.HotelOption, 0, len(properties))
	for _, p := range properties {
		option, err := normalizeProperty(p)
		if err != nil {
			log.Warn().Err(err).Str("provider", ProviderName).Msg("Dropping malformed hotel item")
			continue
		}
		options = append(options, option)
	}

	if len(options) == 0 {
		return nil, domain.ErrNoResults
	}
	return options, nil
}

// normalizeProperty converts one property entry. Unparseable score and
// price already decoded to 0; only a missing name is fatal for the item.
func normalizeProperty(p propertyEntry) (domain.HotelOption, error) {
	if strings.TrimSpace(p.Name) == "" {
		return domain.HotelOption{}, &domain.NormalizationError{Provider: ProviderName, Reason: "missing name"}
	}

	option := domain.HotelOption{
		ID:          p.ID,
		Name:        p.Name,
		RatingScore: float64(p.Reviews.Score),
		PricePerNight: domain.Money{
			Amount:   float64(p.Price.Lead.Amount),
			Currency: currency,
		},
		Address: p.Neighborhood.Name,
	}

	for _, a := range p.Amenities {
		if len(option.Amenities) == domain.MaxHotelAmenities {
			break
		}
		if strings.TrimSpace(a.Text) != "" {
			option.Amenities = append(option.Amenities, a.Text)
		}
	}

	if p.PropertyImage.Image.URL != "" {
		option.Images = []string{p.PropertyImage.Image.URL}
	}
	option.EnsureImages()

	return option, nil
}
