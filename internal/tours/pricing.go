package tours

import (
	"math/rand"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// PricingStrategy quotes a per-person price for a generated tour. The
// default is a bounded uniform draw; a real booking integration can swap
// in provider quotes without touching the generator.
type PricingStrategy interface {
	Quote(rng *rand.Rand, place domain.Place) domain.Money
}

// Default price bounds in BRL.
const (
	MinTourPrice = 50.0
	MaxTourPrice = 300.0
)

// UniformPricing draws a price uniformly from [Min, Max).
type UniformPricing struct {
	Min float64
	Max float64
}

// NewUniformPricing returns the default bounded uniform strategy.
func NewUniformPricing() UniformPricing {
	return UniformPricing{Min: MinTourPrice, Max: MaxTourPrice}
}

// Quote draws a price rounded to whole reais.
func (u UniformPricing) Quote(rng *rand.Rand, _ domain.Place) domain.Money {
	amount := u.Min + rng.Float64()*(u.Max-u.Min)
	return domain.Money{
		Amount:   float64(int(amount)),
		Currency: domain.DefaultCurrency,
	}
}

var _ PricingStrategy = UniformPricing{}
