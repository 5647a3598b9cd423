// Package tours generates synthetic local tour offerings from geographic
// data. There is no real tour inventory behind them; prices and ratings
// are presentation placeholders and every option is tagged Synthetic.
package tours

import (
	"fmt"
	"math/rand"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/trip-sim/trip-simulation-and-aggregation-system/internal/domain"
)

// DefaultMaxTours caps how many tours one destination yields.
const DefaultMaxTours = 20

// Generator derives tour options from places near a destination.
type Generator struct {
	pricing PricingStrategy

	mu  sync.Mutex
	rng *rand.Rand
}

// Option configures a Generator.
type Option func(*Generator)

// WithPricing overrides the pricing strategy.
func WithPricing(p PricingStrategy) Option {
	return func(g *Generator) { g.pricing = p }
}

// WithRandSource fixes the random source, for deterministic tests.
func WithRandSource(src rand.Source) Option {
	return func(g *Generator) { g.rng = rand.New(src) }
}

// NewGenerator creates a Generator with uniform pricing and a time-seeded
// random source.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		pricing: NewUniformPricing(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// FromPlaces generates one tour per place, up to max. The name and meeting
// point derive deterministically from the place; price, rating, category
// and duration are randomized draws.
func (g *Generator) FromPlaces(places []domain.Place, max int) []domain.TourOption {
	if max <= 0 {
		max = DefaultMaxTours
	}
	if len(places) > max {
		places = places[:max]
	}

	options := make([]domain.TourOption, 0, len(places))
	for _, place := range places {
		options = append(options, g.fromPlace(place))
	}
	return options
}

func (g *Generator) fromPlace(place domain.Place) domain.TourOption {
	g.mu.Lock()
	defer g.mu.Unlock()

	return domain.TourOption{
		ID:             strconv.FormatInt(place.GeonameID, 10),
		Name:           "Tour em " + place.Name,
		Description:    fmt.Sprintf("Conheça os principais pontos turísticos de %s com guia local.", place.Name),
		PricePerPerson: g.pricing.Quote(g.rng, place),
		RatingScore:    rating(g.rng),
		DurationLabel:  pick(g.rng, domain.TourDurations),
		Category:       pick(g.rng, domain.TourCategories),
		IncludedItems:  domain.TourIncludedItems,
		MeetingPoint:   "Centro de " + place.Name,
		PhotoURL:       photoURL(place.Name),
		BookingType:    "Confirmação imediata",
		Synthetic:      true,
	}
}

// rating draws uniformly from [3, 5) rounded to one decimal place.
func rating(rng *rand.Rand) float64 {
	r := 3.0 + rng.Float64()*2.0
	return float64(int(r*10)) / 10
}

func pick(rng *rand.Rand, items []string) string {
	return items[rng.Intn(len(items))]
}

// photoURL returns a stock photo URL keyed on the place name.
func photoURL(name string) string {
	return "https://source.unsplash.com/featured/?" + url.QueryEscape(name+",travel")
}
