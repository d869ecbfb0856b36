// README: Geo-fare engine; pure distance, region and tier pricing over injected reference data.
package fare

import (
	"math"

	"skycab/internal/modules/geo"
	"skycab/internal/types"
)

// Engine prices trips inside a fixed service region. It holds only
// read-only data and is safe for concurrent use.
type Engine struct {
	catalog     *Catalog
	region      geo.Region
	minimumFare float64
}

type EngineOption func(*Engine)

// WithMinimumFare overrides MinimumFare.
func WithMinimumFare(v float64) EngineOption {
	return func(e *Engine) { e.minimumFare = v }
}

func NewEngine(catalog *Catalog, region geo.Region, opts ...EngineOption) *Engine {
	e := &Engine{catalog: catalog, region: region, minimumFare: MinimumFare}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Region() geo.Region {
	return e.region
}

func (e *Engine) MinimumFare() float64 {
	return e.minimumFare
}

// IsWithinServiceRegion reports whether p lies inside the service region.
func (e *Engine) IsWithinServiceRegion(p geo.Point) bool {
	return e.region.Contains(p)
}

// DistanceKm is the great-circle distance between a and b.
func (e *Engine) DistanceKm(a, b geo.Point) float64 {
	return geo.DistanceKm(a, b)
}

// QuoteFare prices distanceKm for tierID, floored at the minimum fare.
// An unknown tier yields 0, meaning "not yet priced".
func (e *Engine) QuoteFare(distanceKm float64, tierID string) float64 {
	tier, ok := e.catalog.Get(tierID)
	if !ok {
		return 0
	}
	return math.Max(distanceKm*tier.PricePerKm, e.minimumFare)
}

func (e *Engine) GetTier(tierID string) (Tier, bool) {
	return e.catalog.Get(tierID)
}

func (e *Engine) Tiers() []Tier {
	return e.catalog.All()
}

// Quote prices a trip and reports unknown tiers and out-of-region points as errors.
func (e *Engine) Quote(pickup, destination geo.Point, tierID string) (Quote, error) {
	if _, ok := e.catalog.Get(tierID); !ok {
		return Quote{}, ErrUnknownTier
	}
	if !e.IsWithinServiceRegion(pickup) || !e.IsWithinServiceRegion(destination) {
		return Quote{}, ErrOutsideRegion
	}
	d := e.DistanceKm(pickup, destination)
	return Quote{
		Pickup:      pickup,
		Destination: destination,
		TierID:      tierID,
		DistanceKm:  d,
		TotalFare:   e.QuoteFare(d, tierID),
		Currency:    types.CurrencyINR,
	}, nil
}
