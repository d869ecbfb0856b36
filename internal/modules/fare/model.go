// README: Service tiers, the tier catalog and fare quotes.
package fare

import (
	"errors"
	"fmt"
	"time"

	"skycab/internal/modules/geo"
)

// MinimumFare is the floor applied to every priced trip, in rupees.
const MinimumFare = 200.0

var (
	ErrUnknownTier   = errors.New("unknown service tier")
	ErrOutsideRegion = errors.New("location outside service region")
	ErrQuoteNotFound = errors.New("quote not found or expired")
	ErrInvalidTier   = errors.New("invalid service tier")
)

// Tier is a pricing and capacity class offered to riders.
type Tier struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	PricePerKm  float64 `json:"price_per_km"`
	Capacity    int     `json:"capacity"`
	Speed       string  `json:"speed"`
}

// Catalog is an ordered, immutable set of tiers.
type Catalog struct {
	tiers []Tier
	index map[string]int
}

// NewCatalog validates tiers and builds a catalog preserving their order.
func NewCatalog(tiers ...Tier) (*Catalog, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("%w: catalog is empty", ErrInvalidTier)
	}
	c := &Catalog{
		tiers: make([]Tier, 0, len(tiers)),
		index: make(map[string]int, len(tiers)),
	}
	for _, t := range tiers {
		switch {
		case t.ID == "":
			return nil, fmt.Errorf("%w: empty id", ErrInvalidTier)
		case t.PricePerKm <= 0:
			return nil, fmt.Errorf("%w: %s has non-positive price per km", ErrInvalidTier, t.ID)
		case t.Capacity <= 0:
			return nil, fmt.Errorf("%w: %s has non-positive capacity", ErrInvalidTier, t.ID)
		}
		if _, dup := c.index[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate id %s", ErrInvalidTier, t.ID)
		}
		c.index[t.ID] = len(c.tiers)
		c.tiers = append(c.tiers, t)
	}
	return c, nil
}

// DefaultCatalog returns the economy/premium/luxury table.
func DefaultCatalog() *Catalog {
	c, err := NewCatalog(
		Tier{
			ID:          "economy",
			Name:        "Economy",
			Description: "Basic service, standard speed",
			PricePerKm:  500,
			Capacity:    2,
			Speed:       "Standard",
		},
		Tier{
			ID:          "premium",
			Name:        "Premium",
			Description: "Enhanced comfort, faster service",
			PricePerKm:  750,
			Capacity:    3,
			Speed:       "Fast",
		},
		Tier{
			ID:          "luxury",
			Name:        "Luxury",
			Description: "Premium experience, highest speed",
			PricePerKm:  1000,
			Capacity:    4,
			Speed:       "Fastest",
		},
	)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Catalog) Get(id string) (Tier, bool) {
	i, ok := c.index[id]
	if !ok {
		return Tier{}, false
	}
	return c.tiers[i], true
}

// All returns a copy of the tiers in catalog order.
func (c *Catalog) All() []Tier {
	out := make([]Tier, len(c.tiers))
	copy(out, c.tiers)
	return out
}

// Quote is a priced trip between two points for one tier.
type Quote struct {
	ID          string    `json:"id,omitempty"`
	Pickup      geo.Point `json:"pickup"`
	Destination geo.Point `json:"destination"`
	TierID      string    `json:"tier_id"`
	DistanceKm  float64   `json:"distance_km"`
	TotalFare   float64   `json:"total_fare"`
	Currency    string    `json:"currency"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}
