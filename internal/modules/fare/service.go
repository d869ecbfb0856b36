// README: Fare service computes estimates and locks bookable quotes.
package fare

import (
	"context"
	"time"

	"github.com/google/uuid"

	"skycab/internal/modules/geo"
	"skycab/internal/types"
)

// DefaultQuoteTTL is how long a locked quote may be booked.
const DefaultQuoteTTL = 10 * time.Minute

type Service struct {
	engine *Engine
	store  *Store
	ttl    time.Duration
	now    func() time.Time
}

func NewService(engine *Engine, store *Store, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultQuoteTTL
	}
	return &Service{engine: engine, store: store, ttl: ttl, now: time.Now}
}

func (s *Service) Engine() *Engine {
	return s.engine
}

type EstimateRequest struct {
	Pickup      geo.Point
	Destination geo.Point
	TierID      string
}

// Estimate is what the booking screen renders. Quote.ID is set only when the
// trip is bookable: known tier and both points inside the region.
type Estimate struct {
	Quote
	TierKnown           bool
	PickupInRegion      bool
	DestinationInRegion bool
}

func (e Estimate) Bookable() bool {
	return e.TierKnown && e.PickupInRegion && e.DestinationInRegion
}

// Estimate never fails on unknown tiers or out-of-region points; those are
// reported through the flags. Errors come only from the quote store.
func (s *Service) Estimate(ctx context.Context, req EstimateRequest) (Estimate, error) {
	_, known := s.engine.GetTier(req.TierID)
	d := s.engine.DistanceKm(req.Pickup, req.Destination)
	est := Estimate{
		Quote: Quote{
			Pickup:      req.Pickup,
			Destination: req.Destination,
			TierID:      req.TierID,
			DistanceKm:  d,
			TotalFare:   s.engine.QuoteFare(d, req.TierID),
			Currency:    types.CurrencyINR,
		},
		TierKnown:           known,
		PickupInRegion:      s.engine.IsWithinServiceRegion(req.Pickup),
		DestinationInRegion: s.engine.IsWithinServiceRegion(req.Destination),
	}
	if !est.Bookable() || s.store == nil {
		return est, nil
	}

	est.ID = uuid.NewString()
	est.ExpiresAt = s.now().Add(s.ttl).UTC()
	if err := s.store.Save(ctx, est.Quote, s.ttl); err != nil {
		return Estimate{}, err
	}
	return est, nil
}

// Locked returns a previously issued quote.
func (s *Service) Locked(ctx context.Context, id string) (Quote, error) {
	if s.store == nil || id == "" {
		return Quote{}, ErrQuoteNotFound
	}
	return s.store.Get(ctx, id)
}

// Release drops a consumed quote.
func (s *Service) Release(ctx context.Context, id string) error {
	if s.store == nil {
		return nil
	}
	return s.store.Delete(ctx, id)
}
