// README: Booking service turns fare quotes into confirmed bookings.
package booking

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"skycab/internal/modules/fare"
	"skycab/internal/modules/geo"
	"skycab/internal/types"
)

var (
	ErrNotFound     = errors.New("booking not found")
	ErrBadRequest   = errors.New("bad request")
	ErrQuoteExpired = errors.New("quote expired, request a new fare")
	ErrInvalidState = errors.New("invalid state transition")
)

const listLimit = 50

// Pricing is the subset of the fare module bookings depend on.
type Pricing interface {
	Locked(ctx context.Context, id string) (fare.Quote, error)
	Release(ctx context.Context, id string) error
	Engine() *fare.Engine
}

// Labeler turns a coordinate into a display string for the confirmation screen.
type Labeler interface {
	Label(ctx context.Context, p geo.Point) (string, error)
}

// CoordinateLabeler formats the raw coordinate.
type CoordinateLabeler struct{}

func (CoordinateLabeler) Label(_ context.Context, p geo.Point) (string, error) {
	return p.String(), nil
}

type Service struct {
	store   *Store
	pricing Pricing
	labeler Labeler
	logger  logrus.FieldLogger
	now     func() time.Time
}

func NewService(store *Store, pricing Pricing, labeler Labeler) *Service {
	if labeler == nil {
		labeler = CoordinateLabeler{}
	}
	return &Service{store: store, pricing: pricing, labeler: labeler, logger: logrus.StandardLogger(), now: time.Now}
}

// WithLogger replaces the standard logrus logger.
func (s *Service) WithLogger(l logrus.FieldLogger) *Service {
	if l != nil {
		s.logger = l
	}
	return s
}

type BookCommand struct {
	UserID  types.ID
	QuoteID string
}

type DirectCommand struct {
	UserID      types.ID
	Pickup      geo.Point
	Destination geo.Point
	TierID      string
}

type CancelCommand struct {
	BookingID types.ID
	UserID    types.ID
}

// Book confirms a previously locked quote at its locked fare.
func (s *Service) Book(ctx context.Context, cmd BookCommand) (*Booking, error) {
	if cmd.UserID == "" || strings.TrimSpace(cmd.QuoteID) == "" {
		return nil, ErrBadRequest
	}
	q, err := s.pricing.Locked(ctx, cmd.QuoteID)
	if errors.Is(err, fare.ErrQuoteNotFound) {
		return nil, ErrQuoteExpired
	}
	if err != nil {
		return nil, fmt.Errorf("load quote: %w", err)
	}

	b, err := s.confirm(ctx, cmd.UserID, q)
	if errors.Is(err, errQuoteUsed) {
		return nil, ErrQuoteExpired
	}
	if err != nil {
		return nil, err
	}
	// the unique quote_id index still blocks reuse if the key lingers until its TTL
	if err := s.pricing.Release(ctx, cmd.QuoteID); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"quote_id":   cmd.QuoteID,
			"booking_id": b.ID,
		}).Warn("release booked quote")
	}
	return b, nil
}

// BookDirect prices and confirms in one step. Unknown tiers and points
// outside the region surface as fare.ErrUnknownTier / fare.ErrOutsideRegion.
func (s *Service) BookDirect(ctx context.Context, cmd DirectCommand) (*Booking, error) {
	if cmd.UserID == "" || cmd.TierID == "" {
		return nil, ErrBadRequest
	}
	q, err := s.pricing.Engine().Quote(cmd.Pickup, cmd.Destination, cmd.TierID)
	if err != nil {
		return nil, err
	}
	return s.confirm(ctx, cmd.UserID, q)
}

func (s *Service) confirm(ctx context.Context, userID types.ID, q fare.Quote) (*Booking, error) {
	b := &Booking{
		ID:               newID(),
		UserID:           userID,
		Status:           StatusConfirmed,
		Pickup:           q.Pickup,
		Destination:      q.Destination,
		PickupLabel:      s.label(ctx, q.Pickup),
		DestinationLabel: s.label(ctx, q.Destination),
		PickupCell:       geo.Cell(q.Pickup),
		DestinationCell:  geo.Cell(q.Destination),
		TierID:           q.TierID,
		DistanceKm:       q.DistanceKm,
		Fare:             types.FromMajor(q.TotalFare, types.CurrencyINR),
		CreatedAt:        s.now().UTC(),
	}
	if q.ID != "" {
		id := q.ID
		b.QuoteID = &id
	}
	if err := s.store.Create(ctx, b); err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}
	return b, nil
}

func (s *Service) label(ctx context.Context, p geo.Point) string {
	l, err := s.labeler.Label(ctx, p)
	if err != nil || l == "" {
		return p.String()
	}
	return l
}

// Get returns the booking only to its owner; other users see ErrNotFound.
func (s *Service) Get(ctx context.Context, id, userID types.ID) (*Booking, error) {
	b, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.UserID != userID {
		return nil, ErrNotFound
	}
	return b, nil
}

func (s *Service) ListByUser(ctx context.Context, userID types.ID) ([]Booking, error) {
	if userID == "" {
		return nil, ErrBadRequest
	}
	return s.store.ListByUser(ctx, userID, listLimit)
}

func (s *Service) Cancel(ctx context.Context, cmd CancelCommand) error {
	b, err := s.Get(ctx, cmd.BookingID, cmd.UserID)
	if err != nil {
		return err
	}
	if !CanTransition(b.Status, StatusCancelled) {
		return ErrInvalidState
	}
	ok, err := s.store.UpdateStatus(ctx, b.ID, b.Status, StatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return ErrInvalidState
	}
	return nil
}

func newID() types.ID {
	return types.ID("BK-" + strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")))
}
