// README: Booking store backed by PostgreSQL.
package booking

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"skycab/internal/types"
)

const uniqueViolation = "23505"

// errQuoteUsed means another booking already consumed the quote.
var errQuoteUsed = errors.New("quote already booked")

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

const bookingColumns = `
	id, user_id, status,
	pickup_lat, pickup_lng, destination_lat, destination_lng,
	pickup_label, destination_label, pickup_cell, destination_cell,
	tier_id, distance_km, fare_amount, fare_currency, quote_id,
	created_at, cancelled_at`

func (s *Store) Create(ctx context.Context, b *Booking) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`) VALUES (
			$1, $2, $3,
			$4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15, $16,
			$17, $18
		)`,
		string(b.ID), string(b.UserID), string(b.Status),
		b.Pickup.Lat, b.Pickup.Lng, b.Destination.Lat, b.Destination.Lng,
		b.PickupLabel, b.DestinationLabel, b.PickupCell, b.DestinationCell,
		b.TierID, b.DistanceKm, b.Fare.Amount, b.Fare.Currency, b.QuoteID,
		b.CreatedAt, b.CancelledAt,
	)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == "bookings_quote_id_key" {
		return errQuoteUsed
	}
	return err
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Booking, error) {
	row := s.db.QueryRow(ctx, `SELECT `+bookingColumns+` FROM bookings WHERE id = $1`, string(id))
	b, err := scanBooking(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *Store) ListByUser(ctx context.Context, userID types.ID, limit int) ([]Booking, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2`, string(userID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Booking{}
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

// UpdateStatus moves a booking from one status to another; false means the
// row was not in the expected state.
func (s *Store) UpdateStatus(ctx context.Context, id types.ID, from, to Status) (bool, error) {
	tag, err := s.db.Exec(ctx, `
		UPDATE bookings
		SET status = $1,
		    cancelled_at = CASE WHEN $1 = 'cancelled' THEN NOW() ELSE cancelled_at END
		WHERE id = $2 AND status = $3`,
		string(to), string(id), string(from),
	)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() == 1, nil
}

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	var quoteID sql.NullString
	var cancelledAt sql.NullTime
	err := row.Scan(
		&b.ID, &b.UserID, &b.Status,
		&b.Pickup.Lat, &b.Pickup.Lng, &b.Destination.Lat, &b.Destination.Lng,
		&b.PickupLabel, &b.DestinationLabel, &b.PickupCell, &b.DestinationCell,
		&b.TierID, &b.DistanceKm, &b.Fare.Amount, &b.Fare.Currency, &quoteID,
		&b.CreatedAt, &cancelledAt,
	)
	if err != nil {
		return nil, err
	}
	if quoteID.Valid {
		b.QuoteID = &quoteID.String
	}
	b.CancelledAt = toTimePtr(cancelledAt)
	return &b, nil
}

func toTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
