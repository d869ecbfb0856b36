package aiusage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles ai_usage persistence.
type Store struct {
	db *pgxpool.Pool
}

// NewStore returns a Store backed by the given connection pool.
func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// UseToken atomically checks the quota for month (YYYY-MM) and deducts one token.
// The counter resets to DefaultTokens when last_reset_month is behind month.
// Returns ErrInsufficientTokens when 0 rows are updated (quota exhausted or user absent).
func (s *Store) UseToken(ctx context.Context, uid, month string) error {
	tag, err := s.db.Exec(ctx, `
		UPDATE ai_usage SET
			tokens_remaining = CASE WHEN last_reset_month != $1 THEN $2 - 1 ELSE tokens_remaining - 1 END,
			last_reset_month = $1
		WHERE uid = $3 AND (last_reset_month < $1 OR tokens_remaining > 0)
	`, month, DefaultTokens, uid)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrInsufficientTokens
	}
	return nil
}

// EnsureUser inserts a new ai_usage row for uid with the default allowance.
// An existing row is left untouched.
func (s *Store) EnsureUser(ctx context.Context, uid, month string) error {
	_, err := s.db.Exec(ctx, `
		INSERT INTO ai_usage (uid, tokens_remaining, last_reset_month)
		VALUES ($1, $2, $3)
		ON CONFLICT (uid) DO NOTHING
	`, uid, DefaultTokens, month)
	return err
}

// Get returns the stored row; ok is false when the user has never chatted.
func (s *Store) Get(ctx context.Context, uid string) (Usage, bool, error) {
	var u Usage
	err := s.db.QueryRow(ctx, `
		SELECT uid, tokens_remaining, last_reset_month FROM ai_usage WHERE uid = $1
	`, uid).Scan(&u.UID, &u.TokensRemaining, &u.Month)
	if errors.Is(err, pgx.ErrNoRows) {
		return Usage{}, false, nil
	}
	if err != nil {
		return Usage{}, false, err
	}
	return u, true, nil
}
