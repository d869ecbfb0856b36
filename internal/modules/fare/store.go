// README: Quote lock store backed by Redis; keeps priced quotes until they expire.
package fare

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const quoteKeyPrefix = "fare:quote:%s"

type Store struct {
	redis *redis.Client
}

func NewStore(redis *redis.Client) *Store {
	return &Store{redis: redis}
}

// Save stores q under its ID until ttl elapses.
func (s *Store) Save(ctx context.Context, q Quote, ttl time.Duration) error {
	if q.ID == "" {
		return errors.New("fare: quote id required")
	}
	b, err := json.Marshal(q)
	if err != nil {
		return fmt.Errorf("fare: marshal quote: %w", err)
	}
	return s.redis.Set(ctx, quoteKey(q.ID), b, ttl).Err()
}

// Get returns the locked quote, or ErrQuoteNotFound once it has expired.
func (s *Store) Get(ctx context.Context, id string) (Quote, error) {
	val, err := s.redis.Get(ctx, quoteKey(id)).Bytes()
	if err == redis.Nil {
		return Quote{}, ErrQuoteNotFound
	}
	if err != nil {
		return Quote{}, err
	}
	var q Quote
	if err := json.Unmarshal(val, &q); err != nil {
		return Quote{}, fmt.Errorf("fare: unmarshal quote %s: %w", id, err)
	}
	return q, nil
}

// Delete releases a quote once a booking has consumed it.
func (s *Store) Delete(ctx context.Context, id string) error {
	return s.redis.Del(ctx, quoteKey(id)).Err()
}

func quoteKey(id string) string {
	return fmt.Sprintf(quoteKeyPrefix, id)
}
