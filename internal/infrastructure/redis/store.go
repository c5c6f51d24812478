package redisstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"currency-service/internal/application"
	"currency-service/internal/domain"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "fxrates:rate:"

// Store keeps one JSON record per (from, to, provider). TTL is key retention only;
// freshness is still decided by the record's ExpiresAt.
type Store struct {
	Client *redis.Client
	TTL    time.Duration
}

var _ application.RateCache = (*Store)(nil)

func New(client *redis.Client, ttl time.Duration) *Store {
	return &Store{Client: client, TTL: ttl}
}

type record struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Rate      float64   `json:"rate"`
	Provider  string    `json:"provider"`
	FetchedAt time.Time `json:"fetched_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

func Key(from, to, provider string) string {
	return keyPrefix + from + ":" + to + ":" + provider
}

func (s *Store) Get(ctx context.Context, from, to, provider string) (domain.ExchangeRate, error) {
	raw, err := s.Client.Get(ctx, Key(from, to, provider)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.ExchangeRate{}, application.ErrNotFound
	}
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("redis get %s/%s: %w", from, to, err)
	}
	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("decode rate %s/%s: %w", from, to, err)
	}
	return domain.ExchangeRate{
		From:      rec.From,
		To:        rec.To,
		Rate:      rec.Rate,
		Provider:  rec.Provider,
		FetchedAt: rec.FetchedAt.UTC(),
		ExpiresAt: rec.ExpiresAt.UTC(),
	}, nil
}

func (s *Store) Upsert(ctx context.Context, r domain.ExchangeRate) error {
	raw, err := json.Marshal(record{
		From:      r.From,
		To:        r.To,
		Rate:      r.Rate,
		Provider:  r.Provider,
		FetchedAt: r.FetchedAt,
		ExpiresAt: r.ExpiresAt,
	})
	if err != nil {
		return fmt.Errorf("encode rate: %w", err)
	}
	if err := s.Client.Set(ctx, Key(r.From, r.To, r.Provider), raw, s.TTL).Err(); err != nil {
		return fmt.Errorf("redis set %s/%s: %w", r.From, r.To, err)
	}
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.Client.Ping(ctx).Err() }
