package application

import (
	"context"

	"currency-service/internal/domain"
)

// RateCache stores the current rate per (from, to, provider). Get returns ErrNotFound on a miss.
type RateCache interface {
	Get(ctx context.Context, from, to, provider string) (domain.ExchangeRate, error)
	Upsert(ctx context.Context, r domain.ExchangeRate) error
}

// RateFetcher asks a live provider for a single directional rate.
type RateFetcher interface {
	Fetch(ctx context.Context, from, to string) (float64, error)
	Provider() string
	// Configured is false when the fetcher has no credentials; callers skip Fetch entirely.
	Configured() bool
}
