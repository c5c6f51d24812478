package application

import (
	"context"

	"currency-service/internal/domain"
)

// NoopRateCache never holds anything; used when no cache backend is configured.
type NoopRateCache struct{}

var _ RateCache = NoopRateCache{}

func (NoopRateCache) Get(context.Context, string, string, string) (domain.ExchangeRate, error) {
	return domain.ExchangeRate{}, ErrNotFound
}

func (NoopRateCache) Upsert(context.Context, domain.ExchangeRate) error { return nil }
