package pg

import (
	"context"
	"errors"
	"fmt"

	"currency-service/internal/application"
	"currency-service/internal/domain"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

// RateCache persists exchange rates in the exchange_rates table.
type RateCache struct {
	db  *DB
	log *zap.Logger
}

var _ application.RateCache = (*RateCache)(nil)

func NewRateCache(db *DB, log *zap.Logger) *RateCache {
	if log == nil {
		log = zap.NewNop()
	}
	return &RateCache{db: db, log: log}
}

func (r *RateCache) Get(ctx context.Context, from, to, provider string) (domain.ExchangeRate, error) {
	const q = `
        SELECT from_currency, to_currency, rate, provider, fetched_at, expires_at
        FROM exchange_rates
        WHERE from_currency=$1 AND to_currency=$2 AND provider=$3`
	var out domain.ExchangeRate
	err := r.db.Pool.QueryRow(ctx, q, from, to, provider).
		Scan(&out.From, &out.To, &out.Rate, &out.Provider, &out.FetchedAt, &out.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ExchangeRate{}, application.ErrNotFound
	}
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("select rate %s/%s: %w", from, to, err)
	}
	out.FetchedAt, out.ExpiresAt = out.FetchedAt.UTC(), out.ExpiresAt.UTC()
	return out, nil
}

func (r *RateCache) Upsert(ctx context.Context, rec domain.ExchangeRate) error {
	const up = `
        INSERT INTO exchange_rates(from_currency, to_currency, provider, rate, fetched_at, expires_at)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (from_currency, to_currency, provider) DO UPDATE
          SET rate=EXCLUDED.rate, fetched_at=EXCLUDED.fetched_at, expires_at=EXCLUDED.expires_at`
	tag, err := r.db.Pool.Exec(ctx, up, rec.From, rec.To, rec.Provider, rec.Rate, rec.FetchedAt, rec.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert rate %s/%s: %w", rec.From, rec.To, err)
	}
	r.log.Debug("sql.exec_ok",
		zap.String("stmt", "upsert_exchange_rate"),
		zap.Int64("rows", tag.RowsAffected()),
	)
	return nil
}

func (r *RateCache) Ping(ctx context.Context) error { return r.db.Ping(ctx) }
