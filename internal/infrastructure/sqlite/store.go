// Package sqlite is a file-backed rate cache for deployments without Postgres.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"currency-service/internal/application"
	"currency-service/internal/domain"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

type Store struct {
	db  *sql.DB
	log *zap.Logger
}

var _ application.RateCache = (*Store)(nil)

// Open creates the parent directory, migrates the schema and returns a ready store.
func Open(ctx context.Context, path string, log *zap.Logger) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	db, err := sql.Open(driverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// modernc serializes writers anyway; a single conn avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := RunMigrations(path); err != nil {
		db.Close()
		return nil, err
	}
	return NewStore(db, log), nil
}

func NewStore(db *sql.DB, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{db: db, log: log}
}

func (s *Store) Get(ctx context.Context, from, to, provider string) (domain.ExchangeRate, error) {
	const q = `
        SELECT from_currency, to_currency, rate, provider, fetched_at_ms, expires_at_ms
        FROM exchange_rates
        WHERE from_currency = ? AND to_currency = ? AND provider = ?`
	var (
		out              domain.ExchangeRate
		fetchedMs, expMs int64
	)
	err := s.db.QueryRowContext(ctx, q, from, to, provider).
		Scan(&out.From, &out.To, &out.Rate, &out.Provider, &fetchedMs, &expMs)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.ExchangeRate{}, application.ErrNotFound
	}
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("select rate %s/%s: %w", from, to, err)
	}
	out.FetchedAt = time.UnixMilli(fetchedMs).UTC()
	out.ExpiresAt = time.UnixMilli(expMs).UTC()
	return out, nil
}

func (s *Store) Upsert(ctx context.Context, rec domain.ExchangeRate) error {
	const up = `
        INSERT INTO exchange_rates(from_currency, to_currency, provider, rate, fetched_at_ms, expires_at_ms)
        VALUES (?, ?, ?, ?, ?, ?)
        ON CONFLICT (from_currency, to_currency, provider) DO UPDATE
          SET rate = excluded.rate, fetched_at_ms = excluded.fetched_at_ms, expires_at_ms = excluded.expires_at_ms`
	_, err := s.db.ExecContext(ctx, up,
		rec.From, rec.To, rec.Provider, rec.Rate, rec.FetchedAt.UnixMilli(), rec.ExpiresAt.UnixMilli())
	if err != nil {
		return fmt.Errorf("upsert rate %s/%s: %w", rec.From, rec.To, err)
	}
	s.log.Debug("sql.exec_ok", zap.String("stmt", "upsert_exchange_rate"))
	return nil
}

func (s *Store) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
