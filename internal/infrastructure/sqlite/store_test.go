package sqlite_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"currency-service/internal/application"
	"currency-service/internal/domain"
	"currency-service/internal/infrastructure/sqlite"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

func TestStore_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "rates.db")
	store, err := sqlite.Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	_, err = store.Get(ctx, "USD", "RON", domain.ProviderExchangeRateAPI)
	require.ErrorIs(t, err, application.ErrNotFound)

	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	require.NoError(t, store.Upsert(ctx, domain.NewExchangeRate("USD", "RON", 4.6, domain.ProviderExchangeRateAPI, at, time.Hour)))
	require.NoError(t, store.Upsert(ctx, domain.NewExchangeRate("USD", "RON", 4.7, domain.ProviderExchangeRateAPI, at.Add(time.Minute), time.Hour)))

	got, err := store.Get(ctx, "USD", "RON", domain.ProviderExchangeRateAPI)
	require.NoError(t, err)
	require.Equal(t, 4.7, got.Rate)
	require.Equal(t, domain.ProviderExchangeRateAPI, got.Provider)
	require.True(t, got.FetchedAt.Equal(at.Add(time.Minute)))
	require.True(t, got.ExpiresAt.Equal(at.Add(time.Minute+time.Hour)))
	require.NoError(t, store.Ping(ctx))
}

func TestStore_ReopenKeepsRowsAndSkipsMigrations(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "rates.db")
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	store, err := sqlite.Open(ctx, path, nil)
	require.NoError(t, err)
	require.NoError(t, store.Upsert(ctx, domain.NewExchangeRate("EUR", "GBP", 0.86, domain.ProviderExchangeRateAPI, at, time.Hour)))
	require.NoError(t, store.Close())

	store, err = sqlite.Open(ctx, path, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	got, err := store.Get(ctx, "EUR", "GBP", domain.ProviderExchangeRateAPI)
	require.NoError(t, err)
	require.Equal(t, 0.86, got.Rate)
}

func TestStore_QueryErrorIsWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	boom := errors.New("disk I/O error")
	mock.ExpectQuery("FROM exchange_rates").
		WithArgs("USD", "EUR", "mock").
		WillReturnError(boom)

	_, err = sqlite.NewStore(db, nil).Get(context.Background(), "USD", "EUR", "mock")
	require.ErrorIs(t, err, boom)
	require.NotErrorIs(t, err, application.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_NoRowsIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM exchange_rates").
		WillReturnRows(sqlmock.NewRows([]string{"from_currency", "to_currency", "rate", "provider", "fetched_at_ms", "expires_at_ms"}))

	_, err = sqlite.NewStore(db, nil).Get(context.Background(), "USD", "EUR", "mock")
	require.ErrorIs(t, err, application.ErrNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_UpsertErrorIsReturned(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	at := time.UnixMilli(1714557600000).UTC()
	mock.ExpectExec("INSERT INTO exchange_rates").
		WithArgs("USD", "EUR", "exchangerate-api", 0.9, at.UnixMilli(), at.Add(time.Hour).UnixMilli()).
		WillReturnError(errors.New("database is locked"))

	err = sqlite.NewStore(db, nil).Upsert(context.Background(),
		domain.NewExchangeRate("USD", "EUR", 0.9, domain.ProviderExchangeRateAPI, at, time.Hour))
	require.ErrorContains(t, err, "database is locked")
	require.NoError(t, mock.ExpectationsWereMet())
}
