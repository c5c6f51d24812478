package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"currency-service/internal/application"
	"currency-service/internal/config"
	httpserver "currency-service/internal/infrastructure/http"
	"currency-service/internal/infrastructure/httpx"
	"currency-service/internal/infrastructure/logx"
	"currency-service/internal/infrastructure/pg"
	"currency-service/internal/infrastructure/provider"
	redisstore "currency-service/internal/infrastructure/redis"
	"currency-service/internal/infrastructure/sqlite"
	"currency-service/internal/infrastructure/worker"

	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
	"go.uber.org/zap"
)

var ErrUnknownCacheBackend = errors.New("unknown CACHE_BACKEND")

// CacheBackend is the selected rate store plus its readiness probe.
type CacheBackend struct {
	Cache application.RateCache
	Ping  httpserver.ReadyCheck
}

func ProvideLogger() *zap.Logger { return logx.L() }

func ProvideCacheBackend(ctx context.Context, log *zap.Logger, cfg config.Config) (CacheBackend, func(), error) {
	log = log.With(zap.String("cache_backend", cfg.CacheBackend))
	switch cfg.CacheBackend {
	case config.CacheBackendPG:
		if cfg.DatabaseURL == "" {
			log.Warn("cache.disabled", zap.String("reason", "DATABASE_URL not set"))
			return CacheBackend{Cache: application.NoopRateCache{}}, func() {}, nil
		}
		db, err := pg.Connect(ctx, cfg.DatabaseURL)
		if err != nil {
			return CacheBackend{}, func() {}, fmt.Errorf("connect pg: %w", err)
		}
		if err := pg.RunMigrations(ctx, db); err != nil {
			db.Close()
			return CacheBackend{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing pg")
			db.Close()
		}
		return CacheBackend{Cache: pg.NewRateCache(db, log), Ping: db.Ping}, cleanup, nil

	case config.CacheBackendSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLitePath, log)
		if err != nil {
			return CacheBackend{}, func() {}, err
		}
		cleanup := func() {
			log.Info("closing sqlite")
			_ = store.Close()
		}
		return CacheBackend{Cache: store, Ping: store.Ping}, cleanup, nil

	case config.CacheBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		// Unreachable redis degrades every lookup to a miss; it does not block startup.
		if err := client.Ping(ctx).Err(); err != nil {
			log.Warn("cache.unreachable", zap.String("addr", cfg.RedisAddr), zap.Error(err))
		}
		store := redisstore.New(client, cfg.RedisRetention)
		return CacheBackend{Cache: store, Ping: store.Ping}, func() { _ = client.Close() }, nil

	case config.CacheBackendNone, "":
		return CacheBackend{Cache: application.NoopRateCache{}}, func() {}, nil

	default:
		return CacheBackend{}, func() {}, fmt.Errorf("%w: %q", ErrUnknownCacheBackend, cfg.CacheBackend)
	}
}

func ProvideRateCache(b CacheBackend) application.RateCache { return b.Cache }

func ProvideReadyCheck(b CacheBackend) httpserver.ReadyCheck { return b.Ping }

func ProvideRateFetcher(log *zap.Logger, cfg config.Config) application.RateFetcher {
	if !cfg.LiveProvider() {
		log.Info("provider.mock_mode", zap.String("reason", "EXCHANGE_API_KEY not set"))
	}
	return &provider.ExchangeRateAPI{
		BaseURL: cfg.ExchangeAPIBase,
		APIKey:  cfg.ExchangeAPIKey,
		Client: &httpx.Client{
			HTTP:       &http.Client{Timeout: cfg.FetchTimeout},
			MaxRetries: uint64(cfg.FetchRetries),
			Log:        log,
		},
	}
}

func ProvideExchangeRateService(cache application.RateCache, fetcher application.RateFetcher, log *zap.Logger, cfg config.Config) *application.ExchangeRateService {
	return application.NewExchangeRateService(cache, fetcher,
		application.WithLogger(log),
		application.WithTTL(cfg.CacheTTL),
		application.WithFetchTimeout(cfg.FetchTimeout),
		application.WithLogEnricher(logx.Enrich),
	)
}

// ProvideRateLimiter returns nil when RATE_LIMIT is empty or "off".
func ProvideRateLimiter(cfg config.Config) (*limiter.Limiter, error) {
	raw := strings.TrimSpace(cfg.RateLimit)
	if raw == "" || strings.EqualFold(raw, "off") {
		return nil, nil
	}
	rate, err := limiter.NewRateFromFormatted(raw)
	if err != nil {
		return nil, fmt.Errorf("parse RATE_LIMIT %q: %w", raw, err)
	}
	return limiter.New(memory.NewStore(), rate), nil
}

func ProvideWarmer(svc *application.ExchangeRateService, log *zap.Logger, cfg config.Config) application.Worker {
	return &worker.Warmer{
		Svc:         svc,
		Interval:    cfg.WarmerInterval,
		Concurrency: cfg.WarmerConcurrency,
		Log:         log.With(zap.String("component", "warmer")),
	}
}
