package config

import (
	"time"

	infraconfig "currency-service/internal/infrastructure/config"

	"github.com/spf13/viper"
)

const (
	CacheBackendPG     = "pg"
	CacheBackendSQLite = "sqlite"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

type Config struct {
	// Common
	Env             string
	LogLevel        string
	ShutdownTimeout time.Duration
	// API
	Port      string
	RateLimit string
	// Cache store
	CacheBackend   string
	CacheTTL       time.Duration
	DatabaseURL    string
	SQLitePath     string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int
	RedisRetention time.Duration
	// Provider
	ExchangeAPIBase string
	ExchangeAPIKey  string
	FetchTimeout    time.Duration
	FetchRetries    int
	// Warmer
	WarmerInterval    time.Duration
	WarmerConcurrency int
}

func ms(v *viper.Viper, key string) time.Duration {
	return time.Duration(v.GetInt64(key)) * time.Millisecond
}

// Load reads environment variables and applies defaults.
func Load() Config {
	v := viper.New()
	v.SetDefault("ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SHUTDOWN_TIMEOUT_MS", infraconfig.DefaultShutdownTimeout.Milliseconds())
	v.SetDefault("PORT", infraconfig.DefaultHTTPPort)
	v.SetDefault("RATE_LIMIT", infraconfig.DefaultRateLimit)
	v.SetDefault("CACHE_BACKEND", CacheBackendPG)
	v.SetDefault("CACHE_TTL_MS", infraconfig.DefaultCacheTTL.Milliseconds())
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("SQLITE_PATH", infraconfig.DefaultSQLitePath)
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_RETENTION_MS", 0)
	v.SetDefault("EXCHANGE_API_BASE", "https://v6.exchangerate-api.com")
	v.SetDefault("EXCHANGE_API_KEY", "")
	v.SetDefault("FETCH_TIMEOUT_MS", infraconfig.DefaultFetchTimeout.Milliseconds())
	v.SetDefault("FETCH_RETRIES", 0)
	v.SetDefault("WARMER_INTERVAL_MS", infraconfig.DefaultWarmerInterval.Milliseconds())
	v.SetDefault("WARMER_CONCURRENCY", infraconfig.DefaultWarmerConcurrency)
	v.AutomaticEnv()

	cfg := Config{
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		ShutdownTimeout:   ms(v, "SHUTDOWN_TIMEOUT_MS"),
		Port:              v.GetString("PORT"),
		RateLimit:         v.GetString("RATE_LIMIT"),
		CacheBackend:      v.GetString("CACHE_BACKEND"),
		CacheTTL:          ms(v, "CACHE_TTL_MS"),
		DatabaseURL:       v.GetString("DATABASE_URL"),
		SQLitePath:        v.GetString("SQLITE_PATH"),
		RedisAddr:         v.GetString("REDIS_ADDR"),
		RedisPassword:     v.GetString("REDIS_PASSWORD"),
		RedisDB:           v.GetInt("REDIS_DB"),
		RedisRetention:    ms(v, "REDIS_RETENTION_MS"),
		ExchangeAPIBase:   v.GetString("EXCHANGE_API_BASE"),
		ExchangeAPIKey:    v.GetString("EXCHANGE_API_KEY"),
		FetchTimeout:      ms(v, "FETCH_TIMEOUT_MS"),
		FetchRetries:      v.GetInt("FETCH_RETRIES"),
		WarmerInterval:    ms(v, "WARMER_INTERVAL_MS"),
		WarmerConcurrency: v.GetInt("WARMER_CONCURRENCY"),
	}
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = infraconfig.DefaultFetchTimeout
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = infraconfig.DefaultCacheTTL
	}
	if cfg.FetchRetries < 0 {
		cfg.FetchRetries = 0
	}
	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = infraconfig.DefaultShutdownTimeout
	}
	if cfg.WarmerInterval <= 0 {
		cfg.WarmerInterval = infraconfig.DefaultWarmerInterval
	}
	if cfg.WarmerConcurrency <= 0 {
		cfg.WarmerConcurrency = infraconfig.DefaultWarmerConcurrency
	}
	return cfg
}

// LiveProvider reports whether an exchange-rate API key is present.
func (c Config) LiveProvider() bool { return c.ExchangeAPIKey != "" }
