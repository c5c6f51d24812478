package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("EXCHANGE_API_KEY", "")
	t.Setenv("CACHE_BACKEND", "")
	t.Setenv("FETCH_TIMEOUT_MS", "")
	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, CacheBackendPG, cfg.CacheBackend)
	require.Equal(t, 5*time.Second, cfg.FetchTimeout)
	require.Equal(t, time.Hour, cfg.CacheTTL)
	require.Equal(t, 0, cfg.FetchRetries)
	require.False(t, cfg.LiveProvider())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("EXCHANGE_API_KEY", "secret")
	t.Setenv("CACHE_BACKEND", "redis")
	t.Setenv("FETCH_TIMEOUT_MS", "1500")
	t.Setenv("CACHE_TTL_MS", "60000")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("RATE_LIMIT", "10-S")
	cfg := Load()
	require.True(t, cfg.LiveProvider())
	require.Equal(t, CacheBackendRedis, cfg.CacheBackend)
	require.Equal(t, 1500*time.Millisecond, cfg.FetchTimeout)
	require.Equal(t, time.Minute, cfg.CacheTTL)
	require.Equal(t, 3, cfg.RedisDB)
	require.Equal(t, "10-S", cfg.RateLimit)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	t.Setenv("FETCH_TIMEOUT_MS", "-5")
	t.Setenv("FETCH_RETRIES", "-1")
	t.Setenv("WARMER_CONCURRENCY", "0")
	cfg := Load()
	require.Equal(t, 5*time.Second, cfg.FetchTimeout)
	require.Equal(t, 0, cfg.FetchRetries)
	require.Equal(t, 4, cfg.WarmerConcurrency)
}
