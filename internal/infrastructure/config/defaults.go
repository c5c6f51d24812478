package config

import "time"

const (
	DefaultHTTPPort          = "8080"
	DefaultShutdownTimeout   = 10 * time.Second
	DefaultFetchTimeout      = 5 * time.Second
	DefaultCacheTTL          = time.Hour
	DefaultRateLimit         = "120-M"
	DefaultWarmerInterval    = 30 * time.Minute
	DefaultWarmerConcurrency = 4
	DefaultSQLitePath        = "data/currency.db"
	DefaultPGMaxConns        = 5
	DefaultPGMinConns        = 1
)
