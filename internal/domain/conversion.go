package domain

import "time"

// RateSource names the path that produced a rate.
type RateSource string

const (
	RateSourceIdentity RateSource = "identity"
	RateSourceCache    RateSource = "cache"
	RateSourceLive     RateSource = "live"
	RateSourceFallback RateSource = "fallback"
)

type Conversion struct {
	OriginalAmount    float64
	OriginalCurrency  string
	ConvertedAmount   float64
	ConvertedCurrency string
	ExchangeRate      float64
	Provider          string
	Source            RateSource
	Timestamp         time.Time
}

type Health struct {
	Status   string
	Provider string
	APIKey   bool
}
