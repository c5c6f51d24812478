package domain

import "time"

const (
	ProviderExchangeRateAPI = "exchangerate-api"
	ProviderMock            = "mock"
)

// ExchangeRate is one cached rate row. Amount in From times Rate gives the amount in To.
type ExchangeRate struct {
	From      string
	To        string
	Rate      float64
	Provider  string
	FetchedAt time.Time
	ExpiresAt time.Time
}

// FreshAt reports whether the row may still be served at now. The expiry instant itself is fresh.
func (r ExchangeRate) FreshAt(now time.Time) bool {
	return !now.After(r.ExpiresAt)
}

func (r ExchangeRate) Pair() Pair { return Pair{From: r.From, To: r.To} }

// NewExchangeRate stamps a freshly fetched rate with its validity window.
func NewExchangeRate(from, to string, rate float64, provider string, fetchedAt time.Time, ttl time.Duration) ExchangeRate {
	return ExchangeRate{
		From:      from,
		To:        to,
		Rate:      rate,
		Provider:  provider,
		FetchedAt: fetchedAt,
		ExpiresAt: fetchedAt.Add(ttl),
	}
}
