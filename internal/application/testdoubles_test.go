package application

import (
	"context"
	"errors"
	"sync"
	"time"

	"currency-service/internal/domain"
)

var (
	ErrRepo    = errors.New("repo error")
	ErrNetwork = errors.New("network down")
)

type fakeRateCache struct {
	mu      sync.Mutex
	store   map[string]domain.ExchangeRate
	getErr  error
	upErr   error
	gets    int
	upserts int
}

func cacheKey(from, to, provider string) string { return from + "/" + to + "/" + provider }

func (f *fakeRateCache) Get(_ context.Context, from, to, provider string) (domain.ExchangeRate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.gets++
	if f.getErr != nil {
		return domain.ExchangeRate{}, f.getErr
	}
	r, ok := f.store[cacheKey(from, to, provider)]
	if !ok {
		return domain.ExchangeRate{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRateCache) Upsert(_ context.Context, r domain.ExchangeRate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if f.upErr != nil {
		return f.upErr
	}
	if f.store == nil {
		f.store = map[string]domain.ExchangeRate{}
	}
	f.store[cacheKey(r.From, r.To, r.Provider)] = r
	return nil
}

type fakeFetcher struct {
	mu         sync.Mutex
	rate       float64
	err        error
	configured bool
	calls      int
	block      bool
}

func (f *fakeFetcher) Fetch(ctx context.Context, _, _ string) (float64, error) {
	f.mu.Lock()
	f.calls++
	rate, err, block := f.rate, f.err, f.block
	f.mu.Unlock()
	if block {
		<-ctx.Done()
		return 0, ctx.Err()
	}
	return rate, err
}

func (f *fakeFetcher) Provider() string { return domain.ProviderExchangeRateAPI }
func (f *fakeFetcher) Configured() bool { return f.configured }

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeClock struct{ t time.Time }

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }
