package application

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"currency-service/internal/domain"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultRateTTL      = time.Hour
	DefaultFetchTimeout = 5 * time.Second
)

// RateOutcome is a resolved rate together with the path that produced it.
type RateOutcome struct {
	Rate   float64
	Source domain.RateSource
	At     time.Time
}

// ExchangeRateService resolves rates cache-first, then live, then from the static table.
// Rate resolution never fails; I/O errors degrade the answer and are logged.
type ExchangeRateService struct {
	cache        RateCache
	fetcher      RateFetcher
	clock        Clock
	log          *zap.Logger
	ttl          time.Duration
	fetchTimeout time.Duration
	enrich       LogEnricher
}

// LogEnricher derives a request-scoped logger, typically adding correlation ids from ctx.
type LogEnricher func(ctx context.Context, l *zap.Logger) *zap.Logger

type Option func(*ExchangeRateService)

func WithClock(c Clock) Option { return func(s *ExchangeRateService) { s.clock = c } }
func WithLogger(l *zap.Logger) Option { return func(s *ExchangeRateService) { s.log = l } }
func WithTTL(d time.Duration) Option { return func(s *ExchangeRateService) { s.ttl = d } }
func WithFetchTimeout(d time.Duration) Option {
	return func(s *ExchangeRateService) { s.fetchTimeout = d }
}
func WithLogEnricher(fn LogEnricher) Option {
	return func(s *ExchangeRateService) { s.enrich = fn }
}

// NewExchangeRateService wires the service. A nil cache disables caching; a nil fetcher
// means mock mode (static table only).
func NewExchangeRateService(cache RateCache, fetcher RateFetcher, opts ...Option) *ExchangeRateService {
	s := &ExchangeRateService{
		cache:   cache,
		fetcher: fetcher,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.cache == nil {
		s.cache = NoopRateCache{}
	}
	if s.clock == nil {
		s.clock = realClock{}
	}
	if s.log == nil {
		s.log = zap.NewNop()
	}
	if s.enrich == nil {
		s.enrich = func(_ context.Context, l *zap.Logger) *zap.Logger { return l }
	}
	if s.ttl <= 0 {
		s.ttl = DefaultRateTTL
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = DefaultFetchTimeout
	}
	return s
}

// Provider is the tag rows are cached under: the live provider when a key is configured, mock otherwise.
func (s *ExchangeRateService) Provider() string {
	if s.liveConfigured() {
		return s.fetcher.Provider()
	}
	return domain.ProviderMock
}

func (s *ExchangeRateService) liveConfigured() bool {
	return s.fetcher != nil && s.fetcher.Configured()
}

// GetExchangeRate returns the multiplier from -> to.
func (s *ExchangeRateService) GetExchangeRate(ctx context.Context, from, to string) float64 {
	return s.Resolve(ctx, from, to).Rate
}

func (s *ExchangeRateService) Resolve(ctx context.Context, from, to string) RateOutcome {
	if from == to {
		return RateOutcome{Rate: 1, Source: domain.RateSourceIdentity, At: s.clock.Now()}
	}

	provider := s.Provider()
	log := s.enrich(ctx, s.log).With(
		zap.String("from", from),
		zap.String("to", to),
		zap.String("provider", provider),
	)

	cached, err := s.cache.Get(ctx, from, to, provider)
	switch {
	case err == nil && cached.FreshAt(s.clock.Now()):
		log.Debug("rate.cache_hit", zap.Time("expires_at", cached.ExpiresAt))
		return RateOutcome{Rate: cached.Rate, Source: domain.RateSourceCache, At: cached.FetchedAt}
	case err == nil:
		log.Debug("rate.cache_stale", zap.Time("expires_at", cached.ExpiresAt))
	case errors.Is(err, ErrNotFound):
		log.Debug("rate.cache_miss")
	default:
		log.Warn("rate.cache_read_failed", zap.Error(err))
	}

	rec, err := s.fetchAndStore(ctx, from, to, log)
	if err == nil {
		return RateOutcome{Rate: rec.Rate, Source: domain.RateSourceLive, At: rec.FetchedAt}
	}

	rate := domain.FallbackRate(from, to)
	if errors.Is(err, ErrProviderNotConfigured) {
		log.Debug("rate.fallback", zap.Float64("rate", rate))
	} else {
		log.Warn("rate.fallback", zap.Float64("rate", rate), zap.Error(err))
	}
	return RateOutcome{Rate: rate, Source: domain.RateSourceFallback, At: s.clock.Now()}
}

// Refresh forces a live fetch and cache write for the pair. Unlike Resolve it reports failures.
func (s *ExchangeRateService) Refresh(ctx context.Context, from, to string) (domain.ExchangeRate, error) {
	if from == to {
		return domain.ExchangeRate{}, fmt.Errorf("%w: identical currencies %s", ErrBadRequest, from)
	}
	log := s.enrich(ctx, s.log).With(zap.String("from", from), zap.String("to", to), zap.String("provider", s.Provider()))
	rec, err := s.fetchAndStore(ctx, from, to, log)
	if err != nil {
		return domain.ExchangeRate{}, err
	}
	return rec, nil
}

// fetchAndStore performs one live fetch and writes it through. Cache write failures are
// logged but do not fail the fetch.
func (s *ExchangeRateService) fetchAndStore(ctx context.Context, from, to string, log *zap.Logger) (domain.ExchangeRate, error) {
	if !s.liveConfigured() {
		return domain.ExchangeRate{}, ErrProviderNotConfigured
	}

	fctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()
	rate, err := s.fetcher.Fetch(fctx, from, to)
	if err != nil {
		return domain.ExchangeRate{}, fmt.Errorf("fetch %s/%s: %w", from, to, err)
	}
	if rate <= 0 || math.IsNaN(rate) || math.IsInf(rate, 0) {
		return domain.ExchangeRate{}, fmt.Errorf("%w: %v for %s/%s", ErrInvalidRate, rate, from, to)
	}

	rec := domain.NewExchangeRate(from, to, rate, s.fetcher.Provider(), s.clock.Now(), s.ttl)
	if err := s.cache.Upsert(ctx, rec); err != nil {
		log.Warn("rate.cache_write_failed", zap.Error(err))
	} else {
		log.Info("rate.refreshed", zap.String("pair", rec.Pair().String()), zap.Float64("rate", rate), zap.Time("expires_at", rec.ExpiresAt))
	}
	return rec, nil
}

// ConvertCurrency converts amount using the resolved rate, rounded to cents.
// Provider reports the configured provider, Source the path actually taken.
func (s *ExchangeRateService) ConvertCurrency(ctx context.Context, amount float64, from, to string) domain.Conversion {
	out := s.Resolve(ctx, from, to)
	converted := amount
	if out.Source != domain.RateSourceIdentity {
		converted = roundCents(amount, out.Rate)
	}
	return domain.Conversion{
		OriginalAmount:    amount,
		OriginalCurrency:  from,
		ConvertedAmount:   converted,
		ConvertedCurrency: to,
		ExchangeRate:      out.Rate,
		Provider:          s.Provider(),
		Source:            out.Source,
		Timestamp:         s.clock.Now(),
	}
}

func roundCents(amount, rate float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Mul(decimal.NewFromFloat(rate)).Round(2).Float64()
	return v
}

func (s *ExchangeRateService) GetSupportedCurrencies() []string {
	return domain.SupportedCodes()
}

func (s *ExchangeRateService) HealthCheck() domain.Health {
	return domain.Health{
		Status:   "ok",
		Provider: s.Provider(),
		APIKey:   s.liveConfigured(),
	}
}
