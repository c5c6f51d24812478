package worker

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"currency-service/internal/application"
	"currency-service/internal/domain"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Refresher forces a live fetch and cache write for one pair.
type Refresher interface {
	Refresh(ctx context.Context, from, to string) (domain.ExchangeRate, error)
}

var _ application.Worker = (*Warmer)(nil)

// Warmer keeps the rate cache populated for every supported pair.
type Warmer struct {
	Svc         Refresher
	Interval    time.Duration
	Concurrency int
	Log         *zap.Logger
}

// TickResult summarizes one warm pass.
type TickResult struct {
	Refreshed     int
	Failed        int
	NotConfigured bool
}

func (w *Warmer) Start(ctx context.Context) {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	if w.Interval <= 0 {
		w.Interval = 30 * time.Minute
	}

	log.Info("warmer_started", zap.Duration("interval", w.Interval), zap.Int("concurrency", w.Concurrency))
	w.logTick(log, w.RunOnce(ctx))

	t := time.NewTicker(w.Interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("warmer_stopped")
			return
		case <-t.C:
			w.logTick(log, w.RunOnce(ctx))
		}
	}
}

// RunOnce refreshes all supported pairs with bounded concurrency. Per-pair failures
// are logged and counted, never propagated.
func (w *Warmer) RunOnce(ctx context.Context) TickResult {
	log := w.Log
	if log == nil {
		log = zap.NewNop()
	}
	limit := w.Concurrency
	if limit <= 0 {
		limit = 1
	}

	var ok, failed, unconfigured atomic.Int64
	pairs := domain.SupportedPairs()
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, p := range pairs {
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			_, err := w.Svc.Refresh(gctx, p.From, p.To)
			switch {
			case err == nil:
				ok.Add(1)
			case errors.Is(err, application.ErrProviderNotConfigured):
				unconfigured.Add(1)
			default:
				failed.Add(1)
				log.Warn("warmer.refresh_failed", zap.String("pair", p.String()), zap.Error(err))
			}
			return nil
		})
	}
	_ = g.Wait()

	return TickResult{
		Refreshed:     int(ok.Load()),
		Failed:        int(failed.Load()),
		NotConfigured: unconfigured.Load() > 0,
	}
}

func (w *Warmer) logTick(log *zap.Logger, res TickResult) {
	if res.NotConfigured {
		log.Warn("warmer.skipped", zap.String("reason", "no api key configured"))
		return
	}
	log.Info("warmer.tick_done", zap.Int("refreshed", res.Refreshed), zap.Int("failed", res.Failed))
}
