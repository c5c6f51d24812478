//go:build wireinject

package bootstrap

import (
	"context"
	"net/http"

	"currency-service/internal/application"
	"currency-service/internal/config"
	httpserver "currency-service/internal/infrastructure/http"

	"github.com/google/wire"
)

var coreSet = wire.NewSet(
	ProvideLogger,
	ProvideCacheBackend,
	ProvideRateCache,
	ProvideRateFetcher,
	ProvideExchangeRateService,
)

// API injector: builds the HTTP handler + Cleanup
func InitAPI(ctx context.Context, cfg config.Config) (http.Handler, func(), error) {
	wire.Build(
		coreSet,
		ProvideReadyCheck,
		ProvideRateLimiter,
		httpserver.NewServer,
		httpserver.NewRouter,
	)
	return nil, nil, nil
}

// Warmer injector: builds application.Worker + Cleanup
func InitWarmer(ctx context.Context, cfg config.Config) (application.Worker, func(), error) {
	wire.Build(
		coreSet,
		ProvideWarmer,
	)
	return nil, nil, nil
}
