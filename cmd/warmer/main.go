package main

import (
	"context"
	"os/signal"
	"syscall"

	"currency-service/internal/bootstrap"
	"currency-service/internal/config"
	"currency-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func init() { _ = godotenv.Load() }

func main() {
	log := logx.L()
	defer func() { _ = log.Sync() }()
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	w, cleanup, err := bootstrap.InitWarmer(ctx, cfg)
	if err != nil {
		log.Fatal("init warmer", zap.Error(err))
	}
	defer cleanup()
	if !cfg.LiveProvider() {
		log.Warn("EXCHANGE_API_KEY not set; warmer ticks will be skipped")
	}
	w.Start(ctx)
}
