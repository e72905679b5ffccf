package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"TrendEngine/internal/config"
	"TrendEngine/internal/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	logger := logging.New(cfg.Logging.Level)

	if err := newRootCmd(cfg, logger).ExecuteContext(ctx); err != nil {
		logger.Error("trendengine stopped", "error", err)
		os.Exit(1)
	}
}
