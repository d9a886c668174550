package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/felixgeelhaar/roster-engine/adapter/cli"
	_ "github.com/felixgeelhaar/roster-engine/adapter/cli/roster"
	"github.com/felixgeelhaar/roster-engine/pkg/config"
	"github.com/felixgeelhaar/roster-engine/pkg/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		cfg = &config.Config{AppEnv: "development", LogLevel: "info"}
	}

	logConfig := observability.DefaultLogConfig()
	logConfig.Level = observability.LogLevel(cfg.LogLevel)
	if cfg.IsProduction() {
		logConfig = observability.ProductionLogConfig()
		logConfig.Level = observability.LogLevel(cfg.LogLevel)
	}
	logger := observability.NewLogger(logConfig)
	cli.SetLogger(logger)
	cli.SetApp(&cli.App{})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		logger.Info("shutdown signal received")
		cancel()
	}()

	cli.ExecuteContext(ctx)
}
