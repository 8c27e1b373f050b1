package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/nhl-due-tracker/internal/app"
	"github.com/riskibarqy/nhl-due-tracker/internal/config"
	"github.com/riskibarqy/nhl-due-tracker/internal/platform/logging"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run prints the report on stdout, or a single "Error: ..." line and returns 1.
func run(ctx context.Context, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat, stderr)
	logging.SetDefault(logger)
	defer func() { _ = logger.Sync() }()

	application, err := app.New(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := application.Close(shutdownCtx); err != nil {
			logger.Warn("shutdown failed", "error", err)
		}
	}()

	if err := application.Run(ctx, stdout); err != nil {
		logger.ErrorContext(ctx, "due evaluation failed", "error", err)
		fmt.Fprintf(stdout, "Error: %v\n", err)
		return 1
	}
	return 0
}
