// Command localhistory inspects and maintains the local transaction history
// of wallet accounts.
//
// Configuration is read from LOCALHISTORY_* environment variables; see
// internal/config.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gabapcia/localhistory/internal/config"
	"github.com/gabapcia/localhistory/internal/handlers/cli"
	"github.com/gabapcia/localhistory/internal/historysync"
	"github.com/gabapcia/localhistory/internal/localhistory"
	"github.com/gabapcia/localhistory/internal/pkg/logger"
	"github.com/gabapcia/localhistory/internal/pkg/resilience/retry"
	"github.com/gabapcia/localhistory/internal/pkg/telemetry"
)

// Log file rotation limits used when LOCALHISTORY_LOG_FILE is set.
const (
	logFileMaxSizeMB  = 50
	logFileMaxBackups = 3
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "localhistory:", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if cfg.TelemetryEnabled {
		shutdown, err := telemetry.Init(ctx, cfg.ServiceName)
		if err != nil {
			return fmt.Errorf("init telemetry: %w", err)
		}
		defer func() { _ = shutdown(context.WithoutCancel(ctx)) }()
	}

	logOpts := []logger.Option{logger.WithLevel(cfg.LogLevel)}
	if cfg.LogFile != "" {
		logOpts = append(logOpts, logger.WithFile(cfg.LogFile, logFileMaxSizeMB, logFileMaxBackups))
	}
	if err := logger.Init(logOpts...); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	return cli.Run(ctx, func(ctx context.Context) (cli.Services, error) {
		return openServices(ctx, cfg)
	})
}

// openServices opens the configured storage and builds the services on top.
func openServices(ctx context.Context, cfg config.Config) (cli.Services, error) {
	store, err := openStorage(ctx, cfg)
	if err != nil {
		return cli.Services{}, err
	}

	history := localhistory.New(store)
	sync := historysync.New(history,
		retry.WithAttempts(cfg.Retry.Attempts),
		retry.WithDelay(cfg.Retry.Delay),
	)

	return cli.Services{
		History: history,
		Sync:    sync,
		Close: func() {
			sync.Close()
			if err := store.Close(); err != nil {
				logger.Error(ctx, "error closing storage", "error", err)
			}
		},
	}, nil
}
