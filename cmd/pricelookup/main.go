package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/bher20/pricelookup/internal/config"
	"github.com/bher20/pricelookup/internal/logging"
	"github.com/bher20/pricelookup/internal/prices"
	"github.com/bher20/pricelookup/internal/storage"
)

// cfg starts from the environment; persistent flags override it.
var cfg = config.FromEnv()

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pricelookup",
		Short:         "Upload grade price sheets and look up tier prices",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVar(&cfg.DBDriver, "db-driver", cfg.DBDriver, "Storage driver: sqlite, postgres, postgrespool or memory")
	root.PersistentFlags().StringVar(&cfg.DBDSN, "db-dsn", cfg.DBDSN, "Storage DSN (file path for sqlite)")
	root.PersistentFlags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	root.PersistentFlags().StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format: json or console")

	root.AddCommand(newServeCmd())
	root.AddCommand(newImportCmd())
	root.AddCommand(newSeedCmd())
	root.AddCommand(newGradesCmd())
	root.AddCommand(newPricesCmd())
	return root
}

// app holds what every subcommand needs.
type app struct {
	log   *zap.Logger
	store storage.Storage
	svc   *prices.Service
}

func openApp(ctx context.Context) (*app, error) {
	log, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	st, err := storage.Open(ctx, storage.Config{Driver: cfg.DBDriver, DSN: cfg.DBDSN, Logger: log})
	if err != nil {
		_ = log.Sync()
		return nil, fmt.Errorf("open storage: %w", err)
	}
	return &app{log: log, store: st, svc: prices.NewService(st, log)}, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("close storage", zap.Error(err))
	}
	_ = a.log.Sync()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		stop()
		os.Exit(1)
	}
}
