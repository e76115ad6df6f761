package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/homewifi/internal/core/config"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/aevon-lab/homewifi/internal/core/storage/memory"
	"github.com/aevon-lab/homewifi/internal/core/storage/postgres"
	"github.com/aevon-lab/homewifi/internal/ingestion"
	"github.com/aevon-lab/homewifi/internal/metrics"
	"github.com/aevon-lab/homewifi/internal/migrations"
	"github.com/aevon-lab/homewifi/internal/projection"
	"github.com/aevon-lab/homewifi/internal/server"
)

func main() {
	configPath := flag.String("config", "homewifi.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger (level is raised once the config is loaded)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	// 1. Load Configuration
	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))
	slog.Info("Loaded config",
		"addr", cfg.Server.Addr(),
		"database", cfg.Database.Type,
		"metrics", cfg.Metrics.Enabled)

	// 2. Initialize Storage
	store, closeStore, err := openStore(cfg.Database)
	if err != nil {
		slog.Error("Failed to initialize event store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	// 3. Initialize Metrics
	var opts []server.Option
	if cfg.Metrics.Enabled {
		m := metrics.New()
		store = m.InstrumentStore(store)
		opts = append(opts, server.WithMiddleware(m.Instrument()), server.WithMetricsHandler(m.Handler()))
	}

	// 4. Initialize Ingestion (write side) and Projection (read side)
	ingestionSvc := ingestion.NewService(store, cfg.Server.MaxBodySizeMB)
	projectionSvc := projection.NewService(store)

	// 5. Initialize Server
	srv := server.New(cfg.Server.Addr(), store, cfg.Server.Mode, opts...)
	ingestionSvc.RegisterRoutes(srv.Engine)
	projectionSvc.RegisterRoutes(srv.Engine)

	// 6. Start Services
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// HTTP server blocks until a signal cancels ctx.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}

// openStore builds the configured event store. The returned func releases it.
func openStore(cfg corecfg.DatabaseConfig) (storage.EventStore, func(), error) {
	switch cfg.Type {
	case "memory":
		slog.Warn("Using in-memory event store; events are lost on restart")
		return memory.NewStore(), func() {}, nil

	case "postgres":
		db, err := postgres.Open(cfg.DSN, cfg.MaxOpenConns, cfg.MaxIdleConns)
		if err != nil {
			return nil, nil, err
		}

		if err := migrations.RunMigrations(db, cfg.AutoMigrate); err != nil {
			db.Close()
			return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
		}

		adapter, err := postgres.NewAdapter(db)
		if err != nil {
			db.Close()
			return nil, nil, err
		}
		return adapter, func() {
			if err := adapter.Close(); err != nil {
				slog.Error("Failed to close event store", "error", err)
			}
		}, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database type %q", cfg.Type)
	}
}
