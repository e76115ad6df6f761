package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	corecfg "github.com/aevon-lab/homewifi/internal/core/config"
	"github.com/aevon-lab/homewifi/internal/loadgen"
)

func main() {
	configPath := flag.String("config", "homewifi.yaml", "Path to configuration file")
	houses := flag.Int("houses", 0, "Number of houses to simulate (overrides loadgen.houses)")
	signals := flag.Int("signals", -1, "Signals per house (overrides loadgen.signals_per_house)")
	workers := flag.Int("workers", 0, "Houses simulated in parallel (overrides loadgen.workers)")
	seed := flag.Int64("seed", 0, "Random seed (overrides loadgen.seed, 0 keeps the configured value)")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	cfg, err := corecfg.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.Log.SlogLevel()})))

	lg := cfg.LoadGen
	opts := loadgen.Options{
		Houses:          lg.Houses,
		SignalsPerHouse: lg.SignalsPerHouse,
		Workers:         lg.Workers,
		Seed:            lg.Seed,
	}
	if *houses > 0 {
		opts.Houses = *houses
	}
	if *signals >= 0 {
		opts.SignalsPerHouse = *signals
	}
	if *workers > 0 {
		opts.Workers = *workers
	}
	if *seed != 0 {
		opts.Seed = *seed
	}

	templates, err := loadgen.LoadTemplates(lg.TemplatesPath)
	if err != nil {
		slog.Error("Failed to load house templates", "error", err)
		os.Exit(1)
	}

	client, err := loadgen.NewClient(lg.TargetURL, lg.Timeout())
	if err != nil {
		slog.Error("Failed to create API client", "error", err)
		os.Exit(1)
	}

	gen, err := loadgen.NewGenerator(client, templates, opts)
	if err != nil {
		slog.Error("Invalid load generator options", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	stats, err := gen.Run(ctx)
	if err != nil {
		slog.Warn("Simulation interrupted", "error", err, "houses_completed", stats.Houses)
		os.Exit(1)
	}
	slog.Info("Done", "target", lg.TargetURL, "seed", stats.Seed)
}
