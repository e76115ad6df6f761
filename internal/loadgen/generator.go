package loadgen

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync/atomic"
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"golang.org/x/sync/errgroup"
)

// Sink receives generated events. *Client is the HTTP implementation.
type Sink interface {
	RegisterHouse(ctx context.Context, h v1.HouseRegistered) error
	CaptureSignal(ctx context.Context, s v1.WifiSignalCaptured) error
	RecordRoomPerformance(ctx context.Context, m v1.RoomPerformanceCalculated) error
	RecordRecommendation(ctx context.Context, r v1.PerformanceRecommendationGenerated) error
}

type Options struct {
	Houses          int
	SignalsPerHouse int
	Workers         int
	Seed            int64 // 0 picks a time-based seed
}

// Stats counts delivery outcomes across a run.
type Stats struct {
	Houses   int64
	Sent     int64
	Failed   int64
	Duration time.Duration
	Seed     int64
}

// Generator simulates houses and pushes their events into a Sink.
type Generator struct {
	sink      Sink
	templates *Templates
	opts      Options

	sent   atomic.Int64
	failed atomic.Int64
	houses atomic.Int64
}

func NewGenerator(sink Sink, templates *Templates, opts Options) (*Generator, error) {
	if opts.Houses <= 0 {
		return nil, fmt.Errorf("houses must be positive, got %d", opts.Houses)
	}
	if opts.SignalsPerHouse < 0 {
		return nil, fmt.Errorf("signals per house must not be negative, got %d", opts.SignalsPerHouse)
	}
	if opts.Workers <= 0 {
		return nil, fmt.Errorf("workers must be positive, got %d", opts.Workers)
	}
	if opts.Seed == 0 {
		opts.Seed = time.Now().UnixNano()
	}
	return &Generator{sink: sink, templates: templates, opts: opts}, nil
}

// Run simulates every house with at most Workers houses in flight.
// Delivery failures are logged and counted, never returned: the only error
// is the context's once it is cancelled.
func (g *Generator) Run(ctx context.Context) (Stats, error) {
	start := time.Now()
	slog.Info("[LoadGen] Starting simulation",
		"houses", g.opts.Houses,
		"signals_per_house", g.opts.SignalsPerHouse,
		"workers", g.opts.Workers,
		"seed", g.opts.Seed)

	picker := rand.New(rand.NewPCG(uint64(g.opts.Seed), math.MaxUint64))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(g.opts.Workers)
	for i := 0; i < g.opts.Houses; i++ {
		if egCtx.Err() != nil {
			break
		}
		tmpl := pick(picker, g.templates.HouseTypes)
		house := NewHouse(g.templates, tmpl, i, g.opts.Seed)
		eg.Go(func() error {
			g.simulate(egCtx, house)
			return nil
		})
	}
	_ = eg.Wait()

	stats := Stats{
		Houses:   g.houses.Load(),
		Sent:     g.sent.Load(),
		Failed:   g.failed.Load(),
		Duration: time.Since(start),
		Seed:     g.opts.Seed,
	}
	slog.Info("[LoadGen] Simulation finished",
		"houses", stats.Houses,
		"sent", stats.Sent,
		"failed", stats.Failed,
		"duration", stats.Duration)

	return stats, ctx.Err()
}

// simulate drives one house through register, signals, scorecards and the final report.
func (g *Generator) simulate(ctx context.Context, h *House) {
	g.deliver(ctx, h.ID, v1.TypeHouseRegistered, func() error {
		return g.sink.RegisterHouse(ctx, h.Registration())
	})

	stats := make(map[string]*RoomStats, len(h.Template.Rooms))
	for i := 0; i < g.opts.SignalsPerHouse; i++ {
		if ctx.Err() != nil {
			return
		}
		sig := h.NextSignal(g.templates)
		g.deliver(ctx, h.ID, v1.TypeWifiSignalCaptured, func() error {
			return g.sink.CaptureSignal(ctx, sig)
		})

		rs, ok := stats[sig.Room]
		if !ok {
			rs = &RoomStats{}
			stats[sig.Room] = rs
		}
		rs.Add(sig)
	}

	advice := make(map[string]v1.RoomRecommendation, len(stats))
	for _, room := range h.Template.Rooms {
		rs, ok := stats[room.Name]
		if !ok {
			continue
		}
		card := h.Scorecard(room.Name, rs)
		g.deliver(ctx, h.ID, v1.TypeRoomPerformanceCalculated, func() error {
			return g.sink.RecordRoomPerformance(ctx, card)
		})
		advice[room.Name] = RecommendFor(h.Template, card.AvgSignalDbm)
	}

	if len(advice) > 0 {
		report := Summarize(h.ID, advice)
		g.deliver(ctx, h.ID, v1.TypePerformanceRecommendationGenerated, func() error {
			return g.sink.RecordRecommendation(ctx, report)
		})
	}

	g.houses.Add(1)
	slog.Debug("[LoadGen] House completed", "house_id", h.ID, "house_type", h.Template.Type)
}

func (g *Generator) deliver(ctx context.Context, houseID string, eventType v1.EventType, send func() error) {
	if err := send(); err != nil {
		g.failed.Add(1)
		if ctx.Err() == nil {
			slog.Warn("[LoadGen] Delivery failed",
				"house_id", houseID,
				"event_type", eventType,
				"error", err)
		}
		return
	}
	g.sent.Add(1)
}
