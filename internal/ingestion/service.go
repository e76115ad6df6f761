package ingestion

import (
	"context"
	"fmt"
	"log/slog"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// Service turns validated telemetry into events and appends them to the log.
// It never reads the log: orphaned telemetry for unregistered houses is accepted.
type Service struct {
	store            storage.EventStore
	maxBodySizeBytes int64
}

func NewService(store storage.EventStore, maxBodySizeMB int) *Service {
	if store == nil {
		panic("ingestion: store must not be nil")
	}
	useJSONFieldNames()
	if maxBodySizeMB <= 0 {
		maxBodySizeMB = 1 // default to 1MB
	}
	return &Service{
		store:            store,
		maxBodySizeBytes: int64(maxBodySizeMB) << 20,
	}
}

// RegisterRoutes registers the ingestion service routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/api/register/house/", s.RegisterHouseHandler)
	r.POST("/api/ingest/signal/", s.CaptureSignalHandler)
	r.POST("/api/ingest/metrics/", s.RoomPerformanceHandler)
	r.POST("/api/ingest/recommendations/", s.RecommendationHandler)
}

func (s *Service) RegisterHouse(ctx context.Context, house v1.HouseRegistered) (string, error) {
	return s.append(ctx, house)
}

func (s *Service) CaptureSignal(ctx context.Context, signal v1.WifiSignalCaptured) (string, error) {
	return s.append(ctx, signal)
}

func (s *Service) RecordRoomPerformance(ctx context.Context, metrics v1.RoomPerformanceCalculated) (string, error) {
	return s.append(ctx, metrics)
}

func (s *Service) RecordRecommendation(ctx context.Context, rec v1.PerformanceRecommendationGenerated) (string, error) {
	return s.append(ctx, rec)
}

// append wraps the payload in a new envelope and writes it. It returns the event id.
func (s *Service) append(ctx context.Context, p v1.Payload) (string, error) {
	evt := v1.New(p)

	pos, err := s.store.Append(ctx, evt)
	if err != nil {
		return "", fmt.Errorf("append %s: %w", evt.Type, err)
	}

	slog.Info("Event appended",
		"event_id", evt.ID,
		"event_type", evt.Type,
		"aggregate_id", evt.AggregateID,
		"position", pos)
	return evt.ID, nil
}
