package projection

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/aevon-lab/homewifi/internal/core/storage"
)

// ErrInvalidQuery marks request validation errors that should return HTTP 400.
var ErrInvalidQuery = errors.New("invalid query")

// Service implements the projection/query layer.
// Every read is derived from the event log on demand; nothing is cached.
type Service struct {
	store storage.EventStore
}

// NewService creates a new projection service.
func NewService(store storage.EventStore) *Service {
	if store == nil {
		panic("projection: store must not be nil")
	}
	return &Service{store: store}
}

// ListHouses returns every registration in storage order, duplicates included.
func (s *Service) ListHouses(ctx context.Context) ([]v1.HouseRegistered, error) {
	houses, err := s.store.ListHouses(ctx)
	if err != nil {
		return nil, fmt.Errorf("list houses: %w", err)
	}
	return houses, nil
}

// ListHouseOptions builds the dashboard dropdown: an "all houses" entry followed by
// one "owner - type" entry per registration.
func (s *Service) ListHouseOptions(ctx context.Context) ([]HouseOption, error) {
	houses, err := s.ListHouses(ctx)
	if err != nil {
		return nil, err
	}

	options := make([]HouseOption, 0, len(houses)+1)
	options = append(options, HouseOption{Value: "", Label: AllHousesLabel})
	for _, h := range houses {
		options = append(options, HouseOption{
			Value: h.HouseID,
			Label: h.OwnerName + " - " + h.HouseType,
		})
	}
	return options, nil
}

// ListRecentSignals returns one page of the signal stream.
func (s *Service) ListRecentSignals(ctx context.Context, req SignalListRequest) (SignalListResponse, error) {
	page, err := s.store.RecentSignals(ctx, storage.SignalQuery{
		Limit:   storage.ParseLimit(req.Limit),
		HouseID: req.HouseID,
		Cursor:  req.Cursor,
	})
	if errors.Is(err, storage.ErrInvalidCursor) {
		return SignalListResponse{}, fmt.Errorf("%w: cursor %q", ErrInvalidQuery, req.Cursor)
	}
	if err != nil {
		return SignalListResponse{}, fmt.Errorf("list signals: %w", err)
	}

	resp := SignalListResponse{Results: make([]SignalRow, 0, len(page.Results))}
	for _, sig := range page.Results {
		resp.Results = append(resp.Results, SignalRow{
			Position:           int64(sig.Position),
			EventID:            sig.EventID,
			Timestamp:          sig.Timestamp,
			WifiSignalCaptured: sig.WifiSignalCaptured,
		})
	}
	if page.NextCursor != "" {
		next := page.NextCursor
		resp.NextCursor = &next
	}
	return resp, nil
}

// GetRoomMetrics returns the newest scorecard of every room of a house.
func (s *Service) GetRoomMetrics(ctx context.Context, houseID string) ([]v1.RoomPerformanceCalculated, error) {
	rooms, err := s.store.RoomMetrics(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("room metrics for %s: %w", houseID, err)
	}
	if rooms == nil {
		rooms = []v1.RoomPerformanceCalculated{}
	}
	return rooms, nil
}

// GetLatestRecommendation returns nil when the house has no recommendation yet.
func (s *Service) GetLatestRecommendation(ctx context.Context, houseID string) (*RecommendationResponse, error) {
	rec, found, err := s.store.LatestRecommendation(ctx, houseID)
	if err != nil {
		return nil, fmt.Errorf("latest recommendation for %s: %w", houseID, err)
	}
	if !found {
		return nil, nil
	}
	return &RecommendationResponse{
		PerformanceRecommendationGenerated: rec.PerformanceRecommendationGenerated,
		GeneratedAt:                        rec.GeneratedAt,
	}, nil
}
