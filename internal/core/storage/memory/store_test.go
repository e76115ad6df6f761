package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func appendAt(t *testing.T, s *Store, p v1.Payload, at time.Time) *v1.Event {
	t.Helper()
	evt := v1.New(p)
	evt.Timestamp = at
	_, err := s.Append(context.Background(), evt)
	require.NoError(t, err)
	return evt
}

func signal(house, room string, rssi int) v1.WifiSignalCaptured {
	return v1.WifiSignalCaptured{
		HouseID:  house,
		Room:     room,
		RSSI:     rssi,
		DeviceID: "iPhone 14 Pro",
		Band:     v1.Band5GHz,
		Channel:  36,
		SSID:     "Wifi_Ali",
	}
}

func TestStore_StudioScenario(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	appendAt(t, s, v1.HouseRegistered{
		HouseID:   "ev_001_studio",
		HouseType: "Stüdyo Daire",
		OwnerName: "Ali Veli",
		AreaSqm:   45,
	}, baseTime)
	appendAt(t, s, signal("ev_001_studio", "Salon", -40), baseTime.Add(time.Second))
	appendAt(t, s, signal("ev_001_studio", "Mutfak", -55), baseTime.Add(2*time.Second))
	appendAt(t, s, signal("ev_001_studio", "Salon", -38), baseTime.Add(3*time.Second))

	page, err := s.RecentSignals(ctx, storage.SignalQuery{Limit: 2, HouseID: "ev_001_studio"})
	require.NoError(t, err)
	require.Len(t, page.Results, 2)
	require.Equal(t, "Salon", page.Results[0].Room)
	require.Equal(t, -38, page.Results[0].RSSI)
	require.Equal(t, "Mutfak", page.Results[1].Room)
	require.Equal(t, -55, page.Results[1].RSSI)
	require.NotEmpty(t, page.NextCursor)

	next, err := s.RecentSignals(ctx, storage.SignalQuery{Limit: 2, HouseID: "ev_001_studio", Cursor: page.NextCursor})
	require.NoError(t, err)
	require.Len(t, next.Results, 1)
	require.Equal(t, "Salon", next.Results[0].Room)
	require.Equal(t, -40, next.Results[0].RSSI)
	require.Empty(t, next.NextCursor)
}

func TestStore_AppendRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	house := v1.HouseRegistered{HouseID: "h1", HouseType: "Villa Mesh", OwnerName: "Ece Acar", AreaSqm: 310, Rooms: []string{"Salon"}}
	sig := signal("h1", "Bahçe", -61)
	sig.LinkSpeedMbps = 420
	sig.LatencyMs = 31
	sig.PacketLossRate = 0.5
	sig.BSSID = "00:AA:BB:01:0a:FF"
	metrics := v1.RoomPerformanceCalculated{HouseID: "h1", RoomName: "Bahçe", GamingScore: 80, StreamingScore: 75, VideoCallScore: 77, OverallRating: 77, AvgSignalDbm: -58, AvgSpeedMbps: 410, AvgLatencyMs: 33, PacketLossAvg: 0.42}
	rec := v1.PerformanceRecommendationGenerated{
		HouseID: "h1",
		RoomRecommendations: map[string]v1.RoomRecommendation{
			"Bahçe": {Action: v1.ActionOptimize, Text: "Kanal çakışması olabilir.", Severity: v1.SeverityInfo},
		},
		GlobalRecommendationText: "Tebrikler!",
		GlobalSeverity:           v1.SeverityInfo,
	}

	appendAt(t, s, house, baseTime)
	sigEvt := appendAt(t, s, sig, baseTime.Add(time.Second))
	appendAt(t, s, metrics, baseTime.Add(2*time.Second))
	appendAt(t, s, rec, baseTime.Add(3*time.Second))
	require.Equal(t, 4, s.Len())

	houses, err := s.ListHouses(ctx)
	require.NoError(t, err)
	require.Equal(t, []v1.HouseRegistered{house}, houses)

	page, err := s.RecentSignals(ctx, storage.SignalQuery{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
	require.Equal(t, sig, page.Results[0].WifiSignalCaptured)
	require.Equal(t, sigEvt.ID, page.Results[0].EventID)
	require.Equal(t, storage.Position(2), page.Results[0].Position)

	rooms, err := s.RoomMetrics(ctx, "h1")
	require.NoError(t, err)
	require.Equal(t, []v1.RoomPerformanceCalculated{metrics}, rooms)

	latest, found, err := s.LatestRecommendation(ctx, "h1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, rec, latest.PerformanceRecommendationGenerated)
	require.Equal(t, baseTime.Add(3*time.Second), latest.GeneratedAt)
}

func TestStore_ListHousesKeepsDuplicatesInOrder(t *testing.T) {
	s := NewStore()
	appendAt(t, s, v1.HouseRegistered{HouseID: "b", OwnerName: "first"}, baseTime)
	appendAt(t, s, v1.HouseRegistered{HouseID: "a"}, baseTime.Add(time.Second))
	appendAt(t, s, v1.HouseRegistered{HouseID: "b", OwnerName: "second"}, baseTime.Add(2*time.Second))

	houses, err := s.ListHouses(context.Background())
	require.NoError(t, err)
	require.Len(t, houses, 3)
	require.Equal(t, "first", houses[0].OwnerName)
	require.Equal(t, "a", houses[1].HouseID)
	require.Equal(t, "second", houses[2].OwnerName)
}

func TestStore_ListHousesEmpty(t *testing.T) {
	houses, err := NewStore().ListHouses(context.Background())
	require.NoError(t, err)
	require.NotNil(t, houses)
	require.Empty(t, houses)
}

func TestStore_RoomMetricsLatestWins(t *testing.T) {
	s := NewStore()
	for i := 0; i < 5; i++ {
		appendAt(t, s, v1.RoomPerformanceCalculated{HouseID: "h1", RoomName: "Salon", OverallRating: 50 + i}, baseTime.Add(time.Duration(i)*time.Minute))
	}
	appendAt(t, s, v1.RoomPerformanceCalculated{HouseID: "h1", RoomName: "Mutfak", OverallRating: 61}, baseTime.Add(2*time.Minute))
	appendAt(t, s, v1.RoomPerformanceCalculated{HouseID: "h2", RoomName: "Salon", OverallRating: 1}, baseTime.Add(time.Hour))

	rooms, err := s.RoomMetrics(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, rooms, 2)
	require.Equal(t, "Salon", rooms[0].RoomName)
	require.Equal(t, 54, rooms[0].OverallRating)
	require.Equal(t, "Mutfak", rooms[1].RoomName)
	require.Equal(t, 61, rooms[1].OverallRating)
}

func TestStore_RoomMetricsUsesTimestampNotAppendOrder(t *testing.T) {
	s := NewStore()
	appendAt(t, s, v1.RoomPerformanceCalculated{HouseID: "h1", RoomName: "Salon", OverallRating: 90}, baseTime.Add(time.Hour))
	appendAt(t, s, v1.RoomPerformanceCalculated{HouseID: "h1", RoomName: "Salon", OverallRating: 10}, baseTime)

	rooms, err := s.RoomMetrics(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, 90, rooms[0].OverallRating)
}

func TestStore_LatestRecommendation(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	_, found, err := s.LatestRecommendation(ctx, "h1")
	require.NoError(t, err)
	require.False(t, found)

	appendAt(t, s, v1.PerformanceRecommendationGenerated{HouseID: "h1", GlobalRecommendationText: "old", GlobalSeverity: v1.SeverityCritical}, baseTime)
	appendAt(t, s, v1.PerformanceRecommendationGenerated{HouseID: "h1", GlobalRecommendationText: "tie-first", GlobalSeverity: v1.SeverityWarning}, baseTime.Add(time.Minute))
	appendAt(t, s, v1.PerformanceRecommendationGenerated{HouseID: "h1", GlobalRecommendationText: "tie-second", GlobalSeverity: v1.SeverityInfo}, baseTime.Add(time.Minute))
	appendAt(t, s, v1.PerformanceRecommendationGenerated{HouseID: "h2", GlobalRecommendationText: "other house"}, baseTime.Add(time.Hour))

	latest, found, err := s.LatestRecommendation(ctx, "h1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, "tie-second", latest.GlobalRecommendationText)
	require.Equal(t, baseTime.Add(time.Minute), latest.GeneratedAt)

	_, found, err = s.LatestRecommendation(ctx, "h3")
	require.NoError(t, err)
	require.False(t, found)
}

func TestStore_PaginationCompleteAndDisjoint(t *testing.T) {
	ctx := context.Background()
	s := NewStore()

	want := make(map[string]bool)
	for i := 0; i < 23; i++ {
		house := "A"
		if i%3 == 0 {
			house = "B"
		}
		evt := appendAt(t, s, signal(house, fmt.Sprintf("room-%d", i), -40-i), baseTime.Add(time.Duration(i)*time.Second))
		if house == "A" {
			want[evt.ID] = true
		}
		if i%5 == 0 {
			appendAt(t, s, v1.RoomPerformanceCalculated{HouseID: house, RoomName: "noise"}, baseTime)
		}
	}

	for _, k := range []int{1, 2, 4, 7, 15, 500} {
		t.Run(fmt.Sprintf("limit=%d", k), func(t *testing.T) {
			seen := make(map[string]bool)
			var lastPos storage.Position
			cursor := ""
			for pages := 0; ; pages++ {
				require.Less(t, pages, 100, "pagination did not terminate")
				page, err := s.RecentSignals(ctx, storage.SignalQuery{Limit: k, HouseID: "A", Cursor: cursor})
				require.NoError(t, err)
				require.LessOrEqual(t, len(page.Results), k)
				for _, sig := range page.Results {
					require.Equal(t, "A", sig.HouseID)
					require.False(t, seen[sig.EventID], "row returned twice")
					if lastPos != 0 {
						require.Less(t, sig.Position, lastPos, "rows must be in descending storage order")
					}
					lastPos = sig.Position
					seen[sig.EventID] = true
				}
				if page.NextCursor == "" {
					break
				}
				cursor = page.NextCursor
			}
			require.Equal(t, want, seen)
		})
	}
}

func TestStore_PaginationStableUnderConcurrentAppends(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < 6; i++ {
		appendAt(t, s, signal("h1", "Salon", -40-i), baseTime.Add(time.Duration(i)*time.Second))
	}

	first, err := s.RecentSignals(ctx, storage.SignalQuery{Limit: 3})
	require.NoError(t, err)
	require.Len(t, first.Results, 3)

	// New events arrive between pages.
	appendAt(t, s, signal("h1", "Salon", -10), baseTime.Add(time.Hour))
	appendAt(t, s, signal("h1", "Salon", -11), baseTime.Add(time.Hour))

	second, err := s.RecentSignals(ctx, storage.SignalQuery{Limit: 3, Cursor: first.NextCursor})
	require.NoError(t, err)
	require.Len(t, second.Results, 3)
	require.Empty(t, second.NextCursor)

	ids := make(map[string]bool)
	for _, sig := range append(first.Results, second.Results...) {
		require.False(t, ids[sig.EventID])
		ids[sig.EventID] = true
		require.NotEqual(t, -10, sig.RSSI)
		require.NotEqual(t, -11, sig.RSSI)
	}
	require.Len(t, ids, 6)
}

func TestStore_LimitClamp(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	for i := 0; i < storage.MaxSignalLimit+20; i++ {
		appendAt(t, s, signal("h1", "Salon", -50), baseTime)
	}

	page, err := s.RecentSignals(ctx, storage.SignalQuery{Limit: 10000})
	require.NoError(t, err)
	require.Len(t, page.Results, storage.MaxSignalLimit)
	require.NotEmpty(t, page.NextCursor)

	page, err = s.RecentSignals(ctx, storage.SignalQuery{Limit: storage.ParseLimit("abc")})
	require.NoError(t, err)
	require.Len(t, page.Results, storage.DefaultSignalLimit)
}

func TestStore_InvalidCursor(t *testing.T) {
	_, err := NewStore().RecentSignals(context.Background(), storage.SignalQuery{Cursor: "not-a-position"})
	require.ErrorIs(t, err, storage.ErrInvalidCursor)
}

func TestStore_AcceptsOrphanedTelemetry(t *testing.T) {
	s := NewStore()
	appendAt(t, s, signal("never-registered", "Salon", -70), baseTime)

	page, err := s.RecentSignals(context.Background(), storage.SignalQuery{HouseID: "never-registered"})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)
}

func TestStore_RejectsDuplicateEventID(t *testing.T) {
	s := NewStore()
	evt := v1.New(signal("h1", "Salon", -40))

	_, err := s.Append(context.Background(), evt)
	require.NoError(t, err)

	_, err = s.Append(context.Background(), evt)
	require.Error(t, err)
	require.True(t, storage.IsUnavailable(err))
	require.Equal(t, 1, s.Len())
}

func TestStore_ConcurrentAppends(t *testing.T) {
	s := NewStore()

	var wg sync.WaitGroup
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				_, err := s.Append(context.Background(), v1.New(signal(fmt.Sprintf("h%d", w), "Salon", -40)))
				require.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 400, s.Len())
	page, err := s.RecentSignals(context.Background(), storage.SignalQuery{Limit: 500, HouseID: "h3"})
	require.NoError(t, err)
	require.Len(t, page.Results, 50)
}
