package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/aevon-lab/homewifi/internal/core/storage"
)

// Store is an in-memory implementation of storage.EventStore.
// Useful for testing and development. Events are kept as encoded records so
// every read decodes them, exactly like a durable backend would.
type Store struct {
	mu  sync.RWMutex
	log []v1.Record // log[i] has position i+1
	ids map[string]struct{}
}

var _ storage.EventStore = (*Store)(nil)

// NewStore creates an empty in-memory event log.
func NewStore() *Store {
	return &Store{ids: make(map[string]struct{})}
}

func (s *Store) Append(ctx context.Context, event *v1.Event) (storage.Position, error) {
	rec, err := event.Record()
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.ids[rec.EventID]; exists {
		return 0, &storage.Error{Op: "append", Err: fmt.Errorf("duplicate event_id %s", rec.EventID)}
	}

	s.log = append(s.log, rec)
	s.ids[rec.EventID] = struct{}{}
	return storage.Position(len(s.log)), nil
}

func (s *Store) ListHouses(ctx context.Context) ([]v1.HouseRegistered, error) {
	houses := make([]v1.HouseRegistered, 0)
	err := s.scan(false, func(_ storage.Position, evt *v1.Event) bool {
		if h, ok := evt.Payload.(v1.HouseRegistered); ok {
			houses = append(houses, h)
		}
		return true
	})
	if err != nil {
		return nil, err
	}
	return houses, nil
}

func (s *Store) RecentSignals(ctx context.Context, q storage.SignalQuery) (storage.SignalPage, error) {
	limit := storage.ClampLimit(q.Limit)
	before, err := storage.DecodeCursor(q.Cursor)
	if err != nil {
		return storage.SignalPage{}, err
	}

	rows := make([]storage.Signal, 0, limit+1)
	err = s.scan(true, func(pos storage.Position, evt *v1.Event) bool {
		if before > 0 && pos >= before {
			return true
		}
		sig, ok := evt.Payload.(v1.WifiSignalCaptured)
		if !ok || (q.HouseID != "" && evt.AggregateID != q.HouseID) {
			return true
		}
		rows = append(rows, storage.Signal{
			Position:           pos,
			EventID:            evt.ID,
			Timestamp:          evt.Timestamp,
			WifiSignalCaptured: sig,
		})
		return len(rows) <= limit
	})
	if err != nil {
		return storage.SignalPage{}, err
	}
	return storage.PageSignals(rows, limit), nil
}

func (s *Store) LatestRecommendation(ctx context.Context, houseID string) (storage.Recommendation, bool, error) {
	var candidates []storage.Recommendation
	err := s.scan(true, func(_ storage.Position, evt *v1.Event) bool {
		if rec, ok := evt.Payload.(v1.PerformanceRecommendationGenerated); ok && evt.AggregateID == houseID {
			candidates = append(candidates, storage.Recommendation{
				PerformanceRecommendationGenerated: rec,
				GeneratedAt:                        evt.Timestamp,
			})
		}
		return true
	})
	if err != nil {
		return storage.Recommendation{}, false, err
	}

	sortNewestFirst(candidates, func(r storage.Recommendation) int64 { return r.GeneratedAt.UnixNano() })
	latest := storage.LatestPerKey(candidates, func(r storage.Recommendation) string { return r.HouseID })
	if len(latest) == 0 {
		return storage.Recommendation{}, false, nil
	}
	return latest[0], true, nil
}

func (s *Store) RoomMetrics(ctx context.Context, houseID string) ([]v1.RoomPerformanceCalculated, error) {
	type stamped struct {
		at      int64
		metrics v1.RoomPerformanceCalculated
	}

	var candidates []stamped
	err := s.scan(true, func(_ storage.Position, evt *v1.Event) bool {
		if m, ok := evt.Payload.(v1.RoomPerformanceCalculated); ok && evt.AggregateID == houseID {
			candidates = append(candidates, stamped{at: evt.Timestamp.UnixNano(), metrics: m})
		}
		return true
	})
	if err != nil {
		return nil, err
	}

	sortNewestFirst(candidates, func(c stamped) int64 { return c.at })
	winners := storage.LatestPerKey(candidates, func(c stamped) string { return c.metrics.RoomName })

	metrics := make([]v1.RoomPerformanceCalculated, 0, len(winners))
	for _, w := range winners {
		metrics = append(metrics, w.metrics)
	}
	return metrics, nil
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

// Len returns the number of appended events.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.log)
}

// scan decodes the log in storage order (or reverse) until visit returns false.
func (s *Store) scan(newestFirst bool, visit func(storage.Position, *v1.Event) bool) error {
	s.mu.RLock()
	snapshot := s.log[:len(s.log):len(s.log)]
	s.mu.RUnlock()

	n := len(snapshot)
	for i := 0; i < n; i++ {
		idx := i
		if newestFirst {
			idx = n - 1 - i
		}
		evt, err := v1.Decode(snapshot[idx])
		if err != nil {
			return &storage.Error{Op: "decode", Err: err}
		}
		if !visit(storage.Position(idx+1), evt) {
			return nil
		}
	}
	return nil
}

// sortNewestFirst orders by timestamp descending. The sort is stable, so items that
// were already in descending storage order keep the later position first on ties.
func sortNewestFirst[T any](items []T, at func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return at(items[i]) > at(items[j])
	})
}
