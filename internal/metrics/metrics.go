package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so every server (and every test) gets its own collectors.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests   *prometheus.CounterVec
	httpLatency    *prometheus.HistogramVec
	eventsAppended *prometheus.CounterVec
	storageErrors  *prometheus.CounterVec
}

func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homewifi_http_requests_total",
				Help: "Total number of HTTP requests.",
			},
			[]string{"method", "path", "status"},
		),
		httpLatency: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "homewifi_http_request_duration_seconds",
				Help:    "HTTP request latency in seconds.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path", "status"},
		),
		eventsAppended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homewifi_events_appended_total",
				Help: "Events appended to the event log, by event type.",
			},
			[]string{"event_type"},
		),
		storageErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "homewifi_storage_errors_total",
				Help: "Event store failures, by operation.",
			},
			[]string{"op"},
		),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpLatency,
		m.eventsAppended,
		m.storageErrors,
	)
	return m
}

// Handler serves the Prometheus exposition format for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Instrument records count and latency of every request, labelled by route template.
func (m *Metrics) Instrument() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		status := strconv.Itoa(c.Writer.Status())
		m.httpRequests.WithLabelValues(c.Request.Method, path, status).Inc()
		m.httpLatency.WithLabelValues(c.Request.Method, path, status).Observe(time.Since(start).Seconds())
	}
}

// InstrumentStore wraps an EventStore so appends and storage failures are counted.
func (m *Metrics) InstrumentStore(next storage.EventStore) storage.EventStore {
	return &instrumentedStore{next: next, m: m}
}

func (m *Metrics) observeErr(op string, err error) {
	if err != nil && storage.IsUnavailable(err) {
		m.storageErrors.WithLabelValues(op).Inc()
	}
}

type instrumentedStore struct {
	next storage.EventStore
	m    *Metrics
}

func (s *instrumentedStore) Append(ctx context.Context, event *v1.Event) (storage.Position, error) {
	pos, err := s.next.Append(ctx, event)
	s.m.observeErr("append", err)
	if err == nil {
		s.m.eventsAppended.WithLabelValues(string(event.Type)).Inc()
	}
	return pos, err
}

func (s *instrumentedStore) ListHouses(ctx context.Context) ([]v1.HouseRegistered, error) {
	houses, err := s.next.ListHouses(ctx)
	s.m.observeErr("list_houses", err)
	return houses, err
}

func (s *instrumentedStore) RecentSignals(ctx context.Context, q storage.SignalQuery) (storage.SignalPage, error) {
	page, err := s.next.RecentSignals(ctx, q)
	s.m.observeErr("recent_signals", err)
	return page, err
}

func (s *instrumentedStore) LatestRecommendation(ctx context.Context, houseID string) (storage.Recommendation, bool, error) {
	rec, found, err := s.next.LatestRecommendation(ctx, houseID)
	s.m.observeErr("latest_recommendation", err)
	return rec, found, err
}

func (s *instrumentedStore) RoomMetrics(ctx context.Context, houseID string) ([]v1.RoomPerformanceCalculated, error) {
	rooms, err := s.next.RoomMetrics(ctx, houseID)
	s.m.observeErr("room_metrics", err)
	return rooms, err
}

func (s *instrumentedStore) Ping(ctx context.Context) error {
	err := s.next.Ping(ctx)
	s.m.observeErr("ping", err)
	return err
}
