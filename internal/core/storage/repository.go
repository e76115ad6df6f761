package storage

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
)

const (
	DefaultSignalLimit = 50
	MaxSignalLimit     = 500
)

// ErrInvalidCursor is returned when a pagination cursor cannot be decoded.
var ErrInvalidCursor = errors.New("invalid cursor")

// Error marks an infrastructure failure (storage unreachable, failed read or write).
// Callers decide whether to retry, report or ignore it.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string {
	return "storage: " + e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// IsUnavailable reports whether err originates from the storage engine.
func IsUnavailable(err error) bool {
	var se *Error
	return errors.As(err, &se)
}

// Position is the storage engine's total order over appended events.
// It, not the timestamp, is the authoritative pagination order.
type Position int64

// EncodeCursor renders a position as an opaque cursor token.
func EncodeCursor(p Position) string {
	return strconv.FormatInt(int64(p), 10)
}

// DecodeCursor parses a cursor token. An empty token means "start from the newest event".
func DecodeCursor(token string) (Position, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(token, 10, 64)
	if err != nil || n <= 0 {
		return 0, ErrInvalidCursor
	}
	return Position(n), nil
}

// ClampLimit applies the signal page default and maximum.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return DefaultSignalLimit
	}
	if limit > MaxSignalLimit {
		return MaxSignalLimit
	}
	return limit
}

// ParseLimit parses a raw limit parameter. Non-numeric input falls back to the default.
func ParseLimit(raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return DefaultSignalLimit
	}
	return ClampLimit(n)
}

// SignalQuery selects a page of the signal stream.
type SignalQuery struct {
	Limit   int
	HouseID string // optional
	Cursor  string // optional; only events strictly older than it are returned
}

// Signal is a captured sample together with its envelope and storage position.
type Signal struct {
	Position  Position
	EventID   string
	Timestamp time.Time
	v1.WifiSignalCaptured
}

// SignalPage is one page of RecentSignals, newest first.
// NextCursor is empty once the stream is exhausted.
type SignalPage struct {
	Results    []Signal
	NextCursor string
}

// Recommendation is the latest advisory snapshot of a house.
type Recommendation struct {
	v1.PerformanceRecommendationGenerated
	GeneratedAt time.Time
}

// EventStore appends events to a single append-only log and derives
// current-state views from it on every read.
type EventStore interface {
	// Append writes exactly one event and returns its storage position.
	Append(ctx context.Context, event *v1.Event) (Position, error)

	// ListHouses returns every HouseRegistered payload in storage order, duplicates included.
	ListHouses(ctx context.Context) ([]v1.HouseRegistered, error)

	// RecentSignals returns WifiSignalCaptured events newest first with keyset pagination.
	RecentSignals(ctx context.Context, q SignalQuery) (SignalPage, error)

	// LatestRecommendation returns the newest recommendation for a house.
	// The boolean is false when the house has none.
	LatestRecommendation(ctx context.Context, houseID string) (Recommendation, bool, error)

	// RoomMetrics returns the newest scorecard of every room of a house.
	RoomMetrics(ctx context.Context, houseID string) ([]v1.RoomPerformanceCalculated, error)

	// Ping checks that the storage engine is reachable.
	Ping(ctx context.Context) error
}
