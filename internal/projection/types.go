package projection

import (
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
)

// AllHousesLabel is the label of the leading "no filter" entry in the house dropdown.
const AllHousesLabel = "Tüm Evler (Genel Bakış)"

// SignalListRequest represents the query parameters of the signal stream.
// Limit stays a string: a non-numeric value falls back to the default instead of failing.
type SignalListRequest struct {
	Limit   string `form:"limit"`
	HouseID string `form:"house_id"`
	Cursor  string `form:"cursor"`
}

// SignalRow is one captured sample, flattened for the dashboard table.
type SignalRow struct {
	Position  int64     `json:"position"`
	EventID   string    `json:"event_id"`
	Timestamp time.Time `json:"timestamp"`
	v1.WifiSignalCaptured
}

// SignalListResponse is one page of the signal stream, newest first.
// NextCursor is null once the stream is exhausted.
type SignalListResponse struct {
	Results    []SignalRow `json:"results"`
	NextCursor *string     `json:"next_cursor"`
}

// HouseOption is one entry of the house dropdown.
type HouseOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// RecommendationResponse is the latest advisory snapshot of a house.
type RecommendationResponse struct {
	v1.PerformanceRecommendationGenerated
	GeneratedAt time.Time `json:"generated_at"`
}
