package v1

// Band is the radio band a signal sample was captured on.
type Band string

const (
	Band24GHz Band = "2.4GHz"
	Band5GHz  Band = "5GHz"
)

func (b Band) Valid() bool {
	return b == Band24GHz || b == Band5GHz
}

// Severity grades a recommendation.
type Severity string

const (
	SeverityInfo     Severity = "INFO"
	SeverityWarning  Severity = "WARNING"
	SeverityCritical Severity = "CRITICAL"
)

func (s Severity) Valid() bool {
	switch s {
	case SeverityInfo, SeverityWarning, SeverityCritical:
		return true
	}
	return false
}

// Action is the remediation suggested for a room.
type Action string

const (
	ActionNone       Action = "NONE"
	ActionCheckNode  Action = "CHECK_NODE"
	ActionMeshNeeded Action = "MESH_NEEDED"
	ActionExtender   Action = "EXTENDER"
	ActionOptimize   Action = "OPTIMIZE"
)

func (a Action) Valid() bool {
	switch a {
	case ActionNone, ActionCheckNode, ActionMeshNeeded, ActionExtender, ActionOptimize:
		return true
	}
	return false
}

// HouseRegistered declares that a house exists. HouseID is the natural key
// used by every other event.
type HouseRegistered struct {
	HouseID   string   `json:"house_id"`
	HouseType string   `json:"house_type"`
	OwnerName string   `json:"owner_name"`
	AreaSqm   int      `json:"area_sqm"`
	Rooms     []string `json:"rooms"`
}

func (HouseRegistered) EventType() EventType  { return TypeHouseRegistered }
func (p HouseRegistered) AggregateID() string { return p.HouseID }

// WifiSignalCaptured is one raw measurement sample.
type WifiSignalCaptured struct {
	HouseID        string  `json:"house_id"`
	Room           string  `json:"room"`
	RSSI           int     `json:"rssi"`
	DeviceID       string  `json:"device_id"`
	Band           Band    `json:"band"`
	Channel        int     `json:"channel"`
	SSID           string  `json:"ssid"`
	LinkSpeedMbps  int     `json:"link_speed_mbps"`
	LatencyMs      int     `json:"latency_ms"`
	PacketLossRate float64 `json:"packet_loss_rate"`
	BSSID          string  `json:"bssid"`
}

func (WifiSignalCaptured) EventType() EventType  { return TypeWifiSignalCaptured }
func (p WifiSignalCaptured) AggregateID() string { return p.HouseID }

// RoomPerformanceCalculated is an externally computed scorecard for one room.
type RoomPerformanceCalculated struct {
	HouseID        string  `json:"house_id"`
	RoomName       string  `json:"room_name"`
	GamingScore    int     `json:"gaming_score"`
	StreamingScore int     `json:"streaming_score"`
	VideoCallScore int     `json:"video_call_score"`
	OverallRating  int     `json:"overall_rating"`
	AvgSignalDbm   int     `json:"avg_signal_dbm"`
	AvgSpeedMbps   int     `json:"avg_speed_mbps"`
	AvgLatencyMs   int     `json:"avg_latency_ms"`
	PacketLossAvg  float64 `json:"packet_loss_avg"`
}

func (RoomPerformanceCalculated) EventType() EventType  { return TypeRoomPerformanceCalculated }
func (p RoomPerformanceCalculated) AggregateID() string { return p.HouseID }

// RoomRecommendation is the advice attached to a single room.
type RoomRecommendation struct {
	Action   Action   `json:"action"`
	Text     string   `json:"text"`
	Severity Severity `json:"severity"`
}

// PerformanceRecommendationGenerated is a whole-house advisory snapshot.
type PerformanceRecommendationGenerated struct {
	HouseID                  string                        `json:"house_id"`
	RoomRecommendations      map[string]RoomRecommendation `json:"room_recommendations"`
	GlobalRecommendationText string                        `json:"global_recommendation_text"`
	GlobalSeverity           Severity                      `json:"global_severity"`
}

func (PerformanceRecommendationGenerated) EventType() EventType {
	return TypePerformanceRecommendationGenerated
}
func (p PerformanceRecommendationGenerated) AggregateID() string { return p.HouseID }
