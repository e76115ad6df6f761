package ingestion

import (
	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
)

// Request bodies. Integer fields that must be present are pointers so that
// "required" means "sent", not "non-zero".

type RegisterHouseRequest struct {
	HouseID   string   `json:"house_id" binding:"required,max=100"`
	HouseType string   `json:"house_type" binding:"required,max=100"`
	OwnerName string   `json:"owner_name" binding:"required,max=100"`
	AreaSqm   *int     `json:"area_sqm" binding:"required"`
	Rooms     []string `json:"rooms" binding:"omitempty,dive,required,max=100"`
}

func (r RegisterHouseRequest) payload() v1.Payload {
	rooms := r.Rooms
	if rooms == nil {
		rooms = []string{}
	}
	return v1.HouseRegistered{
		HouseID:   r.HouseID,
		HouseType: r.HouseType,
		OwnerName: r.OwnerName,
		AreaSqm:   *r.AreaSqm,
		Rooms:     rooms,
	}
}

type CaptureSignalRequest struct {
	HouseID        string  `json:"house_id" binding:"required,max=100"`
	Room           string  `json:"room" binding:"required,max=100"`
	RSSI           *int    `json:"rssi" binding:"required"`
	DeviceID       string  `json:"device_id" binding:"required,max=100"`
	Band           v1.Band `json:"band" binding:"required,oneof=2.4GHz 5GHz"`
	Channel        *int    `json:"channel" binding:"required"`
	SSID           string  `json:"ssid" binding:"required,max=100"`
	LinkSpeedMbps  int     `json:"link_speed_mbps"`
	LatencyMs      int     `json:"latency_ms"`
	PacketLossRate float64 `json:"packet_loss_rate" binding:"gte=0"`
	BSSID          string  `json:"bssid" binding:"max=100"`
}

func (r CaptureSignalRequest) payload() v1.Payload {
	return v1.WifiSignalCaptured{
		HouseID:        r.HouseID,
		Room:           r.Room,
		RSSI:           *r.RSSI,
		DeviceID:       r.DeviceID,
		Band:           r.Band,
		Channel:        *r.Channel,
		SSID:           r.SSID,
		LinkSpeedMbps:  r.LinkSpeedMbps,
		LatencyMs:      r.LatencyMs,
		PacketLossRate: r.PacketLossRate,
		BSSID:          r.BSSID,
	}
}

type RoomPerformanceRequest struct {
	HouseID        string   `json:"house_id" binding:"required"`
	RoomName       string   `json:"room_name" binding:"required"`
	GamingScore    *int     `json:"gaming_score" binding:"required"`
	StreamingScore *int     `json:"streaming_score" binding:"required"`
	VideoCallScore *int     `json:"video_call_score" binding:"required"`
	OverallRating  *int     `json:"overall_rating" binding:"required"`
	AvgSignalDbm   *int     `json:"avg_signal_dbm" binding:"required"`
	AvgSpeedMbps   *int     `json:"avg_speed_mbps" binding:"required"`
	AvgLatencyMs   *int     `json:"avg_latency_ms" binding:"required"`
	PacketLossAvg  *float64 `json:"packet_loss_avg" binding:"required"`
}

func (r RoomPerformanceRequest) payload() v1.Payload {
	return v1.RoomPerformanceCalculated{
		HouseID:        r.HouseID,
		RoomName:       r.RoomName,
		GamingScore:    *r.GamingScore,
		StreamingScore: *r.StreamingScore,
		VideoCallScore: *r.VideoCallScore,
		OverallRating:  *r.OverallRating,
		AvgSignalDbm:   *r.AvgSignalDbm,
		AvgSpeedMbps:   *r.AvgSpeedMbps,
		AvgLatencyMs:   *r.AvgLatencyMs,
		PacketLossAvg:  *r.PacketLossAvg,
	}
}

type RoomRecommendationRequest struct {
	Action   v1.Action   `json:"action" binding:"required,oneof=NONE CHECK_NODE MESH_NEEDED EXTENDER OPTIMIZE"`
	Text     string      `json:"text" binding:"required"`
	Severity v1.Severity `json:"severity" binding:"required,oneof=INFO WARNING CRITICAL"`
}

type RecommendationRequest struct {
	HouseID                  string                               `json:"house_id" binding:"required"`
	RoomRecommendations      map[string]RoomRecommendationRequest `json:"room_recommendations" binding:"required,dive"`
	GlobalRecommendationText string                               `json:"global_recommendation_text" binding:"required"`
	GlobalSeverity           v1.Severity                          `json:"global_severity" binding:"required,oneof=INFO WARNING CRITICAL"`
}

func (r RecommendationRequest) payload() v1.Payload {
	rooms := make(map[string]v1.RoomRecommendation, len(r.RoomRecommendations))
	for room, rec := range r.RoomRecommendations {
		rooms[room] = v1.RoomRecommendation{
			Action:   rec.Action,
			Text:     rec.Text,
			Severity: rec.Severity,
		}
	}
	return v1.PerformanceRecommendationGenerated{
		HouseID:                  r.HouseID,
		RoomRecommendations:      rooms,
		GlobalRecommendationText: r.GlobalRecommendationText,
		GlobalSeverity:           r.GlobalSeverity,
	}
}
