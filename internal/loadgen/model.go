package loadgen

import (
	"fmt"
	"math/rand/v2"
	"sort"
	"strings"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	"github.com/shopspring/decimal"
)

const (
	minRSSI = -95
	maxRSSI = -30

	rssiNoise = 7

	fiveGHzThreshold = -65 // rooms above this are served on 5GHz
)

// House is one simulated household with its own random source.
type House struct {
	ID       string
	Template HouseTemplate
	Owner    string
	AreaSqm  int
	BSSIDs   []string

	rng *rand.Rand
}

// NewHouse builds house number index (0-based) from a template.
// The same seed and index always produce the same house and the same samples.
func NewHouse(t *Templates, tmpl HouseTemplate, index int, seed int64) *House {
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(index)))
	id := fmt.Sprintf("ev_%03d_%s", index+1, tmpl.Slug())
	return &House{
		ID:       id,
		Template: tmpl,
		Owner:    pick(rng, t.Names) + " " + pick(rng, t.Surnames),
		AreaSqm:  between(rng, tmpl.AreaMin, tmpl.AreaMax),
		BSSIDs:   accessPoints(id),
		rng:      rng,
	}
}

// Registration is the HouseRegistered payload for this house.
func (h *House) Registration() v1.HouseRegistered {
	return v1.HouseRegistered{
		HouseID:   h.ID,
		HouseType: h.Template.Type,
		OwnerName: h.Owner,
		AreaSqm:   h.AreaSqm,
		Rooms:     h.Template.RoomNames(),
	}
}

// SSID is derived from the owner's first name.
func (h *House) SSID() string {
	first, _, _ := strings.Cut(h.Owner, " ")
	return "Wifi_" + first
}

// NextSignal samples one measurement in a random room.
func (h *House) NextSignal(t *Templates) v1.WifiSignalCaptured {
	room := h.Template.Rooms[h.rng.IntN(len(h.Template.Rooms))]

	rssi := clampInt(room.BaseRSSI+between(h.rng, -rssiNoise, rssiNoise), minRSSI, maxRSSI)
	band := BandFor(rssi)
	speed, latency, loss := h.linkQuality(rssi, band)

	return v1.WifiSignalCaptured{
		HouseID:        h.ID,
		Room:           room.Name,
		RSSI:           rssi,
		DeviceID:       pick(h.rng, t.Devices),
		Band:           band,
		Channel:        pick(h.rng, t.Channels),
		SSID:           h.SSID(),
		LinkSpeedMbps:  speed,
		LatencyMs:      latency,
		PacketLossRate: loss,
		BSSID:          pick(h.rng, h.BSSIDs),
	}
}

// BandFor picks the radio band a device would settle on at this signal level.
func BandFor(rssi int) v1.Band {
	if rssi > fiveGHzThreshold {
		return v1.Band5GHz
	}
	return v1.Band24GHz
}

// SignalQuality maps rssi onto [0, 1]: -100 dBm is 0, -30 dBm and above is 1.
func SignalQuality(rssi int) float64 {
	q := float64(100+rssi) / 70
	if q < 0 {
		return 0
	}
	if q > 1 {
		return 1
	}
	return q
}

// linkQuality derives link speed, latency and packet loss from the signal level.
func (h *House) linkQuality(rssi int, band v1.Band) (speed, latency int, loss float64) {
	maxSpeed := 300.0
	if band == v1.Band5GHz {
		maxSpeed = 866
	}
	speed = int(maxSpeed * SignalQuality(rssi) * uniform(h.rng, 0.7, 1.0))

	latency = between(h.rng, 5, 15)
	switch {
	case rssi < -75:
		latency += between(h.rng, 50, 250)
	case rssi < -60:
		latency += between(h.rng, 20, 60)
	}

	switch {
	case rssi < -80:
		loss = uniform(h.rng, 2.0, 15.0)
	case rssi < -70:
		loss = uniform(h.rng, 0.1, 3.0)
	}
	loss, _ = decimal.NewFromFloat(loss).Round(2).Float64()
	return speed, latency, loss
}

// RoomStats accumulates the samples seen for one room.
type RoomStats struct {
	samples int
	rssi    decimal.Decimal
	latency decimal.Decimal
	loss    decimal.Decimal
	speed   decimal.Decimal
}

func (s *RoomStats) Add(sig v1.WifiSignalCaptured) {
	s.samples++
	s.rssi = s.rssi.Add(decimal.NewFromInt(int64(sig.RSSI)))
	s.latency = s.latency.Add(decimal.NewFromInt(int64(sig.LatencyMs)))
	s.loss = s.loss.Add(decimal.NewFromFloat(sig.PacketLossRate))
	s.speed = s.speed.Add(decimal.NewFromInt(int64(sig.LinkSpeedMbps)))
}

func (s *RoomStats) Samples() int {
	return s.samples
}

// Averages returns integer means truncated toward zero and the loss mean rounded to 2 places.
func (s *RoomStats) Averages() (rssi, latency, speed int, loss float64) {
	if s.samples == 0 {
		return 0, 0, 0, 0
	}
	n := decimal.NewFromInt(int64(s.samples))
	rssi = int(s.rssi.Div(n).Truncate(0).IntPart())
	latency = int(s.latency.Div(n).Truncate(0).IntPart())
	speed = int(s.speed.Div(n).Truncate(0).IntPart())
	loss, _ = s.loss.Div(n).Round(2).Float64()
	return rssi, latency, speed, loss
}

// Scorecard grades a room from its collected samples.
func (h *House) Scorecard(room string, stats *RoomStats) v1.RoomPerformanceCalculated {
	rssi, latency, speed, loss := stats.Averages()

	var gaming int
	switch {
	case latency < 30 && loss < 1:
		gaming = between(h.rng, 90, 100)
	case latency < 60:
		gaming = between(h.rng, 70, 89)
	case latency < 100:
		gaming = between(h.rng, 40, 69)
	default:
		gaming = between(h.rng, 10, 39)
	}

	var streaming int
	switch {
	case rssi > -60:
		streaming = between(h.rng, 90, 100)
	case rssi > -75:
		streaming = between(h.rng, 70, 89)
	default:
		streaming = between(h.rng, 30, 60)
	}

	video := (gaming+streaming)/2 + between(h.rng, -5, 5)

	return v1.RoomPerformanceCalculated{
		HouseID:        h.ID,
		RoomName:       room,
		GamingScore:    gaming,
		StreamingScore: streaming,
		VideoCallScore: video,
		OverallRating:  (gaming + streaming + video) / 3,
		AvgSignalDbm:   rssi,
		AvgSpeedMbps:   speed,
		AvgLatencyMs:   latency,
		PacketLossAvg:  loss,
	}
}

// RecommendFor suggests a remediation for a room with the given average signal.
func RecommendFor(tmpl HouseTemplate, rssi int) v1.RoomRecommendation {
	switch {
	case rssi > fiveGHzThreshold:
		return v1.RoomRecommendation{Action: v1.ActionNone, Text: "Bağlantı kalitesi mükemmel.", Severity: v1.SeverityInfo}
	case rssi < -80 && tmpl.Mesh:
		return v1.RoomRecommendation{Action: v1.ActionCheckNode, Text: "Mesh düğümü arızalı olabilir, kontrol edin.", Severity: v1.SeverityCritical}
	case rssi < -80:
		return v1.RoomRecommendation{Action: v1.ActionMeshNeeded, Text: "Sinyal kritik seviyede. Mesh sistemi veya kablolu AP şart.", Severity: v1.SeverityCritical}
	case rssi < -70:
		return v1.RoomRecommendation{Action: v1.ActionExtender, Text: "Sinyal zayıf. Menzil genişletici (Extender) önerilir.", Severity: v1.SeverityWarning}
	default:
		return v1.RoomRecommendation{Action: v1.ActionOptimize, Text: "Kanal çakışması olabilir, modem ayarlarını kontrol edin.", Severity: v1.SeverityInfo}
	}
}

// Summarize rolls room advice up into a whole-house recommendation.
// Any critical room makes the house critical; otherwise any warning makes it a warning.
func Summarize(houseID string, rooms map[string]v1.RoomRecommendation) v1.PerformanceRecommendationGenerated {
	var critical []string
	warning := false
	for name, rec := range rooms {
		switch rec.Severity {
		case v1.SeverityCritical:
			critical = append(critical, name)
		case v1.SeverityWarning:
			warning = true
		}
	}
	sort.Strings(critical)

	out := v1.PerformanceRecommendationGenerated{
		HouseID:             houseID,
		RoomRecommendations: rooms,
	}
	switch {
	case len(critical) > 0:
		out.GlobalRecommendationText = fmt.Sprintf(
			"Dikkat! %s odalarında ciddi kapsama sorunu tespit edildi. Acil optimizasyon gerekli.",
			strings.Join(critical, ", "))
		out.GlobalSeverity = v1.SeverityCritical
	case warning:
		out.GlobalRecommendationText = "Genel performans iyi ancak bazı kör noktalar mevcut. İyileştirme yapılabilir."
		out.GlobalSeverity = v1.SeverityWarning
	default:
		out.GlobalRecommendationText = "Tebrikler! Ev genelinde Wi-Fi performansı mükemmel seviyede."
		out.GlobalSeverity = v1.SeverityInfo
	}
	return out
}

// accessPoints returns three stable BSSIDs for a house.
func accessPoints(houseID string) []string {
	sum := 0
	for _, r := range houseID {
		sum += int(r)
	}
	aps := make([]string, 3)
	for i := range aps {
		aps[i] = fmt.Sprintf("00:AA:BB:%02x:%02x:FF", sum%255, i+10)
	}
	return aps
}

func pick[T any](rng *rand.Rand, items []T) T {
	return items[rng.IntN(len(items))]
}

// between returns a uniform int in [lo, hi].
func between(rng *rand.Rand, lo, hi int) int {
	return lo + rng.IntN(hi-lo+1)
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
