package ingestion

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	httperr "github.com/aevon-lab/homewifi/internal/core/errors"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/aevon-lab/homewifi/internal/core/storage/memory"
	storagemocks "github.com/aevon-lab/homewifi/internal/mocks/storage"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const signalBody = `{
	"house_id": "ev_001_studio",
	"room": "Salon",
	"rssi": -40,
	"device_id": "iPhone 14 Pro",
	"band": "5GHz",
	"channel": 36,
	"ssid": "Wifi_Ali"
}`

func newRouter(svc *Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	svc.RegisterRoutes(r)
	return r
}

func post(r http.Handler, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func decodeError(t *testing.T, resp *httptest.ResponseRecorder) httperr.ErrorResponse {
	t.Helper()
	var errResp httperr.ErrorResponse
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &errResp))
	return errResp
}

func TestRegisterHouseHandler_Success(t *testing.T) {
	var appended *v1.Event
	mockStore := storagemocks.NewEventStore(t)
	mockStore.EXPECT().
		Append(mock.Anything, mock.MatchedBy(func(e *v1.Event) bool {
			return e.Type == v1.TypeHouseRegistered && e.AggregateID == "ev_001_studio"
		})).
		Run(func(ctx context.Context, event *v1.Event) { appended = event }).
		Return(storage.Position(1), nil).
		Once()

	r := newRouter(NewService(mockStore, 1))
	resp := post(r, "/api/register/house/", `{
		"house_id": "ev_001_studio",
		"house_type": "Stüdyo Daire",
		"owner_name": "Ali Veli",
		"area_sqm": 45
	}`)

	require.Equal(t, http.StatusCreated, resp.Code)
	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "house registered", result["status"])
	require.Equal(t, appended.ID, result["event_id"])

	house := appended.Payload.(v1.HouseRegistered)
	require.Equal(t, 45, house.AreaSqm)
	require.NotNil(t, house.Rooms)
	require.Empty(t, house.Rooms)
}

func TestCaptureSignalHandler_AppliesDefaultsAndStores(t *testing.T) {
	store := memory.NewStore()
	r := newRouter(NewService(store, 1))

	resp := post(r, "/api/ingest/signal/", signalBody)
	require.Equal(t, http.StatusCreated, resp.Code)

	page, err := store.RecentSignals(context.Background(), storage.SignalQuery{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)

	sig := page.Results[0]
	require.Equal(t, -40, sig.RSSI)
	require.Equal(t, v1.Band5GHz, sig.Band)
	require.Zero(t, sig.LinkSpeedMbps)
	require.Zero(t, sig.LatencyMs)
	require.Zero(t, sig.PacketLossRate)
	require.Empty(t, sig.BSSID)
}

func TestCaptureSignalHandler_AcceptsOrphanedTelemetry(t *testing.T) {
	store := memory.NewStore()
	r := newRouter(NewService(store, 1))

	resp := post(r, "/api/ingest/signal/", strings.Replace(signalBody, "ev_001_studio", "never-registered", 1))
	require.Equal(t, http.StatusCreated, resp.Code)
	require.Equal(t, 1, store.Len())
}

func TestIngestHandlers_ValidationFailures(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		body      string
		wantField string
		wantTag   string
	}{
		{
			name:      "unknown band",
			path:      "/api/ingest/signal/",
			body:      strings.Replace(signalBody, `"5GHz"`, `"6GHz"`, 1),
			wantField: "band",
			wantTag:   "oneof",
		},
		{
			name:      "missing rssi",
			path:      "/api/ingest/signal/",
			body:      strings.Replace(signalBody, `"rssi": -40,`, "", 1),
			wantField: "rssi",
			wantTag:   "required",
		},
		{
			name:      "house id too long",
			path:      "/api/ingest/signal/",
			body:      strings.Replace(signalBody, "ev_001_studio", strings.Repeat("x", 101), 1),
			wantField: "house_id",
			wantTag:   "max",
		},
		{
			name:      "missing owner",
			path:      "/api/register/house/",
			body:      `{"house_id":"h1","house_type":"Villa","area_sqm":120}`,
			wantField: "owner_name",
			wantTag:   "required",
		},
		{
			name:      "missing packet loss average",
			path:      "/api/ingest/metrics/",
			body:      `{"house_id":"h1","room_name":"Salon","gaming_score":1,"streaming_score":1,"video_call_score":1,"overall_rating":1,"avg_signal_dbm":-50,"avg_speed_mbps":100,"avg_latency_ms":10}`,
			wantField: "packet_loss_avg",
			wantTag:   "required",
		},
		{
			name:      "unknown room action",
			path:      "/api/ingest/recommendations/",
			body:      `{"house_id":"h1","room_recommendations":{"Salon":{"action":"REBOOT","text":"x","severity":"INFO"}},"global_recommendation_text":"x","global_severity":"INFO"}`,
			wantField: "room_recommendations[Salon].action",
			wantTag:   "oneof",
		},
		{
			name:      "unknown global severity",
			path:      "/api/ingest/recommendations/",
			body:      `{"house_id":"h1","room_recommendations":{},"global_recommendation_text":"x","global_severity":"PANIC"}`,
			wantField: "global_severity",
			wantTag:   "oneof",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// No Append expectation: a rejected request must never reach the store.
			r := newRouter(NewService(storagemocks.NewEventStore(t), 1))

			resp := post(r, tc.path, tc.body)
			require.Equal(t, http.StatusBadRequest, resp.Code)

			errResp := decodeError(t, resp)
			require.Equal(t, httperr.HttpValidationError, errResp.ErrorType)
			details, ok := errResp.Details.(map[string]interface{})
			require.True(t, ok, "details should be a field map, got %T", errResp.Details)
			require.Equal(t, tc.wantTag, details[tc.wantField])
		})
	}
}

func TestIngestHandler_InvalidJSON(t *testing.T) {
	r := newRouter(NewService(storagemocks.NewEventStore(t), 1))

	resp := post(r, "/api/ingest/signal/", "not json")
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, httperr.HttpInvalidJsonError, decodeError(t, resp).ErrorType)

	resp = post(r, "/api/ingest/signal/", strings.Replace(signalBody, "-40", `"weak"`, 1))
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.Equal(t, httperr.HttpInvalidJsonError, decodeError(t, resp).ErrorType)
}

func TestIngestHandler_BodyTooLarge(t *testing.T) {
	r := newRouter(NewService(storagemocks.NewEventStore(t), 1))

	huge := `{"house_id":"` + strings.Repeat("x", 2<<20) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/register/house/", bytes.NewReader([]byte(huge)))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, resp.Code)
}

func TestIngestHandler_StorageUnavailable(t *testing.T) {
	mockStore := storagemocks.NewEventStore(t)
	mockStore.EXPECT().
		Append(mock.Anything, mock.Anything).
		Return(storage.Position(0), &storage.Error{Op: "append", Err: errors.New("connection refused")}).
		Once()

	r := newRouter(NewService(mockStore, 1))
	resp := post(r, "/api/ingest/signal/", signalBody)

	require.Equal(t, http.StatusServiceUnavailable, resp.Code)
	require.Equal(t, httperr.HttpStorageUnavailableError, decodeError(t, resp).ErrorType)
}

func TestRoomPerformanceHandler_AcceptsZeroScores(t *testing.T) {
	store := memory.NewStore()
	r := newRouter(NewService(store, 1))

	resp := post(r, "/api/ingest/metrics/", `{
		"house_id": "h1", "room_name": "Banyo",
		"gaming_score": 0, "streaming_score": 0, "video_call_score": 0, "overall_rating": 0,
		"avg_signal_dbm": -85, "avg_speed_mbps": 0, "avg_latency_ms": 0, "packet_loss_avg": 0
	}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	rooms, err := store.RoomMetrics(context.Background(), "h1")
	require.NoError(t, err)
	require.Len(t, rooms, 1)
	require.Equal(t, -85, rooms[0].AvgSignalDbm)
}

func TestRecommendationHandler_Success(t *testing.T) {
	store := memory.NewStore()
	r := newRouter(NewService(store, 1))

	resp := post(r, "/api/ingest/recommendations/", `{
		"house_id": "h1",
		"room_recommendations": {
			"Salon": {"action": "NONE", "text": "Sinyal mükemmel.", "severity": "INFO"},
			"Banyo": {"action": "MESH_NEEDED", "text": "Mesh cihazı önerilir.", "severity": "CRITICAL"}
		},
		"global_recommendation_text": "Bazı odalarda kapsama sorunu var.",
		"global_severity": "CRITICAL"
	}`)
	require.Equal(t, http.StatusCreated, resp.Code)

	var result map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &result))
	require.Equal(t, "recommendation saved", result["status"])
	require.NotEmpty(t, result["event_id"])

	rec, found, err := store.LatestRecommendation(context.Background(), "h1")
	require.NoError(t, err)
	require.True(t, found)
	require.Equal(t, v1.ActionMeshNeeded, rec.RoomRecommendations["Banyo"].Action)
	require.Equal(t, v1.SeverityCritical, rec.GlobalSeverity)
}

func TestService_AppendErrorIsWrapped(t *testing.T) {
	cause := &storage.Error{Op: "append", Err: errors.New("disk full")}
	mockStore := storagemocks.NewEventStore(t)
	mockStore.EXPECT().Append(mock.Anything, mock.Anything).Return(storage.Position(0), cause).Once()

	_, err := NewService(mockStore, 1).RegisterHouse(context.Background(), v1.HouseRegistered{HouseID: "h1"})
	require.ErrorIs(t, err, cause)
	require.True(t, storage.IsUnavailable(err))
	require.Contains(t, err.Error(), "append HouseRegistered")
}
