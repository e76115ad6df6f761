package loadgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	apierrors "github.com/aevon-lab/homewifi/internal/core/errors"
)

const (
	pathRegisterHouse   = "/api/register/house/"
	pathIngestSignal    = "/api/ingest/signal/"
	pathIngestMetrics   = "/api/ingest/metrics/"
	pathIngestRecommend = "/api/ingest/recommendations/"
)

// Client posts generated events to the ingestion API.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New("target url is required")
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Path       string
	StatusCode int
	ErrorType  string
	Message    string
}

func (e *StatusError) Error() string {
	if e.ErrorType != "" {
		return fmt.Sprintf("POST %s: %d %s: %s", e.Path, e.StatusCode, e.ErrorType, e.Message)
	}
	return fmt.Sprintf("POST %s: %d", e.Path, e.StatusCode)
}

func (c *Client) RegisterHouse(ctx context.Context, h v1.HouseRegistered) error {
	return c.post(ctx, pathRegisterHouse, h)
}

func (c *Client) CaptureSignal(ctx context.Context, s v1.WifiSignalCaptured) error {
	return c.post(ctx, pathIngestSignal, s)
}

func (c *Client) RecordRoomPerformance(ctx context.Context, m v1.RoomPerformanceCalculated) error {
	return c.post(ctx, pathIngestMetrics, m)
}

func (c *Client) RecordRecommendation(ctx context.Context, r v1.PerformanceRecommendationGenerated) error {
	return c.post(ctx, pathIngestRecommend, r)
}

func (c *Client) post(ctx context.Context, path string, body interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("POST %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	statusErr := &StatusError{Path: path, StatusCode: resp.StatusCode}
	var apiErr apierrors.ErrorResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&apiErr); err == nil {
		statusErr.ErrorType = apiErr.ErrorType
		statusErr.Message = apiErr.Message
	}
	return statusErr
}
