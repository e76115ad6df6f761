package ingestion

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"reflect"
	"strings"
	"sync"

	v1 "github.com/aevon-lab/homewifi/internal/api/v1"
	httperr "github.com/aevon-lab/homewifi/internal/core/errors"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const (
	msgReadBodyFailed   = "Failed to read request body"
	msgInvalidJSON      = "Invalid JSON body"
	msgValidationFailed = "Request validation failed"
	msgPersistFailed    = "Failed to persist event"
	msgStorageDown      = "Event store unavailable"
)

// ingestionError carries the structured HTTP error shape from a helper back to the orchestrator.
// Helpers return this instead of writing to gin.Context directly, keeping them decoupled from HTTP.
type ingestionError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *ingestionError) Error() string {
	return e.message
}

var registerTagNames sync.Once

// useJSONFieldNames makes validation errors report json keys instead of Go field names.
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
	})
}

// payloadRequest is a bound request body that knows which event it becomes.
type payloadRequest interface {
	payload() v1.Payload
}

func (s *Service) RegisterHouseHandler(c *gin.Context) {
	var req RegisterHouseRequest
	s.handle(c, &req, "house registered", func(ctx context.Context) (string, error) {
		return s.RegisterHouse(ctx, req.payload().(v1.HouseRegistered))
	})
}

func (s *Service) CaptureSignalHandler(c *gin.Context) {
	var req CaptureSignalRequest
	s.handle(c, &req, "success", func(ctx context.Context) (string, error) {
		return s.CaptureSignal(ctx, req.payload().(v1.WifiSignalCaptured))
	})
}

func (s *Service) RoomPerformanceHandler(c *gin.Context) {
	var req RoomPerformanceRequest
	s.handle(c, &req, "metrics saved", func(ctx context.Context) (string, error) {
		return s.RecordRoomPerformance(ctx, req.payload().(v1.RoomPerformanceCalculated))
	})
}

func (s *Service) RecommendationHandler(c *gin.Context) {
	var req RecommendationRequest
	s.handle(c, &req, "recommendation saved", func(ctx context.Context) (string, error) {
		return s.RecordRecommendation(ctx, req.payload().(v1.PerformanceRecommendationGenerated))
	})
}

// handle binds the body into req, runs record and writes 201 with the new event id.
func (s *Service) handle(c *gin.Context, req payloadRequest, status string, record func(context.Context) (string, error)) {
	if ierr := s.bindBody(c, req); ierr != nil {
		writeError(c, ierr)
		return
	}

	eventID, err := record(c.Request.Context())
	if err != nil {
		writeError(c, persistError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"status":   status,
		"event_id": eventID,
	})
}

// bindBody reads at most maxBodySizeBytes and binds the JSON body with gin's validator.
func (s *Service) bindBody(c *gin.Context, req payloadRequest) *ingestionError {
	// Enforce maximum body size to prevent OOM attacks
	limitedBody := io.LimitReader(c.Request.Body, s.maxBodySizeBytes+1) // +1 to detect oversized requests

	bodyBytes, err := io.ReadAll(limitedBody)
	if err != nil {
		slog.Error("Failed to read request body", "error", err)
		return &ingestionError{
			statusCode: http.StatusInternalServerError,
			errorType:  httperr.HttpInternalError,
			message:    msgReadBodyFailed,
		}
	}

	if int64(len(bodyBytes)) > s.maxBodySizeBytes {
		slog.Warn("Request body exceeds maximum size", "size", len(bodyBytes), "max", s.maxBodySizeBytes)
		return &ingestionError{
			statusCode: http.StatusRequestEntityTooLarge,
			errorType:  httperr.HttpInvalidJsonError,
			message:    "Request body exceeds maximum allowed size",
			details: map[string]interface{}{
				"max_size_mb": s.maxBodySizeBytes >> 20,
			},
		}
	}

	c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))

	if err := c.ShouldBindJSON(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			slog.Warn("Request validation failed", "path", c.FullPath(), "error", err)
			return &ingestionError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpValidationError,
				message:    msgValidationFailed,
				details:    fieldErrors(verrs),
			}
		}

		slog.Warn("Invalid JSON body received", "error", err, "payload_size", len(bodyBytes))
		return &ingestionError{
			statusCode: http.StatusBadRequest,
			errorType:  httperr.HttpInvalidJsonError,
			message:    msgInvalidJSON,
			details:    err.Error(),
		}
	}

	return nil
}

// fieldErrors maps each failing field to the rule it broke, e.g. {"band": "oneof"}.
func fieldErrors(verrs validator.ValidationErrors) map[string]string {
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		out[jsonFieldPath(fe)] = fe.Tag()
	}
	return out
}

// jsonFieldPath drops the request struct name from the namespace: "CaptureSignalRequest.band" -> "band".
func jsonFieldPath(fe validator.FieldError) string {
	if _, path, ok := strings.Cut(fe.Namespace(), "."); ok {
		return path
	}
	return fe.Field()
}

func persistError(err error) *ingestionError {
	if storage.IsUnavailable(err) {
		slog.Error("Event store unavailable", "error", err)
		return &ingestionError{
			statusCode: http.StatusServiceUnavailable,
			errorType:  httperr.HttpStorageUnavailableError,
			message:    msgStorageDown,
		}
	}

	slog.Error("Failed to persist event", "error", err)
	return &ingestionError{
		statusCode: http.StatusInternalServerError,
		errorType:  httperr.HttpInternalError,
		message:    msgPersistFailed,
	}
}

// writeError serializes an ingestionError as the JSON HTTP response.
func writeError(c *gin.Context, err *ingestionError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
