package projection

import (
	"errors"
	"log/slog"
	"net/http"

	httperr "github.com/aevon-lab/homewifi/internal/core/errors"
	"github.com/aevon-lab/homewifi/internal/core/storage"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all projection API routes on the given router.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.GET("/api/houses/", s.HandleListHouses)
	r.GET("/api/houses/options/", s.HandleListHouseOptions)
	r.GET("/api/signals/", s.HandleListSignals)
	r.GET("/api/houses/:house_id/metrics/", s.HandleRoomMetrics)
	r.GET("/api/houses/:house_id/recommendations/", s.HandleLatestRecommendation)
}

func (s *Service) HandleListHouses(c *gin.Context) {
	houses, err := s.ListHouses(c.Request.Context())
	if err != nil {
		writeQueryError(c, err, "Failed to list houses")
		return
	}
	c.JSON(http.StatusOK, houses)
}

func (s *Service) HandleListHouseOptions(c *gin.Context) {
	options, err := s.ListHouseOptions(c.Request.Context())
	if err != nil {
		writeQueryError(c, err, "Failed to list houses")
		return
	}
	c.JSON(http.StatusOK, options)
}

// HandleListSignals handles GET /api/signals/
// Query parameters: limit, house_id, cursor
func (s *Service) HandleListSignals(c *gin.Context) {
	var query SignalListRequest
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query parameters",
			Details:   err.Error(),
		})
		return
	}

	resp, err := s.ListRecentSignals(c.Request.Context(), query)
	if err != nil {
		writeQueryError(c, err, "Failed to list signals")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// HandleRoomMetrics handles GET /api/houses/:house_id/metrics/
func (s *Service) HandleRoomMetrics(c *gin.Context) {
	rooms, err := s.GetRoomMetrics(c.Request.Context(), c.Param("house_id"))
	if err != nil {
		writeQueryError(c, err, "Failed to load room metrics")
		return
	}
	c.JSON(http.StatusOK, rooms)
}

// HandleLatestRecommendation handles GET /api/houses/:house_id/recommendations/
// A house without recommendations answers 204 with an empty body.
func (s *Service) HandleLatestRecommendation(c *gin.Context) {
	rec, err := s.GetLatestRecommendation(c.Request.Context(), c.Param("house_id"))
	if err != nil {
		writeQueryError(c, err, "Failed to load recommendation")
		return
	}
	if rec == nil {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, rec)
}

func writeQueryError(c *gin.Context, err error, message string) {
	switch {
	case errors.Is(err, ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, httperr.ErrorResponse{
			ErrorType: httperr.HttpInvalidQueryError,
			Message:   "Invalid query",
			Details:   err.Error(),
		})
	case storage.IsUnavailable(err):
		slog.Error(message, "error", err, "path", c.FullPath())
		c.JSON(http.StatusServiceUnavailable, httperr.ErrorResponse{
			ErrorType: httperr.HttpStorageUnavailableError,
			Message:   message,
		})
	default:
		slog.Error(message, "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, httperr.ErrorResponse{
			ErrorType: httperr.HttpInternalError,
			Message:   message,
			Details:   err.Error(),
		})
	}
}
