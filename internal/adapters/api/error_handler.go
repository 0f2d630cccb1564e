package api

import (
	"errors"
	"net/http"

	"log/slog"

	"github.com/gin-gonic/gin"
	"weatherview.app/internal/core/weather"
	"weatherview.app/internal/ports"
	errorspkg "weatherview.app/pkg/errors"
)

// ErrorResponse represents an error message structure for API responses.
// Display is set when the rejected request was a lookup, so a view can show it.
type ErrorResponse struct {
	Error   string                `json:"error"`
	Display *weather.DisplayModel `json:"display,omitempty"`
}

// handleError handles different types of application errors
func (s *HTTPServerAdapter) handleError(c *gin.Context, err error) {
	var appErr *errorspkg.AppError
	var statusCode int
	var message string

	if !errors.As(err, &appErr) {
		slog.Error("Unhandled error", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
		return
	}

	switch appErr.Type {
	case errorspkg.ValidationError:
		statusCode = http.StatusBadRequest
		message = appErr.Message
	case errorspkg.NotFoundError:
		statusCode = http.StatusNotFound
		message = appErr.Message
	case errorspkg.CanceledError:
		statusCode = http.StatusServiceUnavailable
		message = "Service is shutting down"
	case errorspkg.ExternalAPIError, errorspkg.ParseError:
		statusCode = http.StatusBadGateway
		message = "External service error"
	default:
		statusCode = http.StatusInternalServerError
		message = "Internal server error"
	}

	c.JSON(statusCode, ErrorResponse{Error: message})
}

// rejectLookup answers an invalid lookup request with the bad request display
func (s *HTTPServerAdapter) rejectLookup(c *gin.Context, err error) {
	slog.Debug("Rejected lookup request", "error", err)
	display := s.failureView.Render(nil, errorspkg.NewValidationError("invalid city"))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: "city parameter is required", Display: &display})
}

var failureStatus = map[string]int{
	ports.FailureBadRequest.String():         http.StatusBadRequest,
	ports.FailureNotFound.String():           http.StatusNotFound,
	ports.FailureTimeout.String():            http.StatusGatewayTimeout,
	ports.FailureGatewayTimeout.String():     http.StatusGatewayTimeout,
	ports.FailureUnauthorized.String():       http.StatusServiceUnavailable,
	ports.FailureForbidden.String():          http.StatusServiceUnavailable,
	ports.FailureServiceUnavailable.String(): http.StatusServiceUnavailable,
}

// statusForDisplay maps a rendered lookup to the HTTP status of the sync endpoint
func statusForDisplay(model weather.DisplayModel) int {
	if model.OK {
		return http.StatusOK
	}
	if status, ok := failureStatus[model.Failure]; ok {
		return status
	}
	if model.Failure == ports.FailureUnknown.String() {
		return http.StatusInternalServerError
	}
	return http.StatusBadGateway
}

// getHealth handles GET /api/health requests
func (s *HTTPServerAdapter) getHealth(c *gin.Context) {
	results := s.healthChecker.CheckAll(c.Request.Context())

	status := http.StatusOK
	overall := "healthy"
	for _, result := range results {
		if result.Status != "healthy" {
			status = http.StatusServiceUnavailable
			overall = "unhealthy"
			break
		}
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"components": results,
	})
}
