package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// ErrorMessages are the outward-facing messages an endpoint uses for its two
// failure classes. Upstream detail never reaches the caller.
type ErrorMessages struct {
	BadRequest string
	Failure    string
}

func RespondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, ErrorResponse{
		Error:   message,
		TraceID: c.GetString(TraceIDKey),
	})
}

func HandleServiceError(c *gin.Context, err error, messages ErrorMessages) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		RespondError(c, http.StatusBadRequest, messages.BadRequest)
	case errors.Is(err, ErrTooManyDays):
		RespondError(c, http.StatusBadRequest, "Too many days requested")
	case errors.Is(err, ErrRateLimited):
		RespondError(c, http.StatusTooManyRequests, "Too many requests")
	default:
		RespondError(c, http.StatusInternalServerError, messages.Failure)
	}
}
