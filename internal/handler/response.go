package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/auth"
	"minerals/backend/internal/service"
	"minerals/backend/internal/validate"
	"minerals/backend/pkg/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

type successResponse struct {
	Success bool `json:"success"`
}

type urlResponse struct {
	URL string `json:"url"`
}

// Error writes the {"error": msg} body used by every failing endpoint.
func Error(c echo.Context, status int, msg string) error {
	return c.JSON(status, errorResponse{Error: msg})
}

func writeServiceError(c echo.Context, err error) error {
	var verr *validate.Error
	switch {
	case errors.As(err, &verr):
		return Error(c, http.StatusBadRequest, verr.Message)
	case errors.Is(err, service.ErrAlreadySubscribed):
		return Error(c, http.StatusBadRequest, "You already have an active Pro subscription")
	case errors.Is(err, service.ErrInvalid):
		return Error(c, http.StatusBadRequest, "invalid request")
	case errors.Is(err, service.ErrUnauthorized),
		errors.Is(err, auth.ErrMissingToken),
		errors.Is(err, auth.ErrInvalidToken):
		return Error(c, http.StatusUnauthorized, "unauthorized")
	case errors.Is(err, service.ErrProRequired):
		return Error(c, http.StatusForbidden, "Pro subscription required")
	case errors.Is(err, service.ErrForbidden):
		return Error(c, http.StatusForbidden, "forbidden")
	case errors.Is(err, service.ErrNotFound):
		return Error(c, http.StatusNotFound, "resource not found")
	case errors.Is(err, service.ErrConflict):
		return Error(c, http.StatusConflict, "conflict")
	case errors.Is(err, service.ErrBillingUnavailable):
		return Error(c, http.StatusServiceUnavailable, "billing unavailable")
	default:
		req := c.Request()
		logger.Error("request failed", "module", "handler", "action", "request", "resource", "http", "result", "failed",
			"method", req.Method, "path", c.Path(), "request_id", c.Response().Header().Get(echo.HeaderXRequestID), "error", err)
		return Error(c, http.StatusInternalServerError, "internal error")
	}
}

func idToString(id int64) string {
	return strconv.FormatInt(id, 10)
}

// int64PtrToString renders epoch millis as a decimal string so clients never
// round them through a float.
func int64PtrToString(v *int64) *string {
	if v == nil {
		return nil
	}
	s := strconv.FormatInt(*v, 10)
	return &s
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}

func formatTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.UTC().Format(time.RFC3339)
	return &s
}
