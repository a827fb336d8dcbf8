package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"strconv"
	"strings"
	"time"

	"minerals/backend/pkg/sanitizer"
)

// Error is a non-2xx API response.
//
// Message is the server's {"error"} text when the body was JSON. For any
// other body (an HTML gateway page, a proxy's plain-text error) Message is
// synthesized from the status and Detail holds a short plain-text summary of
// what came back.
type Error struct {
	Status     int
	Message    string
	RetryAfter time.Duration
	Detail     string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("api: %s (%s)", e.Message, e.Detail)
	}
	return "api: " + e.Message
}

func (e *Error) RateLimited() bool { return e.Status == http.StatusTooManyRequests }

func (e *Error) Unauthorized() bool { return e.Status == http.StatusUnauthorized }

func (e *Error) NotFound() bool { return e.Status == http.StatusNotFound }

// AsError unwraps err into an *Error.
func AsError(err error) (*Error, bool) {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

func genericMessage(status int) string {
	return fmt.Sprintf("request failed with status %d", status)
}

func parseError(resp *http.Response, body []byte) *Error {
	apiErr := &Error{
		Status:     resp.StatusCode,
		RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After")),
	}

	if isJSON(resp.Header.Get("Content-Type"), body) {
		var payload struct {
			Error *string `json:"error"`
		}
		if err := json.Unmarshal(body, &payload); err == nil && payload.Error != nil && *payload.Error != "" {
			apiErr.Message = *payload.Error
			return apiErr
		}
	}

	apiErr.Message = genericMessage(resp.StatusCode)
	apiErr.Detail = summarize(body)
	return apiErr
}

func summarize(body []byte) string {
	return sanitizer.Summarize(string(body), sanitizer.DefaultDetailLength)
}

func isJSON(contentType string, body []byte) bool {
	if contentType != "" {
		mediaType, _, err := mime.ParseMediaType(contentType)
		if err == nil {
			return mediaType == "application/json" || strings.HasSuffix(mediaType, "+json")
		}
	}
	return json.Valid(body)
}

func parseRetryAfter(v string) time.Duration {
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if at, err := http.ParseTime(v); err == nil {
		if d := time.Until(at); d > 0 {
			return d.Round(time.Second)
		}
	}
	return 0
}
