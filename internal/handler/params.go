package handler

import (
	"encoding/json"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"minerals/backend/internal/auth"
)

var errMalformedBody = errors.New("malformed body")

// payload is a decoded JSON object. Numbers stay json.Number so validators
// see the exact text the client sent.
type payload map[string]any

// has reports whether key was sent, even as null.
func (p payload) has(key string) bool {
	_, ok := p[key]
	return ok
}

func decodePayload(c echo.Context) (payload, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()
	var p payload
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return payload{}, nil
		}
		return nil, errMalformedBody
	}
	if p == nil {
		p = payload{}
	}
	return p, nil
}

// parseID accepts a snowflake id sent either as a decimal string or a number.
func parseID(raw any) (int64, bool) {
	var s string
	switch v := raw.(type) {
	case string:
		s = strings.TrimSpace(v)
	case json.Number:
		s = v.String()
	default:
		return 0, false
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseIDQuery(c echo.Context, name string) (int64, bool, error) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, false, nil
	}
	id, ok := parseID(raw)
	if !ok {
		return 0, true, errors.New("invalid id")
	}
	return id, true, nil
}

// isFalsy mirrors how the web client clears optional timestamps: null, false,
// 0 and "" all mean unset.
func isFalsy(raw any) bool {
	switch v := raw.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	case json.Number:
		f, err := v.Float64()
		return err == nil && f == 0
	case float64:
		return v == 0
	case int64:
		return v == 0
	case int:
		return v == 0
	}
	return false
}

func currentIdentity(c echo.Context) (auth.Identity, bool) {
	return auth.FromContext(c.Request().Context())
}
