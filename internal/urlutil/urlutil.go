package urlutil

import (
	"fmt"
	"net/url"
	"strings"
)

// Origin reduces raw to scheme://host[:port], dropping path, query and
// fragment. Only http and https are accepted.
func Origin(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", fmt.Errorf("empty origin")
	}
	parsed, err := url.Parse(trimmed)
	if err != nil {
		return "", fmt.Errorf("parse origin %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("origin %q: scheme must be http or https", raw)
	}
	if parsed.Host == "" {
		return "", fmt.Errorf("origin %q: missing host", raw)
	}
	return parsed.Scheme + "://" + strings.ToLower(parsed.Host), nil
}

// Join appends path to origin, e.g. Join("https://app.example.com", "/app?success=true").
func Join(origin, path string) string {
	return strings.TrimRight(origin, "/") + "/" + strings.TrimLeft(path, "/")
}
