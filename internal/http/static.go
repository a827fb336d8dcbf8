package http

import (
	nethttp "net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"minerals/backend/pkg/logger"
)

// reservedPrefixes are server routes the SPA must never shadow, even with a
// same-named file in the build output.
var reservedPrefixes = []string{"/api", "/swagger", "/metrics", "/healthz"}

// registerStatic serves the built frontend from dir. Paths that match neither
// a file nor a route get index.html so client routes like /app/loops load.
func registerStatic(e *echo.Echo, dir string) {
	if dir == "" {
		return
	}
	indexPath := filepath.Join(dir, "index.html")
	if info, err := os.Stat(indexPath); err != nil || info.IsDir() {
		logger.Warn("static index not found", "module", "http", "action", "static", "resource", "spa", "result", "skipped", "path", indexPath)
		return
	}

	e.Use(middleware.StaticWithConfig(middleware.StaticConfig{
		Skipper:    skipStatic,
		Filesystem: nethttp.Dir(dir),
		Index:      "index.html",
		HTML5:      true,
	}))
	logger.Info("serving frontend", "module", "http", "action", "static", "resource", "spa", "result", "ok", "dir", dir)
}

func skipStatic(c echo.Context) bool {
	method := c.Request().Method
	if method != nethttp.MethodGet && method != nethttp.MethodHead {
		return true
	}
	p := c.Request().URL.Path
	for _, prefix := range reservedPrefixes {
		if p == prefix || strings.HasPrefix(p, prefix+"/") {
			return true
		}
	}
	return false
}
