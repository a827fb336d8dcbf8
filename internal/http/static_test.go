package http_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	gh "minerals/backend/internal/http"
)

func writeFrontend(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<title>Minerals</title>"), 0o600))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "main.js"), []byte("console.log('minerals')"), 0o600))
	// Same name as a server route; must never be served.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "healthz"), []byte("stale"), 0o600))
	return dir
}

func serveStatic(e *echo.Echo, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRegisterStatic_Disabled(t *testing.T) {
	for name, dir := range map[string]string{"empty": "", "no index": t.TempDir()} {
		t.Run(name, func(t *testing.T) {
			e := echo.New()
			gh.RegisterStatic(e, dir)

			require.Equal(t, http.StatusNotFound, serveStatic(e, http.MethodGet, "/app").Code)
		})
	}
}

func TestRegisterStatic_ClientRoutesGetIndex(t *testing.T) {
	e := echo.New()
	gh.RegisterStatic(e, writeFrontend(t))

	for _, target := range []string{"/", "/app", "/app/loops", "/settings?tab=goal"} {
		rec := serveStatic(e, http.MethodGet, target)
		require.Equal(t, http.StatusOK, rec.Code, target)
		require.Contains(t, rec.Body.String(), "<title>Minerals</title>", target)
	}

	rec := serveStatic(e, http.MethodGet, "/assets/main.js")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "console.log")
}

func TestRegisterStatic_ServerRoutesWin(t *testing.T) {
	e := echo.New()
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })
	e.GET("/api/loops", func(c echo.Context) error { return c.JSON(http.StatusOK, []string{}) })
	gh.RegisterStatic(e, writeFrontend(t))

	rec := serveStatic(e, http.MethodGet, "/healthz")
	require.Equal(t, "ok", rec.Body.String())

	rec = serveStatic(e, http.MethodGet, "/api/loops")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `[]`, rec.Body.String())

	// Unknown API paths stay JSON 404s instead of becoming the frontend.
	rec = serveStatic(e, http.MethodGet, "/api/unknown")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.NotContains(t, rec.Body.String(), "<title>")

	rec = serveStatic(e, http.MethodPost, "/app")
	require.NotEqual(t, http.StatusOK, rec.Code)
}

func TestNewRouter_UnknownAPIPathIsNotFrontend(t *testing.T) {
	f := newRouterFixture(t, gh.Options{StaticDir: writeFrontend(t)})

	rec := f.do(http.MethodGet, "/app/income", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), "<title>Minerals</title>")

	rec = f.do(http.MethodGet, "/api/nope", "")
	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotContains(t, rec.Body.String(), "<title>")
}
