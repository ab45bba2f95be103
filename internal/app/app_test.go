package app

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"refdash/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	cfg := &config.Config{}
	cfg.Server.Port = 8080
	cfg.Server.ReadTimeout = 5 * time.Second
	cfg.Server.WriteTimeout = 5 * time.Second
	cfg.Server.IdleTimeout = 5 * time.Second
	cfg.Server.MaxHeaderBytes = 1 << 20
	cfg.Server.ShutdownTimeout = time.Second
	cfg.Logging.Level = "error"
	cfg.Logging.Format = "json"
	cfg.Logging.Output = "console"
	cfg.Paths.BaseDir = t.TempDir()
	cfg.Paths.DataDir = "data"
	cfg.Paths.WebDir = "web"
	cfg.Paths.LogsDir = "logs"
	cfg.Reports.MaxUploadBytes = 1 << 20
	cfg.Reports.Retention = time.Hour
	cfg.Reports.MaxStored = 4
	return cfg
}

func TestNewApplicationWithConfig(t *testing.T) {
	app, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)
	require.NotNil(t, app.Router)
	require.NotNil(t, app.Server)
	require.NotNil(t, app.ReportService)
	require.NotNil(t, app.HealthService)

	// Writable directories exist after startup.
	info, err := os.Stat(app.Paths.ReportsDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestApplication_HealthEndpoint(t *testing.T) {
	app, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, Version, body["version"])
}

func TestApplication_VersionEndpoint(t *testing.T) {
	app, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/version", nil))

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, Version, body["version"])
}

func TestApplication_MetricsEndpoint(t *testing.T) {
	app, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestApplication_DashboardPage(t *testing.T) {
	cfg := testConfig(t)
	app, err := NewApplicationWithConfig(cfg)
	require.NoError(t, err)

	webDir := filepath.Join(cfg.Paths.BaseDir, "web")
	require.NoError(t, os.MkdirAll(webDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(webDir, "index.html"),
		[]byte("<html><body>Referral Dashboard</body></html>"), 0644))

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Referral Dashboard")
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
}

func TestApplication_RequestIDHeader(t *testing.T) {
	app, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestApplication_UnknownReportIs404(t *testing.T) {
	app, err := NewApplicationWithConfig(testConfig(t))
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, "/api/reports/0b6dd6f0-3df0-49b4-a9f6-33bb1f1f2c7b", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/problem+json")
}
