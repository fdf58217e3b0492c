package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/knight-arena/internal/config"
	"github.com/riskibarqy/knight-arena/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:             config.EnvDev,
		ServiceName:        "knight-arena-api",
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		RepositoryDriver:   config.RepositoryMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		CORSAllowedOrigins: []string{"*"},
		MetricsEnabled:     true,
		AuthJWTSecret:      "test-secret",
		AuthTokenTTL:       time.Hour,
		AuthBcryptCost:     4,
		AdminEmail:         "admin@example.com",
		AdminPassword:      "admin-password",
		AdminDisplayName:   "Athena",
		SessionStore:       config.SessionStoreMemory,
		ImportWorkers:      2,
	}
}

func TestNew_MemoryDriver(t *testing.T) {
	app, err := New(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, app.Close()) })

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	body := strings.NewReader(`{"email":"admin@example.com","password":"admin-password"}`)
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/sign-in", body)
	req.Header.Set("Content-Type", "application/json")
	app.Server.Handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "knight_arena_http_requests_total")
}

func TestNew_MetricsDisabled(t *testing.T) {
	cfg := memoryConfig()
	cfg.MetricsEnabled = false
	cfg.AdminEmail = ""

	app, err := New(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	app.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestNew_RequiresAddr(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""

	_, err := New(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}
