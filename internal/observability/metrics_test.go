package observability

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPMetrics_ObserveAndExpose(t *testing.T) {
	m := NewHTTPMetrics("knight_arena")

	m.ObserveHTTPRequest(http.MethodGet, "GET /v1/battles", http.StatusOK, 20*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "GET /v1/battles", http.StatusOK, 40*time.Millisecond)
	m.ObserveHTTPRequest(http.MethodPost, "POST /v1/battles", http.StatusBadRequest, 5*time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "knight_arena_http_requests_total")
	assert.Contains(t, string(body), "knight_arena_http_request_duration_seconds_bucket")
	assert.Contains(t, string(body), `knight_arena_http_requests_total{method="GET",route="GET /v1/battles",status="200"} 2`)
	assert.Contains(t, string(body), `knight_arena_http_requests_total{method="POST",route="POST /v1/battles",status="400"} 1`)
}
