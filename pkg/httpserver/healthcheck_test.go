package httpserver_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/easycookie/pkg/httpserver"
)

type healthBody struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func serve(t *testing.T, h http.Handler) (int, healthBody) {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	var body healthBody
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	return rec.Code, body
}

func TestLivenessHandler(t *testing.T) {
	t.Parallel()

	code, body := serve(t, httpserver.LivenessHandler())
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "alive", body.Status)
}

func TestReadinessHandler(t *testing.T) {
	t.Parallel()

	ok := func(context.Context) error { return nil }
	fail := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name   string
		checks map[string]httpserver.CheckFunc
		code   int
		status string
		result map[string]string
	}{
		{
			name:   "no checks",
			code:   http.StatusOK,
			status: "ready",
		},
		{
			name:   "all pass",
			checks: map[string]httpserver.CheckFunc{"redis": ok, "postgres": ok},
			code:   http.StatusOK,
			status: "ready",
			result: map[string]string{"redis": "ok", "postgres": "ok"},
		},
		{
			name:   "one fails",
			checks: map[string]httpserver.CheckFunc{"redis": ok, "mongo": fail},
			code:   http.StatusServiceUnavailable,
			status: "not_ready",
			result: map[string]string{"redis": "ok", "mongo": "fail"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			code, body := serve(t, httpserver.ReadinessHandler(nil, time.Second, tt.checks))
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.status, body.Status)
			assert.Equal(t, tt.result, body.Checks)
		})
	}
}

func TestReadinessHandler_Timeout(t *testing.T) {
	t.Parallel()

	slow := func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}
	code, body := serve(t, httpserver.ReadinessHandler(nil, 10*time.Millisecond,
		map[string]httpserver.CheckFunc{"slow": slow}))
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, "fail", body.Checks["slow"])
}
