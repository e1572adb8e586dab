package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	}))

	t.Run("generates a uuid", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		_, err := uuid.Parse(seen)
		require.NoError(t, err)
		assert.Equal(t, seen, rec.Header().Get(RequestIDHeader))
	})

	t.Run("reuses the caller's id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "abc-123")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rec.Header().Get(RequestIDHeader))
	})

	assert.Empty(t, GetRequestID(context.Background()))
}

func TestLogging(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	h := RequestID(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Issue not found", http.StatusBadRequest)
	})))

	req := httptest.NewRequest(http.MethodPost, "/analyze_issue", nil)
	req.Header.Set(RequestIDHeader, "rid-1")
	h.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, http.StatusBadRequest, entry.Data["status"])
	assert.Equal(t, "/analyze_issue", entry.Data["path"])
	assert.Equal(t, "rid-1", entry.Data["request_id"])
	assert.Equal(t, int64(len("Issue not found\n")), entry.Data["bytes"])
}

func TestMetricsMiddleware(t *testing.T) {
	before := GetMetrics()
	ok := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	bad := MetricsMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))

	ok.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	bad.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	IncrementFallbacks()

	after := GetMetrics()
	assert.Equal(t, before["requests_total"].(uint64)+2, after["requests_total"])
	assert.Equal(t, before["requests_success"].(uint64)+1, after["requests_success"])
	assert.Equal(t, before["requests_failed"].(uint64)+1, after["requests_failed"])
	assert.Equal(t, before["analyses_fallback"].(uint64)+1, after["analyses_fallback"])
	assert.Equal(t, before["requests_in_progress"], after["requests_in_progress"])
}

func TestHealthHandler(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer upstream.Close()

	testCases := []struct {
		name       string
		checkers   map[string]HealthChecker
		wantStatus int
		wantBody   string
	}{
		{
			name: "all healthy",
			checkers: map[string]HealthChecker{
				"openai": ConfiguredChecker("openai api key", "sk-test"),
				"github": HTTPChecker(upstream.Client(), upstream.URL),
			},
			wantStatus: http.StatusOK,
			wantBody:   "healthy",
		},
		{
			name: "missing key",
			checkers: map[string]HealthChecker{
				"openai": ConfiguredChecker("openai api key", ""),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
		},
		{
			name: "failing check func",
			checkers: map[string]HealthChecker{
				"custom": CheckFunc(func(context.Context) error { return errors.New("down") }),
			},
			wantStatus: http.StatusServiceUnavailable,
			wantBody:   "unhealthy",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			HealthHandler(tc.checkers)(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.wantStatus, rec.Code)
			var got HealthStatus
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tc.wantBody, got.Status)
			assert.Len(t, got.Checks, len(tc.checkers))
		})
	}
}

func TestHTTPChecker_ServerError(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer upstream.Close()

	err := HTTPChecker(nil, upstream.URL).Check(context.Background())
	assert.ErrorContains(t, err, "502")
}
