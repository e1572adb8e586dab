package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"
)

// counters are process-wide; handlers share them across requests.
type counters struct {
	requests  atomic.Uint64
	inFlight  atomic.Int64
	succeeded atomic.Uint64
	failed    atomic.Uint64
	analyses  atomic.Uint64
	fallbacks atomic.Uint64
	rejected  atomic.Uint64
	startedAt time.Time
}

var stats = &counters{startedAt: time.Now()}

// IncrementAnalyses counts analyses that reached the model step.
func IncrementAnalyses() { stats.analyses.Add(1) }

// IncrementFallbacks counts analyses answered with the fallback payload.
func IncrementFallbacks() { stats.fallbacks.Add(1) }

// IncrementRejected counts analyze requests answered with a 400.
func IncrementRejected() { stats.rejected.Add(1) }

// GetMetrics returns a snapshot of the counters plus runtime figures.
func GetMetrics() map[string]interface{} {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return map[string]interface{}{
		"requests_total":       stats.requests.Load(),
		"requests_in_progress": stats.inFlight.Load(),
		"requests_success":     stats.succeeded.Load(),
		"requests_failed":      stats.failed.Load(),
		"analyses_total":       stats.analyses.Load(),
		"analyses_fallback":    stats.fallbacks.Load(),
		"analyses_rejected":    stats.rejected.Load(),
		"uptime_seconds":       time.Since(stats.startedAt).Seconds(),
		"goroutines":           runtime.NumGoroutine(),
		"memory": map[string]interface{}{
			"alloc_bytes": mem.Alloc,
			"sys_bytes":   mem.Sys,
			"num_gc":      mem.NumGC,
		},
	}
}

// MetricsMiddleware counts requests by outcome. 4xx and 5xx are failures.
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats.requests.Add(1)
		stats.inFlight.Add(1)
		defer stats.inFlight.Add(-1)

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next.ServeHTTP(rw, r)

		if rw.statusCode < http.StatusBadRequest {
			stats.succeeded.Add(1)
		} else {
			stats.failed.Add(1)
		}
	})
}

func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMetrics())
}
