package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// HealthChecker reports whether a dependency is usable.
type HealthChecker interface {
	Check(ctx context.Context) error
}

// CheckFunc adapts a plain function to HealthChecker.
type CheckFunc func(ctx context.Context) error

func (f CheckFunc) Check(ctx context.Context) error { return f(ctx) }

// ConfiguredChecker reports unhealthy when a required setting is empty.
func ConfiguredChecker(name, value string) HealthChecker {
	return CheckFunc(func(context.Context) error {
		if value == "" {
			return fmt.Errorf("%s is not configured", name)
		}
		return nil
	})
}

// HTTPChecker pings url and treats any 5xx or transport error as unhealthy.
func HTTPChecker(client *http.Client, url string) HealthChecker {
	if client == nil {
		client = http.DefaultClient
	}
	return CheckFunc(func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return err
		}
		resp, err := client.Do(req)
		if err != nil {
			return err
		}
		resp.Body.Close()
		if resp.StatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%s returned %d", url, resp.StatusCode)
		}
		return nil
	})
}

// HealthStatus is the body of /health.
type HealthStatus struct {
	Status    string                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckStatus `json:"checks"`
}

type CheckStatus struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

const (
	statusHealthy   = "healthy"
	statusUnhealthy = "unhealthy"
)

// HealthHandler runs every checker and answers 503 if any of them fails.
func HealthHandler(checkers map[string]HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		report := HealthStatus{Status: statusHealthy, Timestamp: time.Now(), Checks: map[string]CheckStatus{}}
		for name, checker := range checkers {
			err := checker.Check(ctx)
			if err == nil {
				report.Checks[name] = CheckStatus{Status: statusHealthy}
				continue
			}
			report.Status = statusUnhealthy
			report.Checks[name] = CheckStatus{Status: statusUnhealthy, Message: err.Error()}
		}

		code := http.StatusOK
		if report.Status != statusHealthy {
			code = http.StatusServiceUnavailable
		}
		writeJSON(w, code, report)
	}
}

// ReadinessHandler reports ready once the router is serving.
func ReadinessHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ready", "timestamp": time.Now()})
}

func LivenessHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, code int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}
