package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	domain "github.com/bryanwahyu/issue-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/issue-analyzer/internal/domain/issues"
	"github.com/bryanwahyu/issue-analyzer/internal/middleware"
)

// FallbackHeader is set to "true" when the body is the substitute payload.
const FallbackHeader = "X-Analysis-Fallback"

// Analyzer is the use case the router exposes.
type Analyzer interface {
	AnalyzeIssue(ctx context.Context, repoURL string, number int) (*domain.Result, error)
}

// Options carries the ambient pieces the router wires around the handlers.
type Options struct {
	Logger         logrus.FieldLogger
	AllowedOrigins []string
	HealthCheckers map[string]middleware.HealthChecker
}

type Router struct {
	analyzer Analyzer
}

func NewRouter(analyzer Analyzer, opts Options) http.Handler {
	r := &Router{analyzer: analyzer}
	if opts.Logger == nil {
		opts.Logger = logrus.StandardLogger()
	}
	if len(opts.AllowedOrigins) == 0 {
		opts.AllowedOrigins = []string{"*"}
	}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logging(opts.Logger))
	mux.Use(middleware.MetricsMiddleware)
	mux.Use(chimw.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders: []string{FallbackHeader, middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	mux.Get("/health", middleware.HealthHandler(opts.HealthCheckers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/health/ready", middleware.ReadinessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze_issue", r.wrap(r.handleAnalyzeIssue))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// wrap turns every handler error into a 400 with a plain-text detail.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			middleware.IncrementRejected()
			if errors.Is(err, issues.ErrIssueNotFound) {
				http.Error(w, "Issue not found", http.StatusBadRequest)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}
}

// POST /analyze_issue
// Body: {"repo_url": "https://github.com/<owner>/<repo>", "issue_number": 1}
func (r *Router) handleAnalyzeIssue(w http.ResponseWriter, req *http.Request) error {
	var body domain.Request
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	if body.IssueNumber == nil {
		return fmt.Errorf("issue_number is required")
	}

	res, err := r.analyzer.AnalyzeIssue(req.Context(), body.RepoURL, *body.IssueNumber)
	if err != nil {
		return err
	}

	middleware.IncrementAnalyses()
	if res.Fallback {
		middleware.IncrementFallbacks()
		w.Header().Set(FallbackHeader, "true")
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(res.Body)
	return nil
}
