// Package ui serves the HTML form that submits issues to the analyzer API.
package ui

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/issue-analyzer/internal/infra/apiclient"
	"github.com/bryanwahyu/issue-analyzer/internal/middleware"
)

//go:embed templates/index.html
var templateFS embed.FS

var indexTmpl = template.Must(template.ParseFS(templateFS, "templates/index.html"))

const missingFieldsMsg = "Please provide both a repository URL and an issue number."

// Analyzer is the remote analyze call the form submits to.
type Analyzer interface {
	AnalyzeIssue(ctx context.Context, repoURL string, number int) (*apiclient.Response, error)
}

type page struct {
	RepoURL     string
	IssueNumber string
	Error       string
	Success     bool
	Fallback    bool
	Result      string
}

type Handler struct {
	analyzer       Analyzer
	defaultRepoURL string
	log            logrus.FieldLogger
}

func NewHandler(analyzer Analyzer, defaultRepoURL string, log logrus.FieldLogger) http.Handler {
	if log == nil {
		log = logrus.StandardLogger()
	}
	h := &Handler{analyzer: analyzer, defaultRepoURL: defaultRepoURL, log: log}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Logging(log))
	mux.Get("/", h.handleForm)
	mux.Post("/", h.handleSubmit)
	mux.Get("/health/live", middleware.LivenessHandler)
	return mux
}

func (h *Handler) handleForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, page{RepoURL: h.defaultRepoURL, IssueNumber: "1"})
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	p := page{
		RepoURL:     strings.TrimSpace(r.PostFormValue("repo_url")),
		IssueNumber: strings.TrimSpace(r.PostFormValue("issue_number")),
	}

	number, err := strconv.Atoi(p.IssueNumber)
	if p.RepoURL == "" || err != nil || number < 1 {
		p.Error = missingFieldsMsg
		h.render(w, p)
		return
	}

	resp, err := h.analyzer.AnalyzeIssue(r.Context(), p.RepoURL, number)
	var se *apiclient.StatusError
	switch {
	case errors.As(err, &se):
		p.Error = "Error: " + se.Body
	case err != nil:
		h.log.WithError(err).Warn("analyzer request failed")
		p.Error = "Request failed: " + err.Error()
	default:
		p.Success = true
		p.Fallback = resp.Fallback
		p.Result = indentJSON(resp.Body)
	}
	h.render(w, p)
}

func (h *Handler) render(w http.ResponseWriter, p page) {
	var buf bytes.Buffer
	if err := indexTmpl.Execute(&buf, p); err != nil {
		h.log.WithError(err).Error("render form")
		http.Error(w, "template error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}

func indentJSON(raw []byte) string {
	var out bytes.Buffer
	if err := json.Indent(&out, raw, "", "  "); err != nil {
		return string(raw)
	}
	return out.String()
}
