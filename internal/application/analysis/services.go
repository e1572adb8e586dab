package analysis

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bryanwahyu/issue-analyzer/internal/application"
	"github.com/bryanwahyu/issue-analyzer/internal/domain/ai"
	domain "github.com/bryanwahyu/issue-analyzer/internal/domain/analysis"
	"github.com/bryanwahyu/issue-analyzer/internal/domain/issues"
)

// Service implements the analyze-issue use case.
// It keeps no state between calls and is safe for concurrent use.
type Service struct {
	Issues issues.Source
	AI     ai.Client
	Clock  application.Clock
	Log    logrus.FieldLogger
}

// AnalyzeIssue fetches the issue and its comments and asks the model to classify them.
//
// Errors are returned only for failures before the model step. Any failure
// during or after the model call yields a fallback Result instead.
func (s *Service) AnalyzeIssue(ctx context.Context, repoURL string, number int) (*domain.Result, error) {
	start := s.now()
	repo, err := issues.ParseRepoURL(repoURL)
	if err != nil {
		return nil, err
	}
	log := s.logger().WithFields(logrus.Fields{"repo": repo.String(), "issue": number})

	issue, err := s.Issues.FetchIssue(ctx, repo, number)
	if err != nil {
		return nil, err
	}

	comments := []issues.Comment{}
	if issue.CommentsURL != "" {
		got, err := s.Issues.FetchComments(ctx, issue.CommentsURL)
		if err != nil {
			log.WithError(err).Debug("comments unavailable, continuing without them")
		} else {
			comments = got
		}
	}

	res := s.complete(ctx, issue, comments)
	fields := logrus.Fields{
		"comments":    len(comments),
		"fallback":    res.Fallback,
		"duration_ms": s.now().Sub(start).Milliseconds(),
	}
	if res.Fallback {
		log.WithFields(fields).WithError(res.Err).Warn("analysis fell back to default payload")
	} else {
		log.WithFields(fields).Info("analysis complete")
	}
	return res, nil
}

func (s *Service) complete(ctx context.Context, issue *issues.Issue, comments []issues.Comment) *domain.Result {
	out, err := s.AI.AnalyzeIssue(ctx, issue, comments)
	if err != nil {
		return domain.FallbackResult(err)
	}
	content := stripCodeFences(out)
	var probe any
	if err := json.Unmarshal([]byte(content), &probe); err != nil {
		return domain.FallbackResult(fmt.Errorf("model output is not valid JSON: %w", err))
	}
	return &domain.Result{Body: json.RawMessage(content)}
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return application.SystemClock{}.Now()
	}
	return s.Clock.Now()
}

func (s *Service) logger() logrus.FieldLogger {
	if s.Log == nil {
		return logrus.StandardLogger()
	}
	return s.Log
}

// stripCodeFences removes markdown code fences that some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		// Remove opening fence (```json or ```)
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
