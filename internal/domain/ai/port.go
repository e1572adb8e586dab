package ai

import (
	"context"

	"github.com/bryanwahyu/issue-analyzer/internal/domain/issues"
)

// Client returns the raw completion text for an issue and its comments.
type Client interface {
	AnalyzeIssue(ctx context.Context, issue *issues.Issue, comments []issues.Comment) (string, error)
}
