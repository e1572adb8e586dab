package issues

import "context"

// Source port (interface untuk issue tracker)
type Source interface {
	FetchIssue(ctx context.Context, repo RepoRef, number int) (*Issue, error)
	// FetchComments reads a single page from the issue's comments URL.
	FetchComments(ctx context.Context, commentsURL string) ([]Comment, error)
}
