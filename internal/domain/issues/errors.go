package issues

import "errors"

// ErrInvalidRepoURL is returned when a repository URL has fewer than two path segments.
var ErrInvalidRepoURL = errors.New("invalid GitHub repo URL")

// ErrIssueNotFound covers every non-200 answer from the issue endpoint.
var ErrIssueNotFound = errors.New("issue not found")
