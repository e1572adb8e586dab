// Package github reads issues and their comments from the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v62/github"

	"github.com/bryanwahyu/issue-analyzer/internal/domain/issues"
)

// Source is the go-github backed implementation of issues.Source.
// Requests are unauthenticated.
type Source struct {
	client *github.Client
}

// NewSource builds a Source. An empty baseURL keeps the public API endpoint;
// a nil httpClient uses http.DefaultClient.
func NewSource(baseURL string, httpClient *http.Client) (*Source, error) {
	client := github.NewClient(httpClient)
	if baseURL != "" {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		u, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid github base url: %w", err)
		}
		client.BaseURL = u
	}
	return &Source{client: client}, nil
}

// FetchIssue returns issues.ErrIssueNotFound when GitHub answers with anything
// other than 200. Transport and decode failures are returned as they are.
func (s *Source) FetchIssue(ctx context.Context, repo issues.RepoRef, number int) (*issues.Issue, error) {
	gi, resp, err := s.client.Issues.Get(ctx, repo.Owner, repo.Name, number)
	if resp != nil && resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s#%d: status %d", issues.ErrIssueNotFound, repo, number, resp.StatusCode)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue %s#%d: %w", repo, number, err)
	}
	return &issues.Issue{
		Number:      gi.GetNumber(),
		Title:       gi.GetTitle(),
		Body:        gi.GetBody(),
		CommentsURL: gi.GetCommentsURL(),
		HTMLURL:     gi.GetHTMLURL(),
	}, nil
}

// FetchComments reads the first page of commentsURL only.
func (s *Source) FetchComments(ctx context.Context, commentsURL string) ([]issues.Comment, error) {
	req, err := s.client.NewRequest(http.MethodGet, commentsURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build comments request: %w", err)
	}
	var raw []json.RawMessage
	resp, err := s.client.Do(ctx, req, &raw)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch comments: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch comments: status %d", resp.StatusCode)
	}

	out := make([]issues.Comment, 0, len(raw))
	for _, r := range raw {
		var c github.IssueComment
		if err := json.Unmarshal(r, &c); err != nil {
			return nil, fmt.Errorf("failed to decode comment: %w", err)
		}
		out = append(out, issues.Comment{
			ID:        c.GetID(),
			Author:    c.GetUser().GetLogin(),
			Body:      c.GetBody(),
			CreatedAt: c.GetCreatedAt().Time,
			Raw:       r,
		})
	}
	return out, nil
}
