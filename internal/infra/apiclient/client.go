// Package apiclient calls the analyze endpoint over HTTP.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	domain "github.com/bryanwahyu/issue-analyzer/internal/domain/analysis"
)

// fallbackHeader mirrors httpserver.FallbackHeader.
const fallbackHeader = "X-Analysis-Fallback"

// StatusError is returned for any non-200 answer; Body is the raw response text.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("analyzer returned %d: %s", e.StatusCode, e.Body)
}

// Response is a successful analyze call.
type Response struct {
	Body     json.RawMessage
	Fallback bool
}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New builds a client for the service at baseURL. A nil httpClient uses http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimSuffix(baseURL, "/"), httpClient: httpClient}
}

func (c *Client) AnalyzeIssue(ctx context.Context, repoURL string, number int) (*Response, error) {
	reqBody, err := json.Marshal(domain.Request{RepoURL: repoURL, IssueNumber: &number})
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/analyze_issue", bytes.NewReader(reqBody))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode, Body: string(respBody)}
	}
	if !json.Valid(respBody) {
		return nil, fmt.Errorf("analyzer returned invalid JSON")
	}
	return &Response{
		Body:     respBody,
		Fallback: resp.Header.Get(fallbackHeader) == "true",
	}, nil
}
