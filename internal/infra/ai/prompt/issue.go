package prompt

import (
	"encoding/json"
	"fmt"

	"github.com/bryanwahyu/issue-analyzer/internal/domain/issues"
)

const issueTemplate = `
You are an AI assistant. Analyze the following GitHub issue and comments. Output a JSON with the following fields:

summary: A one-sentence summary of the user's problem or request.
type: Classify the issue as one of the following: bug, feature_request, documentation, question, or other.
priority_score: A score from 1 (low) to 5 (critical), with a brief justification for the score.
suggested_labels: An array of 2-3 relevant GitHub labels (e.g., 'bug', 'UI', 'login-flow').
potential_impact: A brief sentence on the potential impact on users if the issue is a bug.

Issue Title: %s
Issue Body: %s
Comments: %s

Respond ONLY with the JSON object.
`

// GetIssuePrompt renders the single user message sent to the model.
// Comments are embedded as a JSON array of the objects GitHub returned.
func GetIssuePrompt(issue *issues.Issue, comments []issues.Comment) string {
	return fmt.Sprintf(issueTemplate, issue.Title, issue.Body, commentsJSON(comments))
}

func commentsJSON(comments []issues.Comment) []byte {
	items := make([]json.RawMessage, 0, len(comments))
	for _, c := range comments {
		if len(c.Raw) > 0 {
			items = append(items, c.Raw)
			continue
		}
		b, err := json.Marshal(c)
		if err != nil {
			continue
		}
		items = append(items, b)
	}
	out, err := json.Marshal(items)
	if err != nil {
		return []byte("[]")
	}
	return out
}
