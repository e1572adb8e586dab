package analysis

import (
	"encoding/json"
)

// Request is the body accepted by the analyze endpoint
type Request struct {
	RepoURL     string `json:"repo_url"`
	IssueNumber *int   `json:"issue_number"`
}

// Analysis mirrors the object the model is asked to produce. It is only used
// to build the fallback; model output is never decoded into it.
type Analysis struct {
	Summary         string   `json:"summary"`
	Type            string   `json:"type"`
	PriorityScore   any      `json:"priority_score"`
	SuggestedLabels []string `json:"suggested_labels"`
	PotentialImpact string   `json:"potential_impact"`
	Error           string   `json:"error,omitempty"`
}

// Result is what the service hands back for a successful request.
type Result struct {
	// Body is the JSON document returned to the caller.
	Body json.RawMessage
	// Fallback is set when Body is the substitute payload; Err holds the cause.
	Fallback bool
	Err      error
}

// NewFallback returns the substitute payload annotated with cause.
func NewFallback(cause error) Analysis {
	msg := "unknown error"
	if cause != nil && cause.Error() != "" {
		msg = cause.Error()
	}
	return Analysis{
		Summary:         "Example summary.",
		Type:            "bug",
		PriorityScore:   "3 - Medium impact, affects some users.",
		SuggestedLabels: []string{"bug", "UI"},
		PotentialImpact: "Users may experience UI glitches.",
		Error:           msg,
	}
}

// FallbackResult marshals the fallback for cause into a Result.
func FallbackResult(cause error) *Result {
	body, _ := json.Marshal(NewFallback(cause))
	return &Result{Body: body, Fallback: true, Err: cause}
}
