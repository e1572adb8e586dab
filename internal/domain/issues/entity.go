package issues

import (
	"encoding/json"
	"time"
)

// RepoRef identifies a repository by owner and name
type RepoRef struct {
	Owner string `json:"owner"`
	Name  string `json:"name"`
}

func (r RepoRef) String() string { return r.Owner + "/" + r.Name }

// Issue is the subset of a GitHub issue the analyzer reads
type Issue struct {
	Number      int    `json:"number"`
	Title       string `json:"title"`
	Body        string `json:"body,omitempty"`
	CommentsURL string `json:"comments_url,omitempty"`
	HTMLURL     string `json:"html_url,omitempty"`
}

// Comment is a single issue comment, in the order the API returned it.
// Raw holds the comment object exactly as GitHub sent it, when available.
type Comment struct {
	ID        int64           `json:"id"`
	Author    string          `json:"author"`
	Body      string          `json:"body"`
	CreatedAt time.Time       `json:"created_at"`
	Raw       json.RawMessage `json:"-"`
}
