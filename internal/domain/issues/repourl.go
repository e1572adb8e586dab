package issues

import (
	"fmt"
	"strings"
)

// ParseRepoURL takes the last two "/"-separated segments of rawURL as owner and name.
// Segments are returned verbatim; only the count is checked.
func ParseRepoURL(rawURL string) (RepoRef, error) {
	parts := strings.Split(strings.TrimRight(rawURL, "/"), "/")
	if len(parts) < 2 {
		return RepoRef{}, fmt.Errorf("%w: %q", ErrInvalidRepoURL, rawURL)
	}
	return RepoRef{Owner: parts[len(parts)-2], Name: parts[len(parts)-1]}, nil
}
