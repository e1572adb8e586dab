package analysis

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackResult(t *testing.T) {
	cause := errors.New("connection refused")
	res := FallbackResult(cause)

	require.True(t, res.Fallback)
	assert.Equal(t, cause, res.Err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(res.Body, &got))
	assert.Equal(t, "bug", got["type"])
	assert.Equal(t, []any{"bug", "UI"}, got["suggested_labels"])
	assert.Equal(t, "connection refused", got["error"])
	assert.Equal(t, "3 - Medium impact, affects some users.", got["priority_score"])
	assert.Len(t, got, 6)
}

func TestNewFallback_NilCauseStillHasError(t *testing.T) {
	assert.NotEmpty(t, NewFallback(nil).Error)
}
