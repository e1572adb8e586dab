package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks the variables Load reads so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	for _, k := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL", "GITHUB_API_URL", "ANALYZER_API_URL"} {
		t.Setenv(k, "")
	}
	// keep godotenv away from any .env in the package directory
	chdir(t, t.TempDir())
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, 8501, cfg.UI.Port)
	assert.Equal(t, "http://localhost:8000", cfg.UI.APIURL)
	assert.Equal(t, "https://github.com/facebook/react", cfg.UI.DefaultRepoURL)
	assert.Equal(t, "https://api.github.com/", cfg.GitHub.BaseURL)
	assert.Zero(t, cfg.GitHub.Timeout)
	assert.Equal(t, "gpt-3.5-turbo", cfg.OpenAI.Model)
	assert.Equal(t, 500, cfg.OpenAI.MaxTokens)
	require.NotNil(t, cfg.OpenAI.Temperature)
	assert.InDelta(t, 0.3, *cfg.OpenAI.Temperature, 0.0001)
	assert.Empty(t, cfg.OpenAI.APIKey)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoad_FileAndEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  port: 9000
  writeTimeout: 90s
github:
  timeout: 10s
openai:
  apiKey: from-file
  model: gpt-4o-mini
  maxTokens: 800
logging:
  format: json
`), 0o644))
	t.Setenv("OPENAI_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, 90*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 10*time.Second, cfg.GitHub.Timeout)
	assert.Equal(t, "from-env", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 800, cfg.OpenAI.MaxTokens)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("OPENAI_API_KEY")
	require.NoError(t, os.WriteFile(".env", []byte("OPENAI_API_KEY=dotenv-key\n"), 0o644))

	cfg, err := Load("missing.yaml")
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.OpenAI.APIKey)
}

func TestLoad_BadYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [oops"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_ZeroTemperatureIsKept(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("openai:\n  temperature: 0\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.OpenAI.Temperature)
	assert.Zero(t, *cfg.OpenAI.Temperature)
}

// chdir stands in for testing.T.Chdir (Go 1.24+): it switches the working
// directory for the duration of the test and restores it on cleanup.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
