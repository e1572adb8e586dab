package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/issue-analyzer/internal/config"
)

func TestInitLogger_FileJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")
	cfg := &config.Config{}
	cfg.Logging.Level = "debug"
	cfg.Logging.Format = "json"
	cfg.Logging.Output = path

	logger := logrus.New()
	InitLogger(logger, cfg)
	logger.WithField("issue", 7).Debug("hello")

	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"issue":7`)
	assert.Contains(t, string(data), `"msg":"hello"`)
}

func TestInitLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	cfg := &config.Config{}
	cfg.Logging.Level = "loud"
	cfg.Logging.Output = "stderr"

	logger := logrus.New()
	InitLogger(logger, cfg)

	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, logger.Formatter)
	assert.Equal(t, os.Stderr, logger.Out)
}
