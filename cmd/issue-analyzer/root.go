package main

import (
	"net/http"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/bryanwahyu/issue-analyzer/internal/application"
	appanalysis "github.com/bryanwahyu/issue-analyzer/internal/application/analysis"
	"github.com/bryanwahyu/issue-analyzer/internal/config"
	"github.com/bryanwahyu/issue-analyzer/internal/infra/ai/openai"
	"github.com/bryanwahyu/issue-analyzer/internal/infra/github"
	"github.com/bryanwahyu/issue-analyzer/internal/logging"
)

// app holds what every subcommand needs once the config is loaded.
type app struct {
	configPath string
	cfg        *config.Config
	log        *logrus.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{log: logrus.StandardLogger()}

	defaultPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}

	root := &cobra.Command{
		Use:   "issue-analyzer",
		Short: "Classify GitHub issues with a language model",
		Long: `issue-analyzer fetches a GitHub issue and its comments, asks a chat-completion
model for a summary, type, priority, labels and impact, and serves the result
over HTTP and through a small web form.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configPath)
			if err != nil {
				return err
			}
			a.cfg = cfg
			logging.InitLogger(a.log, cfg)
			return nil
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", defaultPath, "path to the yaml config file")

	root.AddCommand(apiCmd(a), uiCmd(a), allCmd(a), analyzeCmd(a))
	return root
}

// githubHTTPClient is shared by the issue source and the github health check.
func (a *app) githubHTTPClient() *http.Client {
	return &http.Client{Timeout: a.cfg.GitHub.Timeout}
}

func (a *app) newService(ghClient *http.Client) (*appanalysis.Service, error) {
	src, err := github.NewSource(a.cfg.GitHub.BaseURL, ghClient)
	if err != nil {
		return nil, err
	}
	if a.cfg.OpenAI.APIKey == "" {
		a.log.Warn("OPENAI_API_KEY is not set; every analysis will return the fallback payload")
	}
	model := openai.NewClient(a.cfg.OpenAI.APIKey, openai.Options{
		BaseURL:     a.cfg.OpenAI.BaseURL,
		Model:       a.cfg.OpenAI.Model,
		MaxTokens:   a.cfg.OpenAI.MaxTokens,
		Temperature: a.cfg.OpenAI.Temperature,
		HTTPClient:  &http.Client{Timeout: a.cfg.OpenAI.Timeout},
	})
	return &appanalysis.Service{
		Issues: src,
		AI:     model,
		Clock:  application.SystemClock{},
		Log:    a.log,
	}, nil
}
