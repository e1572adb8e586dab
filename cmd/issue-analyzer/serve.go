package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/bryanwahyu/issue-analyzer/internal/infra/apiclient"
	"github.com/bryanwahyu/issue-analyzer/internal/infra/httpserver"
	"github.com/bryanwahyu/issue-analyzer/internal/middleware"
	"github.com/bryanwahyu/issue-analyzer/internal/ui"
)

func apiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "api",
		Short: "Serve POST /analyze_issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.apiServer()
			if err != nil {
				return err
			}
			return a.run(srv)
		},
	}
}

func uiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ui",
		Short: "Serve the web form that calls the analyzer API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(a.uiServer())
		},
	}
}

func allCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "all",
		Short: "Serve the API and the web form together",
		RunE: func(cmd *cobra.Command, args []string) error {
			srv, err := a.apiServer()
			if err != nil {
				return err
			}
			return a.run(srv, a.uiServer())
		},
	}
}

func (a *app) apiServer() (*http.Server, error) {
	ghClient := a.githubHTTPClient()
	svc, err := a.newService(ghClient)
	if err != nil {
		return nil, err
	}
	handler := httpserver.NewRouter(svc, httpserver.Options{
		Logger:         a.log,
		AllowedOrigins: a.cfg.Server.AllowedOrigins,
		HealthCheckers: map[string]middleware.HealthChecker{
			"openai": middleware.ConfiguredChecker("OPENAI_API_KEY", a.cfg.OpenAI.APIKey),
			"github": middleware.HTTPChecker(ghClient, a.cfg.GitHub.BaseURL),
		},
	})
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  60 * time.Second,
	}, nil
}

func (a *app) uiServer() *http.Server {
	client := apiclient.New(a.cfg.UI.APIURL, nil)
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.UI.Port),
		Handler:           ui.NewHandler(client, a.cfg.UI.DefaultRepoURL, a.log),
		ReadHeaderTimeout: 15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
}

// run serves every server until SIGINT/SIGTERM or the first listen error,
// then shuts all of them down.
func (a *app) run(servers ...*http.Server) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		srv := srv
		g.Go(func() error {
			a.log.Infof("server listening on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server %s: %w", srv.Addr, err)
			}
			return nil
		})
		g.Go(func() error {
			<-gctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				a.log.WithError(err).Errorf("shutdown error on %s", srv.Addr)
			}
			return nil
		})
	}

	<-gctx.Done()
	a.log.Info("shutting down server...")
	return g.Wait()
}
