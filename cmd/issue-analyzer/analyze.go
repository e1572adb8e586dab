package main

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func analyzeCmd(a *app) *cobra.Command {
	var repoURL string
	var number int

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze one issue in-process and print the JSON result",
		RunE: func(cmd *cobra.Command, args []string) error {
			if repoURL == "" || number < 1 {
				return fmt.Errorf("both --repo and a positive --issue are required")
			}
			svc, err := a.newService(a.githubHTTPClient())
			if err != nil {
				return err
			}
			res, err := svc.AnalyzeIssue(cmd.Context(), repoURL, number)
			if err != nil {
				return err
			}
			var out bytes.Buffer
			if err := json.Indent(&out, res.Body, "", "  "); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out.String())
			return nil
		},
	}
	cmd.Flags().StringVar(&repoURL, "repo", "https://github.com/facebook/react", "GitHub repository URL")
	cmd.Flags().IntVar(&number, "issue", 0, "issue number")
	return cmd
}
