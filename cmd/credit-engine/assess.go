// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pdiddy/credit-engine/internal/assess"
	"github.com/pdiddy/credit-engine/internal/profile"
	"github.com/pdiddy/credit-engine/internal/report"
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run every applicable pipeline for one applicant",
	Long: `Assess reads an applicant file with optional financial, psychometric and
news_query sections, runs the matching pipelines concurrently and prints the
results side by side. No blended score is computed.`,
	RunE: runAssess,
}

func init() {
	assessCmd.Flags().String("file", "", "applicant file (.yaml, .yml, .json, or - for stdin)")
	assessCmd.Flags().Bool("json", false, "output results as JSON")

	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("file")
	if path == "" && len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return fmt.Errorf("applicant file required: provide --file")
	}

	app, err := profile.LoadApplicant(path)
	if err != nil {
		return err
	}

	var ns assess.NewsScorer
	if app.NewsQuery != "" {
		ns = newNewsScorer(cfg, log, nil)
	}
	a := assess.New(ns, log)

	out, err := a.Assess(log.WithContext(cmd.Context()), app)
	if err != nil {
		return err
	}

	if jsonOutput(cmd) {
		return report.WriteJSON(cmd.OutOrStdout(), out)
	}
	return report.WriteAssessment(cmd.OutOrStdout(), out)
}
