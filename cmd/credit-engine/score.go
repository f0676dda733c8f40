// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/credit-engine/internal/financial"
	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/profile"
	"github.com/pdiddy/credit-engine/internal/psychometric"
	"github.com/pdiddy/credit-engine/internal/report"
	"github.com/pdiddy/credit-engine/pkg/types"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Run a single scoring pipeline",
	Long: `Score runs one pipeline and prints the score with its risk category.

Profiles can be read from a YAML or JSON file (--file, "-" for stdin) and
individual fields overridden with flags.`,
}

var scoreFinancialCmd = &cobra.Command{
	Use:   "financial",
	Short: "Score structured financial statements",
	RunE:  runScoreFinancial,
}

var scorePsychometricCmd = &cobra.Command{
	Use:   "psychometric",
	Short: "Score psychometric questionnaire answers",
	RunE:  runScorePsychometric,
}

var scoreNewsCmd = &cobra.Command{
	Use:   "news [query]",
	Short: "Score the sentiment of recent news about a subject",
	Long: `News fetches up to news.max_articles recent articles about the subject,
classifies each one and maps the mean polarity onto [0,100]. When no
articles are found no score is produced.`,
	RunE: runScoreNews,
}

// financialFlags maps flag names to FinancialProfile fields.
var financialFlags = []struct {
	name  string
	usage string
	field func(*types.FinancialProfile) *float64
}{
	{"income", "annual income", func(p *types.FinancialProfile) *float64 { return &p.Income }},
	{"revenue", "annual revenue", func(p *types.FinancialProfile) *float64 { return &p.Revenue }},
	{"debt", "outstanding debt", func(p *types.FinancialProfile) *float64 { return &p.Debt }},
	{"credit-utilization", "credit utilization percentage", func(p *types.FinancialProfile) *float64 { return &p.CreditUtilization }},
	{"loan-repayment", "loan repayment percentage", func(p *types.FinancialProfile) *float64 { return &p.LoanRepayment }},
	{"business-age", "business age in years", func(p *types.FinancialProfile) *float64 { return &p.BusinessAge }},
	{"transaction-patterns", "transaction regularity score", func(p *types.FinancialProfile) *float64 { return &p.TransactionPatterns }},
	{"growth-rate", "growth rate percentage", func(p *types.FinancialProfile) *float64 { return &p.GrowthRate }},
}

var psychometricFlags = []struct {
	name  string
	usage string
	field func(*types.PsychometricProfile) *int
}{
	{"risk-tolerance", "risk tolerance answer (0-100)", func(p *types.PsychometricProfile) *int { return &p.RiskTolerance }},
	{"financial-responsibility", "financial responsibility answer (0-100)", func(p *types.PsychometricProfile) *int { return &p.FinancialResponsibility }},
	{"future-planning", "future planning answer (0-100)", func(p *types.PsychometricProfile) *int { return &p.FuturePlanning }},
	{"impulse-control", "impulse control answer (0-100)", func(p *types.PsychometricProfile) *int { return &p.ImpulseControl }},
	{"loan-attitude", "loan attitude answer (0-100)", func(p *types.PsychometricProfile) *int { return &p.LoanAttitude }},
}

func init() {
	for _, f := range financialFlags {
		scoreFinancialCmd.Flags().Float64(f.name, 0, f.usage)
	}
	for _, f := range psychometricFlags {
		scorePsychometricCmd.Flags().Int(f.name, 0, f.usage)
	}
	for _, c := range []*cobra.Command{scoreFinancialCmd, scorePsychometricCmd} {
		c.Flags().String("file", "", "profile file (.yaml, .yml, .json, or - for stdin)")
		c.Flags().Bool("explain", false, "print each field's contribution")
	}
	scoreNewsCmd.Flags().String("query", "", "subject to search news for")

	scoreCmd.PersistentFlags().Bool("json", false, "output results as JSON")
	scoreCmd.AddCommand(scoreFinancialCmd, scorePsychometricCmd, scoreNewsCmd)
	rootCmd.AddCommand(scoreCmd)
}

func runScoreFinancial(cmd *cobra.Command, args []string) error {
	var p types.FinancialProfile
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		loaded, err := profile.LoadFinancial(path)
		if err != nil {
			return err
		}
		p = loaded
	}
	for _, f := range financialFlags {
		if cmd.Flags().Changed(f.name) {
			v, _ := cmd.Flags().GetFloat64(f.name)
			*f.field(&p) = v
		}
	}

	var breakdown []types.Contribution
	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		breakdown = financial.Breakdown(p)
	}
	return printScore(cmd, financial.Score(p), breakdown)
}

func runScorePsychometric(cmd *cobra.Command, args []string) error {
	var p types.PsychometricProfile
	if path, _ := cmd.Flags().GetString("file"); path != "" {
		loaded, err := profile.LoadPsychometric(path)
		if err != nil {
			return err
		}
		p = loaded
	}
	for _, f := range psychometricFlags {
		if cmd.Flags().Changed(f.name) {
			v, _ := cmd.Flags().GetInt(f.name)
			*f.field(&p) = v
		}
	}

	var breakdown []types.Contribution
	if explain, _ := cmd.Flags().GetBool("explain"); explain {
		breakdown = psychometric.Breakdown(p)
	}
	return printScore(cmd, psychometric.Score(p), breakdown)
}

func runScoreNews(cmd *cobra.Command, args []string) error {
	query, _ := cmd.Flags().GetString("query")
	if query == "" {
		query = strings.Join(args, " ")
	}
	if strings.TrimSpace(query) == "" {
		return fmt.Errorf("query required: provide --query or a positional subject")
	}

	scorer := newNewsScorer(cfg, log, nil)
	ctx := log.WithContext(cmd.Context())

	res, err := scorer.Score(ctx, query)
	if errors.Is(err, news.ErrNoArticles) {
		return printNoArticles(cmd, err)
	}
	if err != nil {
		return err
	}
	return printScore(cmd, res, nil)
}

func printScore(cmd *cobra.Command, res types.ScoreResult, breakdown []types.Contribution) error {
	w := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		if breakdown == nil {
			return report.WriteJSON(w, res)
		}
		return report.WriteJSON(w, struct {
			Result    types.ScoreResult    `json:"result"`
			Breakdown []types.Contribution `json:"breakdown"`
		}{res, breakdown})
	}

	if err := report.WriteScore(w, res); err != nil {
		return err
	}
	if breakdown != nil {
		fmt.Fprintln(w)
		return report.WriteBreakdown(w, breakdown)
	}
	return nil
}

func printNoArticles(cmd *cobra.Command, err error) error {
	w := cmd.OutOrStdout()
	if jsonOutput(cmd) {
		return report.WriteJSON(w, map[string]string{"error": err.Error()})
	}
	_, werr := io.WriteString(w, err.Error()+"\n")
	return werr
}

func jsonOutput(cmd *cobra.Command) bool {
	v, _ := cmd.Flags().GetBool("json")
	return v
}
