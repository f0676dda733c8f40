// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/credit-engine/internal/secrets"
	"github.com/pdiddy/credit-engine/internal/sentiment"
)

// execute runs the root command with args and returns stdout. Flags are
// reset first so tests do not leak state into each other.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&bytes.Buffer{})
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return out.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "credit-engine dev\n", out)
}

func TestScoreFinancialFlags(t *testing.T) {
	out, err := execute(t, "score", "financial", "--json",
		"--income", "100000", "--revenue", "500000", "--loan-repayment", "100",
		"--business-age", "20", "--transaction-patterns", "100", "--growth-rate", "50")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, map[string]any{"score": 90.0, "risk_category": "Low Risk", "risk_color": "green"}, got)
}

func TestScoreFinancialFileWithOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fin.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`income: 50000
revenue: 200000
debt: 20000
credit_utilization: 30
loan_repayment: 90
business_age: 5
transaction_patterns: 80
growth_rate: 10
`), 0o644))

	out, err := execute(t, "score", "financial", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "42.00")
	assert.Contains(t, out, "High Risk")

	// Dropping debt to zero adds 4 points.
	out, err = execute(t, "score", "financial", "--file", path, "--debt", "0", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"score": 46`)
}

func TestScorePsychometricExplain(t *testing.T) {
	out, err := execute(t, "score", "psychometric", "--explain",
		"--risk-tolerance", "70", "--financial-responsibility", "80", "--future-planning", "60",
		"--impulse-control", "90", "--loan-attitude", "50")
	require.NoError(t, err)
	assert.Contains(t, out, "Psychometric:    73.00  Medium Risk")
	assert.Contains(t, out, "financial_responsibility")
	assert.Contains(t, out, "Total")
}

func TestScorePsychometricExplainJSON(t *testing.T) {
	out, err := execute(t, "score", "psychometric", "--explain", "--json", "--loan-attitude", "100")
	require.NoError(t, err)

	var got struct {
		Result    map[string]any   `json:"result"`
		Breakdown []map[string]any `json:"breakdown"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 10.0, got.Result["psychometric_score"])
	assert.Len(t, got.Breakdown, 5)
}

func TestScoreNewsRequiresQuery(t *testing.T) {
	_, err := execute(t, "score", "news")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query required")
}

func TestAssessRequiresFile(t *testing.T) {
	_, err := execute(t, "assess")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "applicant file required")
}

func TestAssessFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acme.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"financial": {"income":100000,"revenue":500000,"loan_repayment":100,"business_age":20,"transaction_patterns":100,"growth_rate":50},
		"psychometric": {"risk_tolerance":70,"financial_responsibility":80,"future_planning":60,"impulse_control":90,"loan_attitude":50}
	}`), 0o644))

	out, err := execute(t, "assess", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, "for acme")
	assert.Contains(t, out, "Financial:       90.00  Low Risk")
	assert.Contains(t, out, "Psychometric:    73.00  Medium Risk")
	assert.Contains(t, out, "News sentiment: skipped")
}

func TestConfigFrom(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	c := configFrom(v, secrets.Store{
		secrets.NewsAPIKey:    "news-from-file",
		secrets.ClassifierKey: "hf-from-file",
	})

	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, ":8000", c.Server.Addr)
	assert.Equal(t, "https://newsapi.org", c.News.BaseURL)
	assert.Equal(t, 5, c.News.MaxArticles)
	assert.Equal(t, 10*time.Second, c.News.Timeout)
	assert.Equal(t, "news-from-file", c.News.APIKey)
	assert.Equal(t, sentiment.DefaultEndpoint, c.Classifier.Endpoint)
	assert.Equal(t, 30*time.Second, c.Classifier.Timeout)
	assert.Equal(t, 3, c.Classifier.MaxRetries)
	assert.Equal(t, "hf-from-file", c.Classifier.APIKey)
	assert.Equal(t, "credit-engine/dev", c.News.UserAgent)
}

func TestConfigFromPrefersExplicitKeys(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	v.Set("news.api_key", "explicit")
	v.Set("news.max_articles", 3)
	v.Set("classifier.timeout", "5s")

	c := configFrom(v, secrets.Store{secrets.NewsAPIKey: "from-file"})
	assert.Equal(t, "explicit", c.News.APIKey)
	assert.Equal(t, 3, c.News.MaxArticles)
	assert.Equal(t, 5*time.Second, c.Classifier.Timeout)
	assert.Empty(t, c.Classifier.APIKey)
}
