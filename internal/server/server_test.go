// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/credit-engine/internal/metrics"
	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/sentiment"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// mockNews returns a fixed result or error.
type mockNews struct {
	result types.ScoreResult
	err    error
}

func (m mockNews) Score(context.Context, string) (types.ScoreResult, error) {
	return m.result, m.err
}

func testServer(t *testing.T, ns *mockNews) (*httptest.Server, *metrics.Recorder) {
	t.Helper()
	rec := metrics.NewRecorder()
	cfg := Config{
		Version: "1.2.3",
		Log:     zerolog.Nop(),
		Metrics: rec,
	}
	if ns != nil {
		cfg.News = ns
	}
	ts := httptest.NewServer(New(cfg).Handler())
	t.Cleanup(ts.Close)
	return ts, rec
}

func post(t *testing.T, url, body string) (int, map[string]any) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out), "body: %s", data)
	return resp.StatusCode, out
}

func TestHealth(t *testing.T) {
	ts, _ := testServer(t, nil)

	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var got healthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
	assert.Equal(t, healthResponse{Status: "ok", Version: "1.2.3"}, got)
}

func TestCalculateBasicScore(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		score    float64
		category string
		color    string
	}{
		{
			name:     "strong applicant",
			body:     `{"income":100000,"revenue":500000,"debt":0,"credit_utilization":0,"loan_repayment":100,"business_age":20,"transaction_patterns":100,"growth_rate":50}`,
			score:    90,
			category: "Low Risk",
			color:    "green",
		},
		{
			name:     "typical applicant",
			body:     `{"income":50000,"revenue":200000,"debt":20000,"credit_utilization":30,"loan_repayment":90,"business_age":5,"transaction_patterns":80,"growth_rate":10}`,
			score:    42,
			category: "High Risk",
			color:    "red",
		},
		{
			name:     "heavy debt clamps to zero",
			body:     `{"income":0,"revenue":0,"debt":1000000,"credit_utilization":100,"loan_repayment":0,"business_age":0,"transaction_patterns":0,"growth_rate":0}`,
			score:    0,
			category: "High Risk",
			color:    "red",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := testServer(t, nil)
			status, got := post(t, ts.URL+"/calculate_basic_score", tt.body)

			assert.Equal(t, http.StatusOK, status)
			assert.Equal(t, map[string]any{
				"score":         tt.score,
				"risk_category": tt.category,
				"risk_color":    tt.color,
			}, got)
		})
	}
}

func TestCalculatePsychometricScore(t *testing.T) {
	ts, _ := testServer(t, nil)
	status, got := post(t, ts.URL+"/calculate_psychometric_score",
		`{"risk_tolerance":70,"financial_responsibility":80,"future_planning":60,"impulse_control":90,"loan_attitude":50}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{
		"psychometric_score": 73.0,
		"risk_category":      "Medium Risk",
		"risk_color":         "yellow",
	}, got)
}

func TestCalculatePsychometricScoreUnclamped(t *testing.T) {
	ts, _ := testServer(t, nil)
	status, got := post(t, ts.URL+"/calculate_psychometric_score",
		`{"risk_tolerance":150,"financial_responsibility":150,"future_planning":150,"impulse_control":150,"loan_attitude":150}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 150.0, got["psychometric_score"])
	assert.Equal(t, "Low Risk", got["risk_category"])
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		body   string
		status int
		errMsg string
	}{
		{"malformed json", "/calculate_basic_score", `{"income":`, http.StatusBadRequest, "malformed JSON"},
		{"empty body", "/calculate_basic_score", ``, http.StatusBadRequest, "request body is empty"},
		{"missing financial fields", "/calculate_basic_score", `{"income":1,"revenue":2}`, http.StatusUnprocessableEntity, "business_age, credit_utilization, debt, growth_rate, loan_repayment, transaction_patterns"},
		{"wrong type", "/calculate_basic_score", `{"income":"lots"}`, http.StatusUnprocessableEntity, `"income"`},
		{"fractional psychometric answer", "/calculate_psychometric_score", `{"risk_tolerance":70.5,"financial_responsibility":80,"future_planning":60,"impulse_control":90,"loan_attitude":50}`, http.StatusUnprocessableEntity, "risk_tolerance"},
		{"missing psychometric field", "/calculate_psychometric_score", `{"risk_tolerance":70,"financial_responsibility":80,"future_planning":60,"impulse_control":90}`, http.StatusUnprocessableEntity, "loan_attitude"},
		{"missing query", "/calculate_news_credit_score", `{}`, http.StatusUnprocessableEntity, "query"},
		{"empty query", "/calculate_news_credit_score", `{"query":""}`, http.StatusUnprocessableEntity, "query"},
		{"empty applicant", "/assess", `{"id":"APP-0"}`, http.StatusUnprocessableEntity, "no financial, psychometric or news"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, _ := testServer(t, &mockNews{})
			status, got := post(t, ts.URL+tt.path, tt.body)
			assert.Equal(t, tt.status, status)
			assert.Contains(t, got["error"], tt.errMsg)
		})
	}
}

func TestZeroValuedFieldsAreAccepted(t *testing.T) {
	ts, _ := testServer(t, nil)
	status, got := post(t, ts.URL+"/calculate_basic_score",
		`{"income":0,"revenue":0,"debt":0,"credit_utilization":0,"loan_repayment":0,"business_age":0,"transaction_patterns":0,"growth_rate":0}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 0.0, got["score"])
}

func TestCalculateNewsCreditScore(t *testing.T) {
	ns := &mockNews{result: types.ScoreResult{
		Pipeline: types.PipelineNews, Score: 56.67, Category: types.RiskMedium, Color: types.ColorYellow,
	}}
	ts, _ := testServer(t, ns)
	status, got := post(t, ts.URL+"/calculate_news_credit_score", `{"query":"Acme"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{
		"news_sentiment_score": 56.67,
		"risk_category":        "Medium Risk",
		"risk_color":           "yellow",
	}, got)
}

func TestCalculateNewsCreditScoreNoArticles(t *testing.T) {
	ts, rec := testServer(t, &mockNews{err: news.ErrNoArticles})
	status, got := post(t, ts.URL+"/calculate_news_credit_score", `{"query":"Nobody"}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, map[string]any{"error": "No relevant news articles found"}, got)

	body := scrape(t, rec)
	assert.Contains(t, body, "credit_engine_news_no_articles_total 1")
}

func TestCalculateNewsCreditScoreClassifierFailure(t *testing.T) {
	ts, _ := testServer(t, &mockNews{err: errors.New("inference endpoint returned HTTP 500")})
	status, got := post(t, ts.URL+"/calculate_news_credit_score", `{"query":"Acme"}`)

	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "sentiment classification failed", got["error"])
}

func TestCalculateNewsCreditScoreNotConfigured(t *testing.T) {
	ts, _ := testServer(t, nil)
	status, got := post(t, ts.URL+"/calculate_news_credit_score", `{"query":"Acme"}`)

	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Contains(t, got["error"], "not configured")
}

func TestNewsEndToEnd(t *testing.T) {
	fetcher := news.FetcherFunc(func(context.Context, string) []string { return []string{"a", "b", "c"} })
	classifier := sentiment.ClassifierFunc(func(context.Context, []string) ([]sentiment.Classification, error) {
		return []sentiment.Classification{
			{Label: "positive", Confidence: 0.9},
			{Label: "neutral", Confidence: 0.8},
			{Label: "negative", Confidence: 0.5},
		}, nil
	})
	s := New(Config{Log: zerolog.Nop(), News: news.NewScorer(fetcher, classifier, zerolog.Nop())})
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	status, got := post(t, ts.URL+"/calculate_news_credit_score", `{"query":"Acme"}`)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, 56.67, got["news_sentiment_score"])
	assert.Equal(t, "Medium Risk", got["risk_category"])
}

func TestAssess(t *testing.T) {
	ts, _ := testServer(t, &mockNews{err: news.ErrNoArticles})
	status, got := post(t, ts.URL+"/assess", `{
		"id": "APP-9",
		"financial": {"income":100000,"revenue":500000,"loan_repayment":100,"business_age":20,"transaction_patterns":100,"growth_rate":50},
		"psychometric": {"risk_tolerance":70,"financial_responsibility":80,"future_planning":60,"impulse_control":90,"loan_attitude":50},
		"news_query": "Acme"
	}`)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "APP-9", got["applicant_id"])
	assert.NotEmpty(t, got["run_id"])
	assert.Equal(t, map[string]any{"score": 90.0, "risk_category": "Low Risk", "risk_color": "green"}, got["financial"])
	assert.Equal(t, map[string]any{"psychometric_score": 73.0, "risk_category": "Medium Risk", "risk_color": "yellow"}, got["psychometric"])
	assert.NotContains(t, got, "news")
	assert.Equal(t, "No relevant news articles found", got["news_error"])
}

func TestAssessNewsFailure(t *testing.T) {
	ts, _ := testServer(t, &mockNews{err: errors.New("boom")})
	status, got := post(t, ts.URL+"/assess", `{"news_query":"Acme"}`)
	assert.Equal(t, http.StatusBadGateway, status)
	assert.Equal(t, "assessment failed", got["error"])
}

func TestCORS(t *testing.T) {
	ts, _ := testServer(t, nil)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/calculate_basic_score", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	req.Header.Set("Access-Control-Request-Headers", "Content-Type")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestMetricsEndpoint(t *testing.T) {
	ts, rec := testServer(t, nil)
	status, _ := post(t, ts.URL+"/calculate_basic_score",
		`{"income":100000,"revenue":500000,"debt":0,"credit_utilization":0,"loan_repayment":100,"business_age":20,"transaction_patterns":100,"growth_rate":50}`)
	require.Equal(t, http.StatusOK, status)

	body := scrape(t, rec)
	assert.Contains(t, body, `credit_engine_scores_total{pipeline="financial",risk_category="Low Risk"} 1`)
	assert.Contains(t, body, `credit_engine_http_requests_total{code="200",route="/calculate_basic_score"} 1`)

	resp, err := http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUnknownRoute(t *testing.T) {
	ts, _ := testServer(t, nil)
	resp, err := http.Get(ts.URL + "/calculate_basic_score")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestNewDefaults(t *testing.T) {
	s := New(Config{Log: zerolog.Nop()})
	assert.Equal(t, DefaultAddr, s.Addr())
}

func scrape(t *testing.T, rec *metrics.Recorder) string {
	t.Helper()
	w := httptest.NewRecorder()
	rec.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	return w.Body.String()
}
