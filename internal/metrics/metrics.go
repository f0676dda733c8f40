// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics exposes Prometheus collectors for scoring outcomes and the
// latency of the external collaborators (news search, sentiment classifier).
//
// A Recorder owns its registry so tests and multiple servers in one process
// never collide on the global default registry. All methods are safe on a nil
// *Recorder, which lets callers treat metrics as optional.
package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/sentiment"
	"github.com/pdiddy/credit-engine/pkg/types"
)

const namespace = "credit_engine"

// Collaborator names used as the "collaborator" label.
const (
	CollaboratorNews       = "news"
	CollaboratorClassifier = "classifier"
)

// Outcome label values for external calls.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

// Recorder holds the collectors and the registry they are registered with.
type Recorder struct {
	registry *prometheus.Registry

	scores       *prometheus.CounterVec
	scoreValues  *prometheus.HistogramVec
	noArticles   prometheus.Counter
	externalTime *prometheus.HistogramVec
	requests     *prometheus.CounterVec
}

// NewRecorder builds a Recorder with a fresh registry that also carries the
// Go runtime and process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		scores: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "scores_total",
			Help:      "Scores computed, by pipeline and risk category.",
		}, []string{"pipeline", "risk_category"}),
		scoreValues: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "score",
			Help:      "Distribution of computed scores.",
			Buckets:   prometheus.LinearBuckets(10, 10, 10),
		}, []string{"pipeline"}),
		noArticles: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "news_no_articles_total",
			Help:      "News scoring requests that found no articles.",
		}),
		externalTime: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "external_call_duration_seconds",
			Help:      "Latency of calls to external collaborators.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"collaborator", "outcome"}),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests served, by route and status code.",
		}, []string{"route", "code"}),
	}
	r.registry.MustRegister(
		r.scores,
		r.scoreValues,
		r.noArticles,
		r.externalTime,
		r.requests,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Registry returns the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	if r == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// ObserveScore records one computed score.
func (r *Recorder) ObserveScore(res types.ScoreResult) {
	if r == nil {
		return
	}
	r.scores.WithLabelValues(string(res.Pipeline), string(res.Category)).Inc()
	r.scoreValues.WithLabelValues(string(res.Pipeline)).Observe(res.Score)
}

// ObserveNoArticles records a news request that found nothing to score.
func (r *Recorder) ObserveNoArticles() {
	if r == nil {
		return
	}
	r.noArticles.Inc()
}

// ObserveExternal records the duration of one call to a collaborator.
func (r *Recorder) ObserveExternal(collaborator, outcome string, d time.Duration) {
	if r == nil {
		return
	}
	r.externalTime.WithLabelValues(collaborator, outcome).Observe(d.Seconds())
}

// ObserveRequest counts one served HTTP request.
func (r *Recorder) ObserveRequest(route string, code int) {
	if r == nil {
		return
	}
	r.requests.WithLabelValues(route, strconv.Itoa(code)).Inc()
}

// InstrumentFetcher wraps f so each Fetch is timed.
func (r *Recorder) InstrumentFetcher(f news.Fetcher) news.Fetcher {
	if r == nil {
		return f
	}
	return news.FetcherFunc(func(ctx context.Context, query string) []string {
		start := time.Now()
		texts := f.Fetch(ctx, query)
		outcome := OutcomeOK
		if len(texts) == 0 {
			outcome = OutcomeEmpty
		}
		r.ObserveExternal(CollaboratorNews, outcome, time.Since(start))
		return texts
	})
}

// InstrumentClassifier wraps c so each Classify is timed.
func (r *Recorder) InstrumentClassifier(c sentiment.Classifier) sentiment.Classifier {
	if r == nil {
		return c
	}
	return sentiment.ClassifierFunc(func(ctx context.Context, texts []string) ([]sentiment.Classification, error) {
		start := time.Now()
		out, err := c.Classify(ctx, texts)
		outcome := OutcomeOK
		if err != nil {
			outcome = OutcomeError
		}
		r.ObserveExternal(CollaboratorClassifier, outcome, time.Since(start))
		return out, err
	})
}
