package main

import (
	"github.com/rs/zerolog"

	"github.com/pdiddy/credit-engine/internal/metrics"
	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/sentiment"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// newNewsScorer wires the NewsAPI fetcher and the inference classifier into
// a news scorer. rec may be nil.
func newNewsScorer(c types.Config, l zerolog.Logger, rec *metrics.Recorder) *news.Scorer {
	if c.News.APIKey == "" {
		l.Warn().Msg("no NewsAPI key configured (news.api_key or .secrets/newsapi-api-key); news lookups will find nothing")
	}
	fetcher := rec.InstrumentFetcher(news.NewNewsAPIFetcher(c.News, l))
	classifier := rec.InstrumentClassifier(sentiment.NewInferenceClassifier(c.Classifier))
	return news.NewScorer(fetcher, classifier, l)
}
