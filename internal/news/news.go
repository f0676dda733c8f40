// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package news scores an applicant from the sentiment of recent news.
//
// A Scorer fetches up to a handful of article texts for a query, classifies
// each one, averages the signed polarities and rescales the mean from [-1,1]
// onto [0,100]. When no articles are found it reports ErrNoArticles instead
// of a score, so "no evidence" is never confused with "low sentiment".
package news

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/credit-engine/internal/risk"
	"github.com/pdiddy/credit-engine/internal/sentiment"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// ErrNoArticles is returned when the fetcher produced no article texts.
var ErrNoArticles = errors.New("No relevant news articles found")

// Fetcher searches for news about a subject. Implementations return up to a
// fixed number of texts ordered by relevance; any failure yields an empty
// result.
type Fetcher interface {
	Fetch(ctx context.Context, query string) []string
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, query string) []string

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, query string) []string {
	return f(ctx, query)
}

// Scorer runs the news sentiment pipeline. It holds no per-request state and
// is safe for concurrent use when its collaborators are.
type Scorer struct {
	fetcher    Fetcher
	classifier sentiment.Classifier
	log        zerolog.Logger
}

// NewScorer wires a Scorer to its collaborators.
func NewScorer(fetcher Fetcher, classifier sentiment.Classifier, log zerolog.Logger) *Scorer {
	return &Scorer{
		fetcher:    fetcher,
		classifier: classifier,
		log:        log.With().Str("component", "news").Logger(),
	}
}

// Score returns the news sentiment score for query. It returns ErrNoArticles
// when nothing was fetched, and a wrapped classifier error when
// classification fails.
func (s *Scorer) Score(ctx context.Context, query string) (types.ScoreResult, error) {
	texts := s.fetcher.Fetch(ctx, query)
	if len(texts) == 0 {
		s.log.Info().Str("query", query).Msg("no articles")
		return types.ScoreResult{}, ErrNoArticles
	}

	classified, err := s.classifier.Classify(ctx, texts)
	if err != nil {
		return types.ScoreResult{}, fmt.Errorf("classifying %d articles: %w", len(texts), err)
	}
	if len(classified) != len(texts) {
		s.log.Warn().Int("articles", len(texts)).Int("classified", len(classified)).Msg("classifier returned a short batch")
	}

	mean := sentiment.MeanPolarity(classified)
	score := risk.Round2(sentiment.Rescale(mean))

	s.log.Debug().
		Str("query", query).
		Int("articles", len(texts)).
		Float64("mean_polarity", mean).
		Float64("score", score).
		Msg("news scored")

	return risk.Result(types.PipelineNews, score, risk.Inclusive), nil
}
