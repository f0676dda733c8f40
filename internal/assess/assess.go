// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package assess runs every scoring pipeline that applies to one applicant
// and returns the results side by side. No blended score is produced; each
// pipeline keeps its own risk label.
package assess

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/pdiddy/credit-engine/internal/financial"
	"github.com/pdiddy/credit-engine/internal/metrics"
	"github.com/pdiddy/credit-engine/internal/news"
	"github.com/pdiddy/credit-engine/internal/psychometric"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// ErrEmptyApplicant is returned when an applicant carries no evidence at all.
var ErrEmptyApplicant = errors.New("applicant has no financial, psychometric or news section")

// NewsScorer scores a news query. *news.Scorer satisfies it.
type NewsScorer interface {
	Score(ctx context.Context, query string) (types.ScoreResult, error)
}

// Assessor fans an applicant out to the pipelines. The zero value is not
// usable; build one with New.
type Assessor struct {
	news    NewsScorer
	metrics *metrics.Recorder
	log     zerolog.Logger

	now   func() time.Time
	newID func() string
}

// Option customizes an Assessor.
type Option func(*Assessor)

// WithMetrics records every produced score on r.
func WithMetrics(r *metrics.Recorder) Option {
	return func(a *Assessor) { a.metrics = r }
}

// WithClock overrides the time source used for AssessedAt.
func WithClock(now func() time.Time) Option {
	return func(a *Assessor) { a.now = now }
}

// WithIDs overrides the run id generator.
func WithIDs(newID func() string) Option {
	return func(a *Assessor) { a.newID = newID }
}

// New builds an Assessor. ns may be nil, in which case applicants with a
// news query fail.
func New(ns NewsScorer, log zerolog.Logger, opts ...Option) *Assessor {
	a := &Assessor{
		news:  ns,
		log:   log.With().Str("component", "assess").Logger(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// Assess runs the financial, psychometric and news pipelines that apply to
// app concurrently. A news query with no articles is not an error: News stays
// nil and NewsError carries the message. Any other news failure fails the
// whole assessment.
func (a *Assessor) Assess(ctx context.Context, app types.Applicant) (types.Assessment, error) {
	if app.Financial == nil && app.Psychometric == nil && app.NewsQuery == "" {
		return types.Assessment{}, ErrEmptyApplicant
	}
	if app.NewsQuery != "" && a.news == nil {
		return types.Assessment{}, fmt.Errorf("news query %q given but no news scorer configured", app.NewsQuery)
	}

	out := types.Assessment{
		RunID:       a.newID(),
		ApplicantID: app.ID,
	}
	log := a.log.With().Str("run_id", out.RunID).Str("applicant", app.ID).Logger()

	var (
		wg      sync.WaitGroup
		newsErr error
	)

	if app.Financial != nil {
		wg.Add(1)
		go func(p types.FinancialProfile) {
			defer wg.Done()
			r := financial.Score(p)
			out.Financial = &r
		}(*app.Financial)
	}

	if app.Psychometric != nil {
		wg.Add(1)
		go func(p types.PsychometricProfile) {
			defer wg.Done()
			r := psychometric.Score(p)
			out.Psychometric = &r
		}(*app.Psychometric)
	}

	if app.NewsQuery != "" {
		wg.Add(1)
		go func(query string) {
			defer wg.Done()
			r, err := a.news.Score(ctx, query)
			if err != nil {
				newsErr = err
				return
			}
			out.News = &r
		}(app.NewsQuery)
	}

	wg.Wait()

	switch {
	case errors.Is(newsErr, news.ErrNoArticles):
		out.NewsError = newsErr.Error()
		a.metrics.ObserveNoArticles()
	case newsErr != nil:
		log.Error().Err(newsErr).Msg("news pipeline failed")
		return types.Assessment{}, fmt.Errorf("news pipeline: %w", newsErr)
	}

	for _, r := range []*types.ScoreResult{out.Financial, out.Psychometric, out.News} {
		if r != nil {
			a.metrics.ObserveScore(*r)
		}
	}

	out.AssessedAt = a.now().UTC()
	log.Info().
		Bool("financial", out.Financial != nil).
		Bool("psychometric", out.Psychometric != nil).
		Bool("news", out.News != nil).
		Msg("assessment complete")
	return out, nil
}
