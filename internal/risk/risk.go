// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package risk maps numeric scores to a three-tier risk category and color.
//
// Each pipeline supplies its own Thresholds. The financial and news pipelines
// share Inclusive (score >= cutoff); the psychometric pipeline uses Strict
// (score > cutoff) with a higher medium cutoff. The two sets are calibrated
// separately and must stay separate.
package risk

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/pdiddy/credit-engine/pkg/types"
)

// Thresholds are the cutoffs for one pipeline. A score at or above Low
// (strictly above when Strict is set) is Low risk; at or above Medium
// (strictly above when Strict) is Medium risk; anything else is High risk.
type Thresholds struct {
	Low    float64
	Medium float64
	Strict bool
}

var (
	// Inclusive is used by the financial and news pipelines: >=80 Low, >=50 Medium.
	Inclusive = Thresholds{Low: 80, Medium: 50}

	// Strict is used by the psychometric pipeline: >80 Low, >60 Medium.
	Strict = Thresholds{Low: 80, Medium: 60, Strict: true}
)

// Bucket returns the risk category and display color for score.
func Bucket(score float64, t Thresholds) (types.RiskCategory, types.RiskColor) {
	switch {
	case t.passes(score, t.Low):
		return types.RiskLow, types.ColorGreen
	case t.passes(score, t.Medium):
		return types.RiskMedium, types.ColorYellow
	default:
		return types.RiskHigh, types.ColorRed
	}
}

func (t Thresholds) passes(score, cutoff float64) bool {
	if t.Strict {
		return score > cutoff
	}
	return score >= cutoff
}

// Round2 rounds v to two decimal places, halves away from zero. Infinities
// and NaN are returned unchanged.
func Round2(v float64) float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return v
	}
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Result builds a ScoreResult for pipeline from an already rounded score.
func Result(p types.Pipeline, score float64, t Thresholds) types.ScoreResult {
	category, color := Bucket(score, t)
	return types.ScoreResult{
		Pipeline: p,
		Score:    score,
		Category: category,
		Color:    color,
	}
}
