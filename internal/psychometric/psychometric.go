// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package psychometric scores an applicant from questionnaire answers.
//
// The score is the weighted average of five answers. Answers are expected in
// [0,100] but the result is not clamped: out-of-range answers produce an
// out-of-range score.
package psychometric

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/credit-engine/internal/risk"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// Factor is one weighted questionnaire dimension.
type Factor struct {
	Field  string
	Weight float64
}

// factors is ordered to match values(); the weights sum to 1.0.
var factors = [...]Factor{
	{Field: "risk_tolerance", Weight: 0.20},
	{Field: "financial_responsibility", Weight: 0.30},
	{Field: "future_planning", Weight: 0.20},
	{Field: "impulse_control", Weight: 0.20},
	{Field: "loan_attitude", Weight: 0.10},
}

// Factors returns a copy of the questionnaire weights in field order.
func Factors() []Factor {
	out := make([]Factor, len(factors))
	copy(out, factors[:])
	return out
}

// Score computes the psychometric credit score.
func Score(p types.PsychometricProfile) types.ScoreResult {
	score := risk.Round2(floats.Dot(values(p), weights()))
	return risk.Result(types.PipelinePsychometric, score, risk.Strict)
}

// Breakdown lists each answer's contribution to the score.
func Breakdown(p types.PsychometricProfile) []types.Contribution {
	raw := values(p)
	out := make([]types.Contribution, len(factors))
	for i, f := range factors {
		out[i] = types.Contribution{
			Field:      f.Field,
			Raw:        raw[i],
			Normalized: raw[i],
			Weight:     f.Weight,
			Weighted:   raw[i] * f.Weight,
		}
	}
	return out
}

func weights() []float64 {
	w := make([]float64, len(factors))
	for i, f := range factors {
		w[i] = f.Weight
	}
	return w
}

func values(p types.PsychometricProfile) []float64 {
	return []float64{
		float64(p.RiskTolerance),
		float64(p.FinancialResponsibility),
		float64(p.FuturePlanning),
		float64(p.ImpulseControl),
		float64(p.LoanAttitude),
	}
}
