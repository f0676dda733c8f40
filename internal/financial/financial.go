// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package financial scores an applicant from structured financial statements.
//
// Each field is divided by a fixed reference scale so that typical values land
// near 1.0, then multiplied by a signed weight. Debt and credit utilization
// carry negative weights. The weighted sum is scaled to a percentage, rounded
// to two decimals and clamped into [0,100].
package financial

import (
	"gonum.org/v1/gonum/floats"

	"github.com/pdiddy/credit-engine/internal/risk"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// Factor is one weighted input of the financial score.
type Factor struct {
	Field  string
	Scale  float64
	Weight float64
}

// factors is ordered to match values().
var factors = [...]Factor{
	{Field: "income", Scale: 100000, Weight: 0.15},
	{Field: "revenue", Scale: 500000, Weight: 0.15},
	{Field: "debt", Scale: 100000, Weight: -0.20},
	{Field: "credit_utilization", Scale: 100, Weight: -0.10},
	{Field: "loan_repayment", Scale: 100, Weight: 0.20},
	{Field: "business_age", Scale: 20, Weight: 0.10},
	{Field: "transaction_patterns", Scale: 100, Weight: 0.15},
	{Field: "growth_rate", Scale: 50, Weight: 0.15},
}

const (
	minScore = 0
	maxScore = 100
)

// Factors returns a copy of the scoring factors in field order.
func Factors() []Factor {
	out := make([]Factor, len(factors))
	copy(out, factors[:])
	return out
}

// Score computes the financial credit score. It never fails: out-of-range or
// negative inputs simply push the score to a boundary of [0,100].
func Score(p types.FinancialProfile) types.ScoreResult {
	normalized, weights := normalize(p)
	raw := floats.Dot(normalized, weights) * 100
	score := risk.Clamp(risk.Round2(raw), minScore, maxScore)
	return risk.Result(types.PipelineFinancial, score, risk.Inclusive)
}

// Breakdown lists each field's contribution to the unclamped score, in
// percentage points.
func Breakdown(p types.FinancialProfile) []types.Contribution {
	raw := values(p)
	normalized, weights := normalize(p)
	out := make([]types.Contribution, len(factors))
	for i, f := range factors {
		out[i] = types.Contribution{
			Field:      f.Field,
			Raw:        raw[i],
			Normalized: normalized[i],
			Weight:     weights[i],
			Weighted:   normalized[i] * weights[i] * 100,
		}
	}
	return out
}

func normalize(p types.FinancialProfile) (normalized, weights []float64) {
	raw := values(p)
	normalized = make([]float64, len(factors))
	weights = make([]float64, len(factors))
	for i, f := range factors {
		normalized[i] = raw[i] / f.Scale
		weights[i] = f.Weight
	}
	return normalized, weights
}

func values(p types.FinancialProfile) []float64 {
	return []float64{
		p.Income,
		p.Revenue,
		p.Debt,
		p.CreditUtilization,
		p.LoanRepayment,
		p.BusinessAge,
		p.TransactionPatterns,
		p.GrowthRate,
	}
}
