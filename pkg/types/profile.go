// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the credit-engine pipelines.
// It covers the applicant inputs (FinancialProfile, PsychometricProfile,
// SentimentQuery, Applicant), the outputs (ScoreResult, Contribution,
// Assessment) and the configuration structs read by the CLI.
package types

// FinancialProfile holds the structured financial statement fields of an
// applicant. Values are unitless on input; each field has an implicit
// expected scale (income up to ~100,000, revenue up to ~500,000, percentages
// up to 100, business age in years up to ~20, growth rate up to ~50).
type FinancialProfile struct {
	Income              float64 `json:"income" yaml:"income"`
	Revenue             float64 `json:"revenue" yaml:"revenue"`
	Debt                float64 `json:"debt" yaml:"debt"`
	CreditUtilization   float64 `json:"credit_utilization" yaml:"credit_utilization"`
	LoanRepayment       float64 `json:"loan_repayment" yaml:"loan_repayment"`
	BusinessAge         float64 `json:"business_age" yaml:"business_age"`
	TransactionPatterns float64 `json:"transaction_patterns" yaml:"transaction_patterns"`
	GrowthRate          float64 `json:"growth_rate" yaml:"growth_rate"`
}

// PsychometricProfile holds the answers to the behavioral questionnaire.
// Each answer is expected in [0,100]; the range is a convention and is not
// enforced anywhere.
type PsychometricProfile struct {
	RiskTolerance           int `json:"risk_tolerance" yaml:"risk_tolerance"`
	FinancialResponsibility int `json:"financial_responsibility" yaml:"financial_responsibility"`
	FuturePlanning          int `json:"future_planning" yaml:"future_planning"`
	ImpulseControl          int `json:"impulse_control" yaml:"impulse_control"`
	LoanAttitude            int `json:"loan_attitude" yaml:"loan_attitude"`
}

// SentimentQuery identifies the subject to search news for.
type SentimentQuery struct {
	Query string `json:"query" yaml:"query" validate:"required"`
}

// Applicant bundles every evidence source known for one applicant. Each
// section is optional; a nil profile or empty NewsQuery skips that pipeline.
type Applicant struct {
	ID           string               `json:"id,omitempty" yaml:"id,omitempty"`
	Financial    *FinancialProfile    `json:"financial,omitempty" yaml:"financial,omitempty"`
	Psychometric *PsychometricProfile `json:"psychometric,omitempty" yaml:"psychometric,omitempty"`
	NewsQuery    string               `json:"news_query,omitempty" yaml:"news_query,omitempty"`
}
