// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// Pipeline identifies which scoring pipeline produced a result.
type Pipeline string

const (
	PipelineFinancial    Pipeline = "financial"
	PipelinePsychometric Pipeline = "psychometric"
	PipelineNews         Pipeline = "news"
)

// ScoreKey returns the JSON field name that carries the score for this
// pipeline. The names match the public response format of each operation.
func (p Pipeline) ScoreKey() string {
	switch p {
	case PipelinePsychometric:
		return "psychometric_score"
	case PipelineNews:
		return "news_sentiment_score"
	default:
		return "score"
	}
}

// RiskCategory is the three-tier risk label attached to every score.
type RiskCategory string

const (
	RiskLow    RiskCategory = "Low Risk"
	RiskMedium RiskCategory = "Medium Risk"
	RiskHigh   RiskCategory = "High Risk"
)

// RiskColor is the display token paired with a RiskCategory.
type RiskColor string

const (
	ColorGreen  RiskColor = "green"
	ColorYellow RiskColor = "yellow"
	ColorRed    RiskColor = "red"
)

// ScoreResult is the output of one scoring pipeline. Score is rounded to two
// decimals. The value is immutable once returned.
type ScoreResult struct {
	Pipeline Pipeline
	Score    float64
	Category RiskCategory
	Color    RiskColor
}

// MarshalJSON renders the result with the pipeline-specific score key, e.g.
// {"psychometric_score": 72.5, "risk_category": "Medium Risk", "risk_color": "yellow"}.
func (r ScoreResult) MarshalJSON() ([]byte, error) {
	score, err := json.Marshal(r.Score)
	if err != nil {
		return nil, fmt.Errorf("marshaling score: %w", err)
	}
	category, err := json.Marshal(r.Category)
	if err != nil {
		return nil, err
	}
	color, err := json.Marshal(r.Color)
	if err != nil {
		return nil, err
	}
	return []byte(fmt.Sprintf(`{%q:%s,"risk_category":%s,"risk_color":%s}`,
		r.Pipeline.ScoreKey(), score, category, color)), nil
}

// Contribution describes how one input field moved a score: the raw value,
// its normalized form, the signed weight, and the weighted product.
type Contribution struct {
	Field      string  `json:"field" yaml:"field"`
	Raw        float64 `json:"raw" yaml:"raw"`
	Normalized float64 `json:"normalized" yaml:"normalized"`
	Weight     float64 `json:"weight" yaml:"weight"`
	Weighted   float64 `json:"weighted" yaml:"weighted"`
}

// Assessment collects the individual pipeline results for one applicant.
// Pipelines that were not requested are nil. When the news pipeline found no
// articles, News is nil and NewsError carries the reason.
type Assessment struct {
	RunID        string       `json:"run_id"`
	ApplicantID  string       `json:"applicant_id,omitempty"`
	Financial    *ScoreResult `json:"financial,omitempty"`
	Psychometric *ScoreResult `json:"psychometric,omitempty"`
	News         *ScoreResult `json:"news,omitempty"`
	NewsError    string       `json:"news_error,omitempty"`
	AssessedAt   time.Time    `json:"assessed_at"`
}
