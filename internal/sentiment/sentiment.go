// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sentiment turns classifier output into a signed polarity and
// aggregates polarities across articles.
//
// The classifier itself is a black box behind the Classifier interface. For
// each text it returns a label (positive, neutral, negative) and a confidence
// in [0,1]. The signed polarity is +confidence, 0 or -confidence.
package sentiment

import (
	"context"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Label values recognised by Polarity. Matching is case-insensitive.
const (
	LabelPositive = "positive"
	LabelNeutral  = "neutral"
	LabelNegative = "negative"
)

// direction maps a lowercased label to its sign. Unknown labels map to 0.
var direction = map[string]float64{
	LabelPositive: 1,
	LabelNeutral:  0,
	LabelNegative: -1,
}

// Classification is the classifier verdict for one text.
type Classification struct {
	Label      string  `json:"label" yaml:"label"`
	Confidence float64 `json:"score" yaml:"score"`
}

// Polarity returns the signed sentiment: direction(label) × confidence.
func (c Classification) Polarity() float64 {
	return direction[strings.ToLower(c.Label)] * c.Confidence
}

// Classifier labels a batch of texts. Implementations return one
// Classification per text, in input order.
type Classifier interface {
	Classify(ctx context.Context, texts []string) ([]Classification, error)
}

// ClassifierFunc adapts a function to the Classifier interface.
type ClassifierFunc func(ctx context.Context, texts []string) ([]Classification, error)

// Classify calls f.
func (f ClassifierFunc) Classify(ctx context.Context, texts []string) ([]Classification, error) {
	return f(ctx, texts)
}

// MeanPolarity returns the arithmetic mean of the polarities in cs. The mean
// of an empty batch is 0.
func MeanPolarity(cs []Classification) float64 {
	if len(cs) == 0 {
		return 0
	}
	polarities := make([]float64, len(cs))
	for i, c := range cs {
		polarities[i] = c.Polarity()
	}
	return stat.Mean(polarities, nil)
}

// Rescale maps a polarity in [-1,1] onto [0,100].
func Rescale(polarity float64) float64 {
	return (polarity + 1) * 50
}
