// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sentiment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/credit-engine/internal/httputil"
	"github.com/pdiddy/credit-engine/pkg/types"
)

// DefaultEndpoint is a hosted text-classification model with
// positive/neutral/negative labels.
const DefaultEndpoint = "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest"

// InferenceClassifier calls a Hugging Face style text-classification
// endpoint: POST {"inputs": [...]} returning, per input, either a single
// {label, score} object or a list of candidate labels.
type InferenceClassifier struct {
	Client *http.Client
	Config types.ClassifierConfig
}

// NewInferenceClassifier builds a classifier with a client honouring cfg.Timeout.
func NewInferenceClassifier(cfg types.ClassifierConfig) *InferenceClassifier {
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	return &InferenceClassifier{
		Client: &http.Client{Timeout: cfg.Timeout},
		Config: cfg,
	}
}

type inferenceRequest struct {
	Inputs []string `json:"inputs"`
}

// Classify sends texts in one request and returns one Classification per
// text. Transport failures, non-200 statuses and undecodable payloads are
// errors; the caller decides whether they are fatal.
func (c *InferenceClassifier) Classify(ctx context.Context, texts []string) ([]Classification, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	payload, err := json.Marshal(inferenceRequest{Inputs: texts})
	if err != nil {
		return nil, fmt.Errorf("encoding inference request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Config.Endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Config.UserAgent != "" {
		req.Header.Set("User-Agent", c.Config.UserAgent)
	}
	if c.Config.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.Config.APIKey)
	}

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, c.Config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("inference request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading inference response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference endpoint returned HTTP %d: %s", resp.StatusCode, truncate(string(body), 200))
	}

	return decodeInference(body)
}

// decodeInference accepts both response shapes:
//
//	[[{"label":"positive","score":0.9}, {"label":"neutral","score":0.08}, ...], ...]
//	[{"label":"POSITIVE","score":0.99}, ...]
//
// For the nested shape the highest-scoring candidate of each text wins.
func decodeInference(body []byte) ([]Classification, error) {
	var nested [][]Classification
	if err := json.Unmarshal(body, &nested); err == nil {
		out := make([]Classification, 0, len(nested))
		for _, candidates := range nested {
			if len(candidates) == 0 {
				continue
			}
			out = append(out, top(candidates))
		}
		return out, nil
	}

	var flat []Classification
	if err := json.Unmarshal(body, &flat); err != nil {
		return nil, fmt.Errorf("parsing inference response: %w", err)
	}
	return flat, nil
}

func top(candidates []Classification) Classification {
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Confidence > best.Confidence {
			best = c
		}
	}
	return best
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
