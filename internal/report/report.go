// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package report renders scores, breakdowns and assessments for the terminal
// or as indented JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/credit-engine/pkg/types"
)

var pipelineTitles = map[types.Pipeline]string{
	types.PipelineFinancial:    "Financial",
	types.PipelinePsychometric: "Psychometric",
	types.PipelineNews:         "News sentiment",
}

// Title returns the display name of a pipeline.
func Title(p types.Pipeline) string {
	if t, ok := pipelineTitles[p]; ok {
		return t
	}
	return string(p)
}

// WriteJSON encodes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteScore prints one result as a single line.
func WriteScore(w io.Writer, r types.ScoreResult) error {
	_, err := fmt.Fprintf(w, "%-15s %6.2f  %-11s (%s)\n", Title(r.Pipeline)+":", r.Score, r.Category, r.Color)
	return err
}

// WriteBreakdown prints the per-field contributions as a table.
func WriteBreakdown(w io.Writer, cs []types.Contribution) error {
	if len(cs) == 0 {
		return nil
	}
	fmt.Fprintf(w, "%-24s  %12s  %10s  %7s  %9s\n", "Field", "Raw", "Normalized", "Weight", "Points")
	fmt.Fprintln(w, strings.Repeat("-", 70))

	var total float64
	for _, c := range cs {
		fmt.Fprintf(w, "%-24s  %12.2f  %10.4f  %+7.2f  %+9.2f\n", c.Field, c.Raw, c.Normalized, c.Weight, c.Weighted)
		total += c.Weighted
	}
	fmt.Fprintln(w, strings.Repeat("-", 70))
	_, err := fmt.Fprintf(w, "%-24s  %12s  %10s  %7s  %+9.2f\n", "Total", "", "", "", total)
	return err
}

// WriteAssessment prints each pipeline result of an assessment. Pipelines
// that did not run are listed as skipped.
func WriteAssessment(w io.Writer, a types.Assessment) error {
	header := "Assessment " + a.RunID
	if a.ApplicantID != "" {
		header += " for " + a.ApplicantID
	}
	fmt.Fprintln(w, header)
	fmt.Fprintln(w, strings.Repeat("-", len(header)))

	rows := []struct {
		pipeline types.Pipeline
		result   *types.ScoreResult
	}{
		{types.PipelineFinancial, a.Financial},
		{types.PipelinePsychometric, a.Psychometric},
		{types.PipelineNews, a.News},
	}
	for _, row := range rows {
		switch {
		case row.result != nil:
			if err := WriteScore(w, *row.result); err != nil {
				return err
			}
		case row.pipeline == types.PipelineNews && a.NewsError != "":
			fmt.Fprintf(w, "%-15s %s\n", Title(row.pipeline)+":", a.NewsError)
		default:
			fmt.Fprintf(w, "%-15s skipped\n", Title(row.pipeline)+":")
		}
	}

	if !a.AssessedAt.IsZero() {
		fmt.Fprintf(w, "\nAssessed at %s\n", a.AssessedAt.Format("2006-01-02 15:04:05 MST"))
	}
	return nil
}
