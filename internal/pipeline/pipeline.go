// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline runs the full review flow over a corpus: duplicate
// marking, relevance scoring, and PRISMA selection, in that order.
package pipeline

import (
	"fmt"
	"io"

	"github.com/pdiddy/review-engine/internal/dedup"
	"github.com/pdiddy/review-engine/internal/scoring"
	"github.com/pdiddy/review-engine/internal/selection"
	"github.com/pdiddy/review-engine/pkg/types"
)

// Result holds the outcome of one pipeline run. Records is the input
// slice, annotated in place.
type Result struct {
	Records []types.Record
	Dedup   dedup.Summary
	Stats   selection.Stats
}

// Run validates cfg, then marks duplicates, scores every record, and
// applies the selection phases. The record slice keeps its order and
// cardinality throughout; progress goes to w. A configuration error
// aborts the run before any record is touched.
func Run(records []types.Record, cfg types.ReviewConfig, w io.Writer) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, fmt.Errorf("invalid configuration: %w", err)
	}

	fmt.Fprintf(w, "pipeline: %d record(s) at identification\n", len(records))

	summary := dedup.NewEngine(cfg.Dedup).Mark(records, w)

	scorer := scoring.NewScorer(cfg.Scoring)
	for i := range records {
		scorer.Annotate(&records[i])
	}
	fmt.Fprintf(w, "scoring: %d record(s) scored\n", len(records))

	stats := selection.NewSelector(cfg.Selection).Run(records, w)
	if !stats.Consistent() {
		// A broken counter is a programming error, not bad input.
		return Result{}, fmt.Errorf("selection counters inconsistent: %+v", stats)
	}

	return Result{Records: records, Dedup: summary, Stats: stats}, nil
}
