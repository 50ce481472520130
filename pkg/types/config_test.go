// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultReviewConfigValid(t *testing.T) {
	cfg := DefaultReviewConfig()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 0.35, cfg.Dedup.CosineThreshold)
	assert.Equal(t, 90, cfg.Dedup.RatioThreshold)
	assert.Equal(t, 2015, cfg.Selection.YearMin)
	assert.Equal(t, 4.0, cfg.Selection.MinRelevanceScore)
	assert.Zero(t, cfg.Selection.MaxPapers)
}

func TestValidateRejectsBadConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ReviewConfig)
		errMsg string
	}{
		{
			name:   "negative cosine threshold",
			mutate: func(c *ReviewConfig) { c.Dedup.CosineThreshold = -0.1 },
			errMsg: "cosine threshold",
		},
		{
			name:   "ratio threshold above 100",
			mutate: func(c *ReviewConfig) { c.Dedup.RatioThreshold = 150 },
			errMsg: "ratio threshold",
		},
		{
			name:   "zero block prefix",
			mutate: func(c *ReviewConfig) { c.Dedup.BlockPrefixLen = 0 },
			errMsg: "block prefix",
		},
		{
			name:   "negative weight",
			mutate: func(c *ReviewConfig) { c.Scoring.Weights.Recency = -1 },
			errMsg: "recency weight",
		},
		{
			name:   "inverted year range",
			mutate: func(c *ReviewConfig) { c.Selection.YearMin, c.Selection.YearMax = 2025, 2015 },
			errMsg: "year range",
		},
		{
			name:   "relevance threshold above scale",
			mutate: func(c *ReviewConfig) { c.Selection.MinRelevanceScore = 11 },
			errMsg: "minimum relevance score",
		},
		{
			name:   "negative max papers",
			mutate: func(c *ReviewConfig) { c.Selection.MaxPapers = -5 },
			errMsg: "max papers",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultReviewConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestStageRankOrdering(t *testing.T) {
	stages := []SelectionStage{StageIdentification, StageScreening, StageEligibility, StageIncluded}
	for i := 1; i < len(stages); i++ {
		assert.Greater(t, stages[i].Rank(), stages[i-1].Rank())
	}
	assert.Zero(t, SelectionStage("bogus").Rank())
}
