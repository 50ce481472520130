// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "fmt"

// DedupConfig holds settings for the deduplication engine.
type DedupConfig struct {
	// CosineThreshold is the maximum TF-IDF cosine distance for two titles
	// to be considered near-duplicate candidates (default 0.35).
	CosineThreshold float64 `json:"cosine_threshold" yaml:"cosine_threshold"`

	// RatioThreshold is the minimum token-set similarity ratio (0-100) that
	// confirms a near-duplicate candidate pair (default 90).
	RatioThreshold int `json:"ratio_threshold" yaml:"ratio_threshold"`

	// BlockPrefixLen is the normalized-title prefix length used to bucket
	// records before pairwise comparison (default 8).
	BlockPrefixLen int `json:"block_prefix_len" yaml:"block_prefix_len"`
}

// ScoringWeights holds the relative weight of each relevance factor.
// The factors are combined as a weighted sum and clamped to [0, 10].
type ScoringWeights struct {
	Domain      float64 `json:"domain" yaml:"domain"`
	Technical   float64 `json:"technical" yaml:"technical"`
	Methodology float64 `json:"methodology" yaml:"methodology"`
	Recency     float64 `json:"recency" yaml:"recency"`
	Quality     float64 `json:"quality" yaml:"quality"`
}

// ScoringConfig holds settings for the relevance scorer.
type ScoringConfig struct {
	// Weights are the factor weights (defaults: domain 0.3, technical 0.3,
	// methodology 0.2, recency 0.1, quality 0.1).
	Weights ScoringWeights `json:"weights" yaml:"weights"`
}

// SelectionConfig holds the PRISMA selection criteria.
type SelectionConfig struct {
	// YearMin and YearMax bound the accepted publication years
	// (defaults 2015 and 2025).
	YearMin int `json:"year_min" yaml:"year_min"`
	YearMax int `json:"year_max" yaml:"year_max"`

	// Languages lists accepted language codes (default "en", "pt"). A
	// record passes the language criterion when its abstract matches the
	// stop-word heuristic of at least one configured language.
	Languages []string `json:"languages" yaml:"languages"`

	// MinAbstractWords is the word count below which a non-empty abstract
	// is excluded at screening (default 50).
	MinAbstractWords int `json:"min_abstract_words" yaml:"min_abstract_words"`

	// MinRelevanceScore is the eligibility threshold (default 4.0).
	MinRelevanceScore float64 `json:"min_relevance_score" yaml:"min_relevance_score"`

	// MaxPapers caps the final included set; 0 means no cap.
	MaxPapers int `json:"max_papers" yaml:"max_papers"`
}

// ReviewConfig groups the configuration for one review pipeline run. It is
// built once, validated, and passed by value into component constructors;
// components never read configuration from the environment or disk.
type ReviewConfig struct {
	Dedup     DedupConfig     `json:"dedup" yaml:"dedup"`
	Scoring   ScoringConfig   `json:"scoring" yaml:"scoring"`
	Selection SelectionConfig `json:"selection" yaml:"selection"`
}

// DefaultReviewConfig returns the documented defaults.
func DefaultReviewConfig() ReviewConfig {
	return ReviewConfig{
		Dedup: DedupConfig{
			CosineThreshold: 0.35,
			RatioThreshold:  90,
			BlockPrefixLen:  8,
		},
		Scoring: ScoringConfig{
			Weights: ScoringWeights{
				Domain:      0.3,
				Technical:   0.3,
				Methodology: 0.2,
				Recency:     0.1,
				Quality:     0.1,
			},
		},
		Selection: SelectionConfig{
			YearMin:           2015,
			YearMax:           2025,
			Languages:         []string{"en", "pt"},
			MinAbstractWords:  50,
			MinRelevanceScore: 4.0,
			MaxPapers:         0,
		},
	}
}

// Validate reports the first configuration error found. Configuration
// errors are fatal: the pipeline must not process any record with an
// invalid configuration.
func (c ReviewConfig) Validate() error {
	if c.Dedup.CosineThreshold < 0 || c.Dedup.CosineThreshold > 1 {
		return fmt.Errorf("dedup: cosine threshold %v out of range [0, 1]", c.Dedup.CosineThreshold)
	}
	if c.Dedup.RatioThreshold < 0 || c.Dedup.RatioThreshold > 100 {
		return fmt.Errorf("dedup: ratio threshold %d out of range [0, 100]", c.Dedup.RatioThreshold)
	}
	if c.Dedup.BlockPrefixLen <= 0 {
		return fmt.Errorf("dedup: block prefix length %d must be positive", c.Dedup.BlockPrefixLen)
	}
	w := c.Scoring.Weights
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"domain", w.Domain},
		{"technical", w.Technical},
		{"methodology", w.Methodology},
		{"recency", w.Recency},
		{"quality", w.Quality},
	} {
		if f.value < 0 {
			return fmt.Errorf("scoring: %s weight %v must not be negative", f.name, f.value)
		}
	}
	if c.Selection.YearMin > c.Selection.YearMax {
		return fmt.Errorf("selection: year range [%d, %d] is empty", c.Selection.YearMin, c.Selection.YearMax)
	}
	if c.Selection.MinAbstractWords < 0 {
		return fmt.Errorf("selection: minimum abstract words %d must not be negative", c.Selection.MinAbstractWords)
	}
	if c.Selection.MinRelevanceScore < 0 || c.Selection.MinRelevanceScore > 10 {
		return fmt.Errorf("selection: minimum relevance score %v out of range [0, 10]", c.Selection.MinRelevanceScore)
	}
	if c.Selection.MaxPapers < 0 {
		return fmt.Errorf("selection: max papers %d must not be negative", c.Selection.MaxPapers)
	}
	return nil
}
