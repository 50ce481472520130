// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package scoring computes a deterministic 0-10 relevance score per record
// from title and abstract text, and derives technique, study-type, and
// evaluation-method tags for downstream reporting.
package scoring

import (
	"math"
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

// maxFactor caps each sub-score before weighting.
const maxFactor = 5.0

// Scorer maps records to relevance scores. Scoring is a pure function of
// the record: repeated calls with identical input yield identical output.
type Scorer struct {
	weights types.ScoringWeights
}

// NewScorer returns a scorer using the configured factor weights.
func NewScorer(cfg types.ScoringConfig) *Scorer {
	return &Scorer{weights: cfg.Weights}
}

// Score returns the weighted relevance score in [0, 10], rounded to two
// decimals. Missing fields contribute zero; Score never fails.
func (s *Scorer) Score(r types.Record) float64 {
	text := strings.TrimSpace(r.Title + " " + r.Abstract)
	if text == "" {
		return 0
	}

	score := clampFactor(s.domainScore(text)) * s.weights.Domain
	score += clampFactor(s.technicalScore(text)) * s.weights.Technical
	score += clampFactor(s.methodologyScore(text)) * s.weights.Methodology
	score += clampFactor(recencyScore(r.Year)) * s.weights.Recency
	score += clampFactor(qualityScore(r)) * s.weights.Quality

	score = math.Min(math.Max(score, 0), 10)
	return math.Round(score*100) / 100
}

// Annotate writes the score and the derived tags onto the record. Only the
// scorer-owned fields are touched.
func (s *Scorer) Annotate(r *types.Record) {
	text := r.Title + " " + r.Abstract
	r.RelevanceScore = s.Score(*r)
	r.CompTechniques = Techniques(text)
	r.StudyType, _ = StudyType(text)
	r.EvalMethods = EvalMethods(text)
}

func (s *Scorer) domainScore(text string) float64 {
	if !domainPattern.MatchString(text) {
		return 0
	}
	score := 3.0
	for _, topic := range mathTopics {
		if topic.MatchString(text) {
			score += 0.5
		}
	}
	return score
}

func (s *Scorer) technicalScore(text string) float64 {
	techniques := Techniques(text)
	var score float64
	for _, tag := range techniques {
		switch tag {
		case "machine_learning", "learning_analytics":
			score += 2.0
		case "neural_network", "tree_based":
			score += 1.0
		}
	}
	// Breadth bonus for matching several distinct techniques.
	score += math.Min(float64(len(techniques))*0.5, 2.0)
	return score
}

func (s *Scorer) methodologyScore(text string) float64 {
	_, weight := StudyType(text)
	return weight + float64(len(EvalMethods(text)))*0.5
}

// recencyScore is a step function of the publication year. A zero year
// (unknown) contributes nothing.
func recencyScore(year int) float64 {
	switch {
	case year >= 2023:
		return 3.0
	case year >= 2020:
		return 2.0
	case year >= 2018:
		return 1.0
	case year >= 2015:
		return 0.5
	}
	return 0
}

func qualityScore(r types.Record) float64 {
	var score float64
	if r.Abstract != "" {
		score += math.Min(float64(len(r.Abstract))/100, 2.0)
	}
	if r.DOI != "" {
		score += 1.0
	}
	if venuePattern.MatchString(r.Venue) {
		score += 1.0
	}
	return score
}

func clampFactor(v float64) float64 {
	return math.Min(math.Max(v, 0), maxFactor)
}

// Techniques returns the computational technique tags matched in text, in
// vocabulary order.
func Techniques(text string) []string {
	var tags []string
	for _, p := range techniquePatterns {
		if p.re.MatchString(text) {
			tags = append(tags, p.tag)
		}
	}
	return tags
}

// StudyType returns the study classification for text and its methodology
// weight. The highest-priority matching pattern wins; no match yields an
// empty tag and zero weight.
func StudyType(text string) (string, float64) {
	for _, p := range studyTypePatterns {
		if p.re.MatchString(text) {
			return p.tag, p.weight
		}
	}
	return "", 0
}

// EvalMethods returns the evaluation method tags matched in text, in
// vocabulary order.
func EvalMethods(text string) []string {
	var tags []string
	for _, p := range evalMethodPatterns {
		if p.re.MatchString(text) {
			tags = append(tags, p.tag)
		}
	}
	return tags
}
