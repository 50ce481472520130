// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-engine/pkg/types"
)

const strongAbstract = "We report a randomized controlled trial of machine learning and " +
	"learning analytics for algebra and geometry instruction. Deep learning and random " +
	"forest models predict which fractions exercises each student should attempt next. " +
	"We evaluate the system with anova and accuracy metrics, qualitative interviews, " +
	"and satisfaction ratings from teachers. The study ran in twelve classrooms over a " +
	"full school year, and the results show consistent gains for the treatment group " +
	"compared with standard instruction."

func TestRunEndToEnd(t *testing.T) {
	records := []types.Record{
		{
			DOI:      "10.1/strong",
			Title:    "Machine learning for algebra tutoring in the classroom",
			Abstract: strongAbstract,
			Year:     2024,
			Venue:    "Journal of Learning Analytics",
		},
		{
			DOI:      "doi:10.1/STRONG",
			Title:    "Machine learning for algebra tutoring in the classroom",
			Abstract: "Shorter copy.",
			Year:     2024,
		},
		{
			Title: "Mathematics homework practices",
			Year:  2010,
		},
	}

	var buf bytes.Buffer
	result, err := Run(records, types.DefaultReviewConfig(), &buf)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Dedup.ByIdentifier)
	assert.Equal(t, 3, result.Stats.Identification)
	assert.Equal(t, 1, result.Stats.Duplicates)
	assert.Equal(t, 1, result.Stats.ScreeningPassed)
	assert.Equal(t, 1, result.Stats.ScreeningExcluded)
	assert.Equal(t, 1, result.Stats.EligibilityPassed)
	assert.Equal(t, 1, result.Stats.Included)
	assert.True(t, result.Stats.Consistent())

	strong := result.Records[0]
	assert.GreaterOrEqual(t, strong.RelevanceScore, 4.0)
	assert.Equal(t, types.StageIncluded, strong.SelectionStage)
	assert.Equal(t, types.StatusIncluded, strong.Status)
	assert.Contains(t, strong.CompTechniques, "machine_learning")
	assert.Equal(t, "experimental", strong.StudyType)

	assert.True(t, result.Records[1].IsDuplicate)
	assert.Equal(t, "DOI:10.1/strong", result.Records[1].DuplicateOf)

	old := result.Records[2]
	assert.Equal(t, types.StageScreening, old.SelectionStage)
	assert.Equal(t, types.StatusExcluded, old.Status)
	assert.Equal(t, types.ReasonCriteriaNotMet, old.Reason)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := types.DefaultReviewConfig()
	cfg.Dedup.CosineThreshold = 2

	_, err := Run([]types.Record{{Title: "x"}}, cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestRunEmptyCorpus(t *testing.T) {
	var buf bytes.Buffer
	result, err := Run(nil, types.DefaultReviewConfig(), &buf)
	require.NoError(t, err)
	assert.Zero(t, result.Stats.Identification)
	assert.Zero(t, result.Stats.Included)
}
