// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/review-engine/pkg/types"
)

func testCfg() types.SelectionConfig {
	return types.DefaultReviewConfig().Selection
}

// goodAbstract passes every screening check under the default criteria:
// long enough, English, methodology vocabulary, math and technique terms.
const goodAbstract = "We present an experimental study of machine learning for algebra education. " +
	"The system models student knowledge and adapts problem difficulty. " +
	"We evaluate the approach with data from three classrooms and report accuracy gains. " +
	"Results are compared against a baseline tutoring system over one term of instruction. " +
	"The analysis shows significant improvement for students in the treatment group."

func goodRecord() types.Record {
	return types.Record{
		Title:    "Machine learning for algebra tutoring",
		Abstract: goodAbstract,
		Year:     2022,
		DOI:      "10.1/good",
	}
}

func TestGoodAbstractIsLongEnough(t *testing.T) {
	require.GreaterOrEqual(t, wordCount(goodAbstract), testCfg().MinAbstractWords)
}

func TestScreenPasses(t *testing.T) {
	s := NewSelector(testCfg())
	records := []types.Record{goodRecord()}
	s.Screen(records)

	assert.Equal(t, types.StageScreening, records[0].SelectionStage)
	assert.Equal(t, types.StatusReviewed, records[0].Status)
	assert.Empty(t, records[0].Reason)
	assert.Subset(t, records[0].CriteriaMet,
		[]string{"year_range", "language_en", "math_focus", "computational_techniques", "has_abstract"})
}

func TestScreenExclusionReasons(t *testing.T) {
	offTopicAbstract := "We run a clinical experiment in medicine and report outcomes. " +
		strings.Repeat("Patients received treatment and results were recorded over several weeks of observation. ", 6)
	vagueAbstract := strings.Repeat(
		"This paper talks about many interesting things regarding numbers and classrooms in schools. ", 7)

	tests := []struct {
		name   string
		record types.Record
		want   types.ExclusionReason
	}{
		{
			name:   "short abstract",
			record: types.Record{Title: "A paper", Abstract: "Too short to tell.", Year: 2022},
			want:   types.ReasonAbstractTooShort,
		},
		{
			name:   "no methodology vocabulary",
			record: types.Record{Title: "A paper", Abstract: vagueAbstract, Year: 2022},
			want:   types.ReasonNoMethodology,
		},
		{
			name:   "off topic without education context",
			record: types.Record{Title: "Drug trials", Abstract: offTopicAbstract, Year: 2022},
			want:   types.ReasonOffTopic,
		},
		{
			name: "non research marker",
			record: types.Record{
				Title:    "Editorial: welcome to the new volume",
				Abstract: goodAbstract,
				Year:     2022,
			},
			want: types.ReasonNonResearch,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSelector(testCfg())
			records := []types.Record{tt.record}
			s.Screen(records)

			assert.Equal(t, types.StageScreening, records[0].SelectionStage)
			assert.Equal(t, types.StatusExcluded, records[0].Status)
			assert.Equal(t, tt.want, records[0].Reason)
		})
	}
}

func TestScreenInclusionCriteriaNotMet(t *testing.T) {
	// Year 2010 with an empty abstract: screening parks the record as
	// excluded with the criteria reason.
	s := NewSelector(testCfg())
	records := []types.Record{{Title: "Old mathematics paper", Year: 2010}}
	s.Screen(records)

	assert.Equal(t, types.StageScreening, records[0].SelectionStage)
	assert.Equal(t, types.StatusExcluded, records[0].Status)
	assert.Equal(t, types.ReasonCriteriaNotMet, records[0].Reason)
	assert.NotContains(t, records[0].CriteriaMet, "year_range")
}

func TestScreenLanguageCriterion(t *testing.T) {
	cfg := testCfg()
	cfg.Languages = []string{"pt"}
	s := NewSelector(cfg)

	// English abstract under a Portuguese-only configuration fails the
	// language criterion.
	records := []types.Record{goodRecord()}
	s.Screen(records)

	assert.Equal(t, types.StatusExcluded, records[0].Status)
	assert.Equal(t, types.ReasonCriteriaNotMet, records[0].Reason)
	assert.NotContains(t, records[0].CriteriaMet, "language_pt")
}

func TestScreenSkipsDuplicates(t *testing.T) {
	s := NewSelector(testCfg())
	records := []types.Record{
		{Title: "Dup", IsDuplicate: true, DuplicateOf: "DOI:10.1/x", SelectionStage: types.StageIdentification, Status: types.StatusPending},
	}
	s.Screen(records)

	assert.Equal(t, types.StageIdentification, records[0].SelectionStage)
	assert.Equal(t, types.StatusPending, records[0].Status)
}

func TestEligibilityThreshold(t *testing.T) {
	s := NewSelector(testCfg())
	records := []types.Record{
		{SelectionStage: types.StageScreening, Status: types.StatusReviewed, RelevanceScore: 9.0},
		{SelectionStage: types.StageScreening, Status: types.StatusReviewed, RelevanceScore: 2.0},
		{SelectionStage: types.StageScreening, Status: types.StatusExcluded, Reason: types.ReasonOffTopic},
	}
	s.Eligibility(records)

	assert.Equal(t, types.StageEligibility, records[0].SelectionStage)
	assert.Equal(t, types.StatusReviewed, records[0].Status)

	assert.Equal(t, types.StageEligibility, records[1].SelectionStage)
	assert.Equal(t, types.StatusExcluded, records[1].Status)
	assert.Equal(t, types.ReasonLowRelevance, records[1].Reason)

	// Excluded records stay parked at screening.
	assert.Equal(t, types.StageScreening, records[2].SelectionStage)
}

func TestIncludeWithoutCap(t *testing.T) {
	s := NewSelector(testCfg())
	records := []types.Record{
		{SelectionStage: types.StageEligibility, Status: types.StatusReviewed, RelevanceScore: 9.0},
		{SelectionStage: types.StageEligibility, Status: types.StatusReviewed, RelevanceScore: 5.0},
	}
	s.Include(records)

	for i := range records {
		assert.Equal(t, types.StageIncluded, records[i].SelectionStage, "record %d", i)
		assert.Equal(t, types.StatusIncluded, records[i].Status, "record %d", i)
	}
}

func TestIncludeCapDemotesLowestRanked(t *testing.T) {
	cfg := testCfg()
	cfg.MaxPapers = 5
	s := NewSelector(cfg)

	records := make([]types.Record, 10)
	for i := range records {
		records[i] = types.Record{
			Title:          fmt.Sprintf("Paper %d", i),
			SelectionStage: types.StageEligibility,
			Status:         types.StatusReviewed,
			RelevanceScore: float64(10 - i), // descending: first five win
		}
	}
	s.Include(records)

	for i := 0; i < 5; i++ {
		assert.Equal(t, types.StageIncluded, records[i].SelectionStage, "record %d", i)
		assert.Equal(t, types.StatusIncluded, records[i].Status, "record %d", i)
	}
	for i := 5; i < 10; i++ {
		assert.Equal(t, types.StageEligibility, records[i].SelectionStage, "record %d", i)
		assert.Equal(t, types.StatusExcluded, records[i].Status, "record %d", i)
		assert.Equal(t, types.ReasonMaxPapers, records[i].Reason, "record %d", i)
	}
}

func TestIncludeTiesKeepFirstSeenOrder(t *testing.T) {
	cfg := testCfg()
	cfg.MaxPapers = 1
	s := NewSelector(cfg)

	records := []types.Record{
		{Title: "First", SelectionStage: types.StageEligibility, Status: types.StatusReviewed, RelevanceScore: 7.0},
		{Title: "Second", SelectionStage: types.StageEligibility, Status: types.StatusReviewed, RelevanceScore: 7.0},
	}
	s.Include(records)

	assert.Equal(t, types.StatusIncluded, records[0].Status)
	assert.Equal(t, types.StatusExcluded, records[1].Status)
}

func TestRunFullFlow(t *testing.T) {
	high := goodRecord()
	high.RelevanceScore = 9.0

	low := goodRecord()
	low.DOI = "10.1/low"
	low.RelevanceScore = 1.0

	dup := types.Record{Title: "Copy", IsDuplicate: true, DuplicateOf: "DOI:10.1/good"}
	old := types.Record{Title: "Old mathematics paper", Year: 2010}

	records := []types.Record{high, low, dup, old}

	var buf bytes.Buffer
	stats := NewSelector(testCfg()).Run(records, &buf)

	assert.Equal(t, 4, stats.Identification)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, 2, stats.ScreeningPassed)
	assert.Equal(t, 1, stats.ScreeningExcluded)
	assert.Equal(t, 1, stats.EligibilityPassed)
	assert.Equal(t, 1, stats.EligibilityExcluded)
	assert.Equal(t, 1, stats.Included)
	assert.True(t, stats.Consistent())

	assert.Equal(t, types.StageIncluded, records[0].SelectionStage)
	assert.Equal(t, types.StatusIncluded, records[0].Status)
}

func TestRunExclusionConsistency(t *testing.T) {
	records := []types.Record{
		goodRecord(),
		{Title: "Old mathematics paper", Year: 2010},
		{Title: "Short", Abstract: "Too short.", Year: 2022},
	}
	records[0].RelevanceScore = 8.0

	NewSelector(testCfg()).Run(records, &bytes.Buffer{})

	for i, r := range records {
		excluded := r.Status == types.StatusExcluded
		assert.Equal(t, excluded, r.Reason != "",
			"record %d: exclusion reason set iff status is excluded", i)
		if r.Status == types.StatusIncluded {
			assert.Equal(t, types.StageIncluded, r.SelectionStage, "record %d", i)
		}
	}
}

func TestStatsFormatFlow(t *testing.T) {
	var buf bytes.Buffer
	Stats{Identification: 10, Duplicates: 2, ScreeningPassed: 6, ScreeningExcluded: 2,
		EligibilityPassed: 5, EligibilityExcluded: 1, Included: 5}.FormatFlow(&buf)

	out := buf.String()
	assert.Contains(t, out, "PRISMA flow")
	assert.Contains(t, out, "Identification:  10 record(s), 2 duplicate(s) marked")
	assert.Contains(t, out, "Included:        5 record(s)")
}
