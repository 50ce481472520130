// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection drives records through the PRISMA review protocol:
// screening, eligibility, and inclusion. Each phase only moves records
// forward; an excluded record keeps the stage where it was excluded,
// with its status and reason code as the audit trail.
package selection

import (
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/review-engine/pkg/types"
)

var (
	methodologyPattern = regexp.MustCompile(
		`(?i)\b(method(olog\w*|s)?|approach(es)?|experiment(al|s)?|stud(y|ies)|analys[ie]s|evaluations?|test(s|ing)?|assess\w*)\b`)
	reviewPattern = regexp.MustCompile(
		`(?i)\b(review|survey|meta-analysis)\b`)
	offTopicPattern = regexp.MustCompile(
		`(?i)\b(biology|chemistry|physics|medicine|health|medical)\b`)
	educationPattern = regexp.MustCompile(
		`(?i)\b(education(al)?|learning|teaching|students?)\b`)
	nonResearchPattern = regexp.MustCompile(
		`(?i)\b(editorial|erratum|correction|retraction|comment|reply|letter to)\b`)
	domainFocusPattern = regexp.MustCompile(
		`(?i)\b(mathematics|matematica|matemática|math|algebra|geometry|calculus)\b`)
	techniquePattern = regexp.MustCompile(
		`(?i)\b(machine learning|artificial intelligence|ai|data mining|analytics|tutor\w*|adaptive|personali[sz]ed)\b`)
)

// languagePatterns holds the coarse stop-word heuristic per supported
// language code. Unsupported configured codes are ignored.
var languagePatterns = map[string]*regexp.Regexp{
	"en": regexp.MustCompile(`(?i)\b(the|and|of|in|to|for|with|is|are)\b`),
	"pt": regexp.MustCompile(`(?i)\b(de|da|do|para|com|em|que|nao|não)\b`),
	"es": regexp.MustCompile(`(?i)\b(el|la|los|las|una?|del|por|para)\b`),
}

// Stats holds the running PRISMA counters for one selection run. The
// counters always satisfy
// ScreeningExcluded + EligibilityExcluded + Included <= Identification.
type Stats struct {
	Identification      int `json:"identification"`
	Duplicates          int `json:"duplicates"`
	ScreeningPassed     int `json:"screening_passed"`
	ScreeningExcluded   int `json:"screening_excluded"`
	EligibilityPassed   int `json:"eligibility_passed"`
	EligibilityExcluded int `json:"eligibility_excluded"`
	Included            int `json:"included"`
}

// Consistent reports whether the counters satisfy the flow invariant.
func (s Stats) Consistent() bool {
	return s.ScreeningExcluded+s.EligibilityExcluded+s.Included <= s.Identification
}

// FormatFlow writes the PRISMA flow summary to w.
func (s Stats) FormatFlow(w io.Writer) {
	fmt.Fprintln(w, "PRISMA flow")
	fmt.Fprintln(w, strings.Repeat("-", 50))
	fmt.Fprintf(w, "Identification:  %d record(s), %d duplicate(s) marked\n", s.Identification, s.Duplicates)
	fmt.Fprintf(w, "Screening:       %d passed, %d excluded\n", s.ScreeningPassed, s.ScreeningExcluded)
	fmt.Fprintf(w, "Eligibility:     %d passed, %d excluded\n", s.EligibilityPassed, s.EligibilityExcluded)
	fmt.Fprintf(w, "Included:        %d record(s)\n", s.Included)
}

// Selector applies the PRISMA phases to a corpus. One selector tracks the
// counters of a single run.
type Selector struct {
	cfg   types.SelectionConfig
	stats Stats
}

// NewSelector returns a selector with the given criteria.
func NewSelector(cfg types.SelectionConfig) *Selector {
	return &Selector{cfg: cfg}
}

// Run applies screening, eligibility, and inclusion in order to every
// non-duplicate record and returns the accumulated counters. Duplicates
// are left untouched at whatever stage they hold.
func (s *Selector) Run(records []types.Record, w io.Writer) Stats {
	s.stats = Stats{Identification: len(records)}
	for i := range records {
		if records[i].IsDuplicate {
			s.stats.Duplicates++
		}
	}

	s.Screen(records)
	fmt.Fprintf(w, "screening: %d passed, %d excluded\n",
		s.stats.ScreeningPassed, s.stats.ScreeningExcluded)

	s.Eligibility(records)
	fmt.Fprintf(w, "eligibility: %d passed, %d excluded\n",
		s.stats.EligibilityPassed, s.stats.EligibilityExcluded)

	s.Include(records)
	fmt.Fprintf(w, "included: %d record(s)\n", s.stats.Included)

	return s.stats
}

// Screen applies the screening phase to every non-duplicate record:
// exclusion checks in priority order, then the inclusion criteria.
// Every screened record ends at the screening stage.
func (s *Selector) Screen(records []types.Record) {
	for i := range records {
		if records[i].IsDuplicate {
			continue
		}
		r := &records[i]
		r.SelectionStage = types.StageScreening

		if reason, excluded := s.exclusionReason(r); excluded {
			r.Status = types.StatusExcluded
			r.Reason = reason
			s.stats.ScreeningExcluded++
			continue
		}

		met, ok := s.inclusionCriteria(r)
		r.CriteriaMet = met
		if ok {
			r.Status = types.StatusReviewed
			r.Reason = ""
			s.stats.ScreeningPassed++
		} else {
			r.Status = types.StatusExcluded
			r.Reason = types.ReasonCriteriaNotMet
			s.stats.ScreeningExcluded++
		}
	}
}

// exclusionReason returns the first exclusion check that fires, in
// priority order.
func (s *Selector) exclusionReason(r *types.Record) (types.ExclusionReason, bool) {
	text := r.Title + " " + r.Abstract

	if r.Abstract != "" {
		if wordCount(r.Abstract) < s.cfg.MinAbstractWords {
			return types.ReasonAbstractTooShort, true
		}
		if !methodologyPattern.MatchString(r.Abstract) && !reviewPattern.MatchString(r.Abstract) {
			return types.ReasonNoMethodology, true
		}
	}

	if offTopicPattern.MatchString(text) && !educationPattern.MatchString(text) {
		return types.ReasonOffTopic, true
	}

	if nonResearchPattern.MatchString(text) {
		return types.ReasonNonResearch, true
	}

	return "", false
}

// inclusionCriteria returns the satisfied criterion tags and whether all
// four required criteria hold: year range, a recognized language, domain
// focus, and computational techniques.
func (s *Selector) inclusionCriteria(r *types.Record) ([]string, bool) {
	var met []string

	yearOK := r.Year >= s.cfg.YearMin && r.Year <= s.cfg.YearMax
	if yearOK {
		met = append(met, "year_range")
	}

	langOK := false
	for _, lang := range s.cfg.Languages {
		pattern, ok := languagePatterns[strings.ToLower(lang)]
		if !ok {
			continue
		}
		if pattern.MatchString(r.Abstract) {
			met = append(met, "language_"+strings.ToLower(lang))
			langOK = true
		}
	}

	text := r.Title + " " + r.Abstract
	domainOK := domainFocusPattern.MatchString(text)
	if domainOK {
		met = append(met, "math_focus")
	}
	techOK := techniquePattern.MatchString(text)
	if techOK {
		met = append(met, "computational_techniques")
	}
	if r.Abstract != "" {
		met = append(met, "has_abstract")
	}

	return met, yearOK && langOK && domainOK && techOK
}

// Eligibility promotes screened, reviewed records and applies the
// relevance threshold.
func (s *Selector) Eligibility(records []types.Record) {
	for i := range records {
		r := &records[i]
		if r.IsDuplicate || r.SelectionStage != types.StageScreening || r.Status != types.StatusReviewed {
			continue
		}
		r.SelectionStage = types.StageEligibility
		if r.RelevanceScore >= s.cfg.MinRelevanceScore {
			r.Status = types.StatusReviewed
			s.stats.EligibilityPassed++
		} else {
			r.Status = types.StatusExcluded
			r.Reason = types.ReasonLowRelevance
			s.stats.EligibilityExcluded++
		}
	}
}

// Include promotes the eligible set, demoting the lowest-ranked excess
// when a maximum-papers cap is configured. Demoted records stay parked at
// the eligibility stage. Ranking ties keep first-seen order so repeated
// runs are reproducible.
func (s *Selector) Include(records []types.Record) {
	var eligible []int
	for i := range records {
		if records[i].IsDuplicate {
			continue
		}
		if records[i].SelectionStage == types.StageEligibility && records[i].Status != types.StatusExcluded {
			eligible = append(eligible, i)
		}
	}

	sort.SliceStable(eligible, func(a, b int) bool {
		return records[eligible[a]].RelevanceScore > records[eligible[b]].RelevanceScore
	})

	cut := len(eligible)
	if s.cfg.MaxPapers > 0 && cut > s.cfg.MaxPapers {
		cut = s.cfg.MaxPapers
	}

	for _, i := range eligible[:cut] {
		records[i].SelectionStage = types.StageIncluded
		records[i].Status = types.StatusIncluded
		s.stats.Included++
	}
	for _, i := range eligible[cut:] {
		records[i].Status = types.StatusExcluded
		records[i].Reason = types.ReasonMaxPapers
		s.stats.EligibilityExcluded++
	}
}

// wordCount counts whitespace-separated tokens.
func wordCount(text string) int {
	return len(strings.Fields(text))
}
