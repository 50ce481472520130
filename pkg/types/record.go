// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SelectionStage is the PRISMA stage a record has reached. Stages only
// move forward: identification, screening, eligibility, included.
type SelectionStage string

const (
	StageIdentification SelectionStage = "identification"
	StageScreening      SelectionStage = "screening"
	StageEligibility    SelectionStage = "eligibility"
	StageIncluded       SelectionStage = "included"
)

// Rank returns the position of the stage in the PRISMA flow, with
// identification lowest. Unknown stages rank below identification.
func (s SelectionStage) Rank() int {
	switch s {
	case StageIdentification:
		return 1
	case StageScreening:
		return 2
	case StageEligibility:
		return 3
	case StageIncluded:
		return 4
	}
	return 0
}

// ReviewStatus is the review outcome of a record at its current stage.
type ReviewStatus string

const (
	StatusPending  ReviewStatus = "pending"
	StatusReviewed ReviewStatus = "reviewed"
	StatusExcluded ReviewStatus = "excluded"
	StatusIncluded ReviewStatus = "included"
)

// ExclusionReason is one of the fixed reason codes set when a record is
// excluded. It is empty exactly when the record is not excluded.
type ExclusionReason string

const (
	ReasonAbstractTooShort ExclusionReason = "abstract_too_short"
	ReasonNoMethodology    ExclusionReason = "no_methodology"
	ReasonOffTopic         ExclusionReason = "off_topic"
	ReasonNonResearch      ExclusionReason = "non_research"
	ReasonCriteriaNotMet   ExclusionReason = "inclusion_criteria_not_met"
	ReasonLowRelevance     ExclusionReason = "low_relevance_score"
	ReasonMaxPapers        ExclusionReason = "max_papers_exceeded"
)

// Record holds the metadata of one candidate bibliographic record as it
// flows through deduplication, scoring, and PRISMA selection. Records are
// annotated in place and never removed from the corpus.
type Record struct {
	// DOI is the digital object identifier, when known. Weak natural key.
	DOI string `json:"doi,omitempty" yaml:"doi,omitempty"`

	// URL is the landing page or API URL the record was retrieved from.
	URL string `json:"url,omitempty" yaml:"url,omitempty"`

	// Title is the publication title. Required by the ingestion contract.
	Title string `json:"title" yaml:"title"`

	// Year is the publication year (0 when unknown).
	Year int `json:"year,omitempty" yaml:"year,omitempty"`

	// Abstract is the publication abstract, possibly empty.
	Abstract string `json:"abstract,omitempty" yaml:"abstract,omitempty"`

	// Authors lists author names in source order.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Venue is the journal, conference, or repository name.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Keywords lists subject keywords supplied by the source.
	Keywords []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`

	// Source identifies which backend provided the record (e.g. "openalex",
	// "crossref", "semantic_scholar").
	Source string `json:"source,omitempty" yaml:"source,omitempty"`

	// CitationCount is the citation count reported by the source.
	CitationCount int `json:"citation_count,omitempty" yaml:"citation_count,omitempty"`

	// PDFURL is a full-text link, when available.
	PDFURL string `json:"pdf_url,omitempty" yaml:"pdf_url,omitempty"`

	// RelevanceScore is the scorer output in [0, 10], rounded to two decimals.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// CompTechniques lists the computational technique tags matched by the
	// scorer (e.g. "machine_learning", "neural_network").
	CompTechniques []string `json:"comp_techniques,omitempty" yaml:"comp_techniques,omitempty"`

	// StudyType is the study classification matched by the scorer, empty
	// when no pattern matched.
	StudyType string `json:"study_type,omitempty" yaml:"study_type,omitempty"`

	// EvalMethods lists the evaluation method tags matched by the scorer.
	EvalMethods []string `json:"eval_methods,omitempty" yaml:"eval_methods,omitempty"`

	// IsDuplicate marks the record as a duplicate of a canonical peer.
	IsDuplicate bool `json:"is_duplicate" yaml:"is_duplicate"`

	// DuplicateOf is a lookup key ("DOI:<doi>" or "URL:<url>") naming the
	// canonical record. It carries no ownership semantics: the target may
	// itself be merged later, so resolving it is always a lookup.
	DuplicateOf string `json:"duplicate_of,omitempty" yaml:"duplicate_of,omitempty"`

	// SelectionStage is the PRISMA stage the record has reached.
	SelectionStage SelectionStage `json:"selection_stage" yaml:"selection_stage"`

	// Status is the review outcome at the current stage.
	Status ReviewStatus `json:"status" yaml:"status"`

	// Reason is the exclusion reason code, set iff Status is excluded.
	Reason ExclusionReason `json:"exclusion_reason,omitempty" yaml:"exclusion_reason,omitempty"`

	// CriteriaMet lists the inclusion criterion tags satisfied at screening.
	CriteriaMet []string `json:"inclusion_criteria_met,omitempty" yaml:"inclusion_criteria_met,omitempty"`
}
