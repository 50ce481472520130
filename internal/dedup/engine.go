// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dedup marks duplicate records in a corpus without removing any.
// Duplicates are detected by exact identifier match, then by blocked
// near-duplicate title similarity, and each duplicate cluster is resolved
// to its best-quality representative.
package dedup

import (
	"fmt"
	"io"
	"math"

	fuzzy "github.com/paul-mannino/go-fuzzywuzzy"

	"github.com/pdiddy/review-engine/internal/textnorm"
	"github.com/pdiddy/review-engine/pkg/types"
)

// Engine marks duplicates in place. It owns only the IsDuplicate and
// DuplicateOf fields, plus the stage/status fields of a cluster winner
// when it inherits a further-along stage from a cluster member.
type Engine struct {
	cfg types.DedupConfig
}

// NewEngine returns an engine using the configured thresholds.
func NewEngine(cfg types.DedupConfig) *Engine {
	return &Engine{cfg: cfg}
}

// Summary holds counts from one deduplication run.
type Summary struct {
	ByIdentifier int
	ByTitle      int
	Clusters     int
}

// Mark annotates duplicate records in three passes: exact identifier
// grouping, blocked title similarity, and best-record resolution per
// cluster. The slice keeps its order and cardinality; progress and
// skipped-block warnings go to w.
func (e *Engine) Mark(records []types.Record, w io.Writer) Summary {
	run := &markRun{
		engine:      e,
		records:     records,
		canonicalOf: make(map[int]int),
	}

	run.exactPass()
	run.nearPass(w)
	run.resolveBest()

	summary := run.summary
	summary.Clusters = len(run.clusters())
	fmt.Fprintf(w, "dedup: %d duplicate(s) by identifier, %d by title similarity, %d cluster(s)\n",
		summary.ByIdentifier, summary.ByTitle, summary.Clusters)
	return summary
}

// markRun carries the per-run linkage state. canonicalOf maps a duplicate
// index to its canonical index; the DuplicateOf string on the record is
// the audit-facing weak reference derived from it.
type markRun struct {
	engine      *Engine
	records     []types.Record
	canonicalOf map[int]int
	summary     Summary
}

// root resolves an index to its cluster canonical.
func (m *markRun) root(i int) int {
	for {
		j, ok := m.canonicalOf[i]
		if !ok {
			return i
		}
		i = j
	}
}

// refKey returns the weak-reference key for a record: its normalized DOI,
// or its URL when no DOI exists. Empty when the record has neither.
func refKey(r types.Record) string {
	if doi := textnorm.Identifier(r.DOI); doi != "" {
		return "DOI:" + doi
	}
	if r.URL != "" {
		return "URL:" + r.URL
	}
	return ""
}

// link marks dup as a duplicate of the cluster containing canon. Links
// whose canonical has neither DOI nor URL are dropped, since the weak
// reference could not be expressed.
func (m *markRun) link(canon, dup int) bool {
	canon = m.root(canon)
	if canon == dup || m.records[dup].IsDuplicate {
		return false
	}
	key := refKey(m.records[canon])
	if key == "" {
		return false
	}
	m.records[dup].IsDuplicate = true
	m.records[dup].DuplicateOf = key
	m.canonicalOf[dup] = canon
	return true
}

// exactPass groups records by normalized DOI, then by raw URL for records
// that did not match a DOI group. The first-seen record of each group is
// canonical.
func (m *markRun) exactPass() {
	byDOI := make(map[string]int)
	for i := range m.records {
		doi := textnorm.Identifier(m.records[i].DOI)
		if doi == "" {
			continue
		}
		if first, ok := byDOI[doi]; ok {
			if m.link(first, i) {
				m.summary.ByIdentifier++
			}
		} else {
			byDOI[doi] = i
		}
	}

	byURL := make(map[string]int)
	for i := range m.records {
		if m.records[i].IsDuplicate || m.records[i].URL == "" {
			continue
		}
		if first, ok := byURL[m.records[i].URL]; ok {
			if m.link(first, i) {
				m.summary.ByIdentifier++
			}
		} else {
			byURL[m.records[i].URL] = i
		}
	}
}

// nearPass buckets records by a short prefix of the normalized title and
// compares titles only within a bucket. Identical normalized titles link
// instantly; the rest link when both the TF-IDF cosine distance and the
// token-set ratio pass their thresholds. A block that cannot be
// vectorized is logged and skipped; the rest of the corpus continues.
func (m *markRun) nearPass(w io.Writer) {
	prefixLen := m.engine.cfg.BlockPrefixLen

	var blockKeys []string
	blocks := make(map[string][]int)
	for i := range m.records {
		if m.records[i].IsDuplicate {
			continue
		}
		canon := textnorm.Title(m.records[i].Title)
		if canon == "" {
			continue
		}
		key := canon
		if len(key) > prefixLen {
			key = key[:prefixLen]
		}
		if _, ok := blocks[key]; !ok {
			blockKeys = append(blockKeys, key)
		}
		blocks[key] = append(blocks[key], i)
	}

	for _, key := range blockKeys {
		idx := blocks[key]
		if len(idx) < 2 {
			continue
		}

		// Identical normalized titles link without similarity scoring.
		seen := make(map[string]int)
		remaining := idx[:0:0]
		for _, i := range idx {
			canon := textnorm.Title(m.records[i].Title)
			if first, ok := seen[canon]; ok {
				if m.link(first, i) {
					m.summary.ByTitle++
				}
				continue
			}
			seen[canon] = i
			remaining = append(remaining, i)
		}
		if len(remaining) < 2 {
			continue
		}

		docs := make([]string, len(remaining))
		for k, i := range remaining {
			docs[k] = textnorm.Title(m.records[i].Title)
		}
		vectors, err := tfidfVectors(docs)
		if err != nil {
			fmt.Fprintf(w, "warning: dedup: skipping block %q: %v\n", key, err)
			continue
		}

		for a := 0; a < len(remaining); a++ {
			for b := a + 1; b < len(remaining); b++ {
				if m.records[remaining[b]].IsDuplicate {
					continue
				}
				if cosineDistance(vectors[a], vectors[b]) > m.engine.cfg.CosineThreshold {
					continue
				}
				// Second, independent signal to cut false positives.
				if fuzzy.TokenSetRatio(docs[a], docs[b]) < m.engine.cfg.RatioThreshold {
					continue
				}
				if m.link(remaining[a], remaining[b]) {
					m.summary.ByTitle++
				}
			}
		}
	}
}

// clusters groups record indices by canonical index. Member lists start
// with the canonical and keep first-seen order.
func (m *markRun) clusters() map[int][]int {
	out := make(map[int][]int)
	for dup := range m.canonicalOf {
		root := m.root(dup)
		if _, ok := out[root]; !ok {
			out[root] = []int{root}
		}
	}
	for i := range m.records {
		if _, ok := m.canonicalOf[i]; ok {
			out[m.root(i)] = append(out[m.root(i)], i)
		}
	}
	return out
}

// resolveBest picks the representative of each cluster by quality score
// (identifier presence over abstract length over citations over full-text
// link) and re-points the weak references at it. The winner never
// downgrades: it inherits the furthest-along stage and status held by any
// cluster member, so deduplication cannot revert a reviewer decision.
func (m *markRun) resolveBest() {
	for root, members := range m.clusters() {
		winner := root
		best := quality(m.records[root])
		for _, i := range members {
			if q := quality(m.records[i]); q > best {
				winner, best = i, q
			}
		}
		if refKey(m.records[winner]) == "" {
			// Cannot re-point weak references at a record with no key.
			winner = root
		}

		furthest := root
		for _, i := range members {
			if m.records[i].SelectionStage.Rank() > m.records[furthest].SelectionStage.Rank() {
				furthest = i
			}
		}
		if m.records[furthest].SelectionStage.Rank() > m.records[winner].SelectionStage.Rank() {
			m.records[winner].SelectionStage = m.records[furthest].SelectionStage
			m.records[winner].Status = m.records[furthest].Status
			m.records[winner].Reason = m.records[furthest].Reason
			m.records[winner].CriteriaMet = m.records[furthest].CriteriaMet
		}

		if winner != root {
			m.records[winner].IsDuplicate = false
			m.records[winner].DuplicateOf = ""
		}
		key := refKey(m.records[winner])
		for _, i := range members {
			if i == winner {
				continue
			}
			m.records[i].IsDuplicate = true
			m.records[i].DuplicateOf = key
		}
	}
}

// quality scores a record for best-record resolution. Identifier presence
// dominates, then abstract length, citation count, and a full-text link.
func quality(r types.Record) float64 {
	var q float64
	if textnorm.Identifier(r.DOI) != "" {
		q += 4
	}
	q += 3 * math.Min(float64(len(r.Abstract))/500, 1)
	q += 2 * math.Min(float64(r.CitationCount)/100, 1)
	if r.PDFURL != "" {
		q++
	}
	return q
}
