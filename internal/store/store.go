// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists annotated record corpora in SQLite so repeated
// pipeline runs are incremental and the review state survives restarts.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/review-engine/internal/ingest"
	"github.com/pdiddy/review-engine/internal/textnorm"
	"github.com/pdiddy/review-engine/pkg/types"
)

// Store manages the review corpus SQLite database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the corpus database at path, creating parent
// directories and the schema as needed.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			record_key TEXT NOT NULL UNIQUE,
			doi TEXT,
			url TEXT,
			title TEXT NOT NULL,
			year INTEGER,
			abstract TEXT,
			authors TEXT,
			venue TEXT,
			keywords TEXT,
			source TEXT,
			citation_count INTEGER,
			pdf_url TEXT,
			relevance_score REAL,
			comp_techniques TEXT,
			study_type TEXT,
			eval_methods TEXT,
			is_duplicate INTEGER NOT NULL DEFAULT 0,
			duplicate_of TEXT,
			selection_stage TEXT NOT NULL,
			status TEXT NOT NULL,
			exclusion_reason TEXT,
			criteria_met TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_stage ON records(selection_stage)`,
		`CREATE INDEX IF NOT EXISTS idx_records_status ON records(status)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// recordKey is the upsert key: normalized DOI, then URL, then normalized
// title. Empty when the record has none of the three.
func recordKey(r types.Record) string {
	if doi := textnorm.Identifier(r.DOI); doi != "" {
		return "doi:" + doi
	}
	if r.URL != "" {
		return "url:" + r.URL
	}
	if title := textnorm.Title(r.Title); title != "" {
		return "title:" + title
	}
	return ""
}

// SaveSummary holds counts from one save run.
type SaveSummary struct {
	Saved   int
	Skipped int
}

// SaveRecords upserts the corpus in a single transaction, keyed by DOI,
// URL, or normalized title. Records with none of the three are skipped:
// they cannot be re-identified on a later run.
func (s *Store) SaveRecords(ctx context.Context, records []types.Record) (SaveSummary, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO records (record_key, doi, url, title, year, abstract, authors, venue,
			keywords, source, citation_count, pdf_url, relevance_score, comp_techniques,
			study_type, eval_methods, is_duplicate, duplicate_of, selection_stage, status,
			exclusion_reason, criteria_met)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(record_key) DO UPDATE SET
			doi=excluded.doi, url=excluded.url, title=excluded.title, year=excluded.year,
			abstract=excluded.abstract, authors=excluded.authors, venue=excluded.venue,
			keywords=excluded.keywords, source=excluded.source,
			citation_count=excluded.citation_count, pdf_url=excluded.pdf_url,
			relevance_score=excluded.relevance_score,
			comp_techniques=excluded.comp_techniques, study_type=excluded.study_type,
			eval_methods=excluded.eval_methods, is_duplicate=excluded.is_duplicate,
			duplicate_of=excluded.duplicate_of, selection_stage=excluded.selection_stage,
			status=excluded.status, exclusion_reason=excluded.exclusion_reason,
			criteria_met=excluded.criteria_met`)
	if err != nil {
		return SaveSummary{}, fmt.Errorf("preparing upsert: %w", err)
	}
	defer stmt.Close()

	var summary SaveSummary
	for i := range records {
		r := records[i]
		key := recordKey(r)
		if key == "" {
			summary.Skipped++
			continue
		}
		_, err := stmt.ExecContext(ctx,
			key, r.DOI, r.URL, r.Title, r.Year, r.Abstract,
			marshalStrings(r.Authors), r.Venue, marshalStrings(r.Keywords), r.Source,
			r.CitationCount, r.PDFURL, r.RelevanceScore, marshalStrings(r.CompTechniques),
			r.StudyType, marshalStrings(r.EvalMethods), r.IsDuplicate, r.DuplicateOf,
			string(r.SelectionStage), string(r.Status), string(r.Reason),
			marshalStrings(r.CriteriaMet),
		)
		if err != nil {
			return SaveSummary{}, fmt.Errorf("upserting record %q: %w", key, err)
		}
		summary.Saved++
	}

	if err := tx.Commit(); err != nil {
		return SaveSummary{}, fmt.Errorf("committing: %w", err)
	}
	return summary, nil
}

// ListOptions filters ListRecords. Zero values mean no filter.
type ListOptions struct {
	Stage  types.SelectionStage
	Status types.ReviewStatus
}

// ListRecords returns matching records ordered by relevance score
// descending, with insertion order breaking ties.
func (s *Store) ListRecords(ctx context.Context, opts ListOptions) ([]types.Record, error) {
	query := `SELECT doi, url, title, year, abstract, authors, venue, keywords, source,
		citation_count, pdf_url, relevance_score, comp_techniques, study_type,
		eval_methods, is_duplicate, duplicate_of, selection_stage, status,
		exclusion_reason, criteria_met FROM records`

	var conds []string
	var args []any
	if opts.Stage != "" {
		conds = append(conds, "selection_stage = ?")
		args = append(args, string(opts.Stage))
	}
	if opts.Status != "" {
		conds = append(conds, "status = ?")
		args = append(args, string(opts.Status))
	}
	for i, cond := range conds {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY relevance_score DESC, rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	defer rows.Close()

	var records []types.Record
	for rows.Next() {
		var r types.Record
		var authors, keywords, techniques, evalMethods, criteria string
		var stage, status, reason string
		err := rows.Scan(&r.DOI, &r.URL, &r.Title, &r.Year, &r.Abstract, &authors,
			&r.Venue, &keywords, &r.Source, &r.CitationCount, &r.PDFURL,
			&r.RelevanceScore, &techniques, &r.StudyType, &evalMethods,
			&r.IsDuplicate, &r.DuplicateOf, &stage, &status, &reason, &criteria)
		if err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		r.Authors = unmarshalStrings(authors)
		r.Keywords = unmarshalStrings(keywords)
		r.CompTechniques = unmarshalStrings(techniques)
		r.EvalMethods = unmarshalStrings(evalMethods)
		r.CriteriaMet = unmarshalStrings(criteria)
		r.SelectionStage = types.SelectionStage(stage)
		r.Status = types.ReviewStatus(status)
		r.Reason = types.ExclusionReason(reason)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating records: %w", err)
	}
	return records, nil
}

// StageCounts returns the number of records at each selection stage.
func (s *Store) StageCounts(ctx context.Context) (map[types.SelectionStage]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT selection_stage, count(*) FROM records GROUP BY selection_stage`)
	if err != nil {
		return nil, fmt.Errorf("querying stage counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[types.SelectionStage]int)
	for rows.Next() {
		var stage string
		var n int
		if err := rows.Scan(&stage, &n); err != nil {
			return nil, fmt.Errorf("scanning stage count: %w", err)
		}
		counts[types.SelectionStage(stage)] = n
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating stage counts: %w", err)
	}
	return counts, nil
}

// ExportYAML writes the stored corpus to path, highest relevance first.
func (s *Store) ExportYAML(ctx context.Context, path string) error {
	records, err := s.ListRecords(ctx, ListOptions{})
	if err != nil {
		return err
	}
	return ingest.WriteRecords(path, records)
}

func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, _ := json.Marshal(values)
	return string(data)
}

func unmarshalStrings(data string) []string {
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil || len(values) == 0 {
		return nil
	}
	return values
}
