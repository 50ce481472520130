// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ingest reads and writes record corpora on disk. A corpus file is
// YAML or JSON, chosen by file extension, and holds the records under a
// top-level records key.
package ingest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/review-engine/pkg/types"
)

// CorpusFile is the on-disk representation of a record corpus. The
// researcher can export search results to a file, run the review pipeline
// over it, and save the annotated corpus back.
type CorpusFile struct {
	Records []types.Record `yaml:"records" json:"records"`
}

// LoadRecords reads a corpus file. Records without a selection stage start
// at identification with a pending status, so a freshly exported search
// result is a valid pipeline input.
func LoadRecords(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading corpus file: %w", err)
	}

	var corpus CorpusFile
	if isJSON(path) {
		err = json.Unmarshal(data, &corpus)
	} else {
		err = yaml.Unmarshal(data, &corpus)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing corpus file %s: %w", path, err)
	}

	for i := range corpus.Records {
		if corpus.Records[i].SelectionStage == "" {
			corpus.Records[i].SelectionStage = types.StageIdentification
		}
		if corpus.Records[i].Status == "" {
			corpus.Records[i].Status = types.StatusPending
		}
	}
	return corpus.Records, nil
}

// WriteRecords saves a corpus to path, YAML or JSON by extension.
func WriteRecords(path string, records []types.Record) error {
	corpus := CorpusFile{Records: records}

	var data []byte
	var err error
	if isJSON(path) {
		data, err = json.MarshalIndent(&corpus, "", "  ")
	} else {
		data, err = yaml.Marshal(&corpus)
	}
	if err != nil {
		return fmt.Errorf("marshaling corpus: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}
