// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/ingest"
	"github.com/pdiddy/review-engine/internal/pipeline"
	"github.com/pdiddy/review-engine/internal/store"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run deduplication, scoring, and PRISMA selection over a corpus",
	Long: `Run loads a corpus file, marks duplicates, scores every record, and
applies the PRISMA selection phases. The annotated corpus is written back
to the output file and, when a database path is given, upserted into
SQLite so repeated runs are incremental.`,
	RunE: runReview,
}

func runReview(cmd *cobra.Command, args []string) error {
	input, _ := cmd.Flags().GetString("input")
	output, _ := cmd.Flags().GetString("output")
	dbPath, _ := cmd.Flags().GetString("db")
	maxPapers, _ := cmd.Flags().GetInt("max-papers")
	minScore, _ := cmd.Flags().GetFloat64("min-score")

	cfg, err := reviewConfig()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-papers") {
		cfg.Selection.MaxPapers = maxPapers
	}
	if cmd.Flags().Changed("min-score") {
		cfg.Selection.MinRelevanceScore = minScore
	}

	records, err := ingest.LoadRecords(input)
	if err != nil {
		return err
	}

	result, err := pipeline.Run(records, cfg, os.Stdout)
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout)
	result.Stats.FormatFlow(os.Stdout)

	if output != "" {
		if err := ingest.WriteRecords(output, result.Records); err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "\nWrote annotated corpus to %s\n", output)
	}

	if dbPath != "" {
		s, err := store.Open(dbPath)
		if err != nil {
			return err
		}
		defer s.Close()

		summary, err := s.SaveRecords(context.Background(), result.Records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Saved %d record(s) to %s", summary.Saved, dbPath)
		if summary.Skipped > 0 {
			fmt.Fprintf(os.Stdout, " (%d skipped: no usable key)", summary.Skipped)
		}
		fmt.Fprintln(os.Stdout)
	}

	return nil
}

func init() {
	runCmd.Flags().String("input", "", "corpus file to review (YAML or JSON)")
	runCmd.Flags().String("output", "", "write the annotated corpus to this file")
	runCmd.Flags().String("db", "", "SQLite database path for persistent review state")
	runCmd.Flags().Int("max-papers", 0, "cap on the included set (0 = no cap)")
	runCmd.Flags().Float64("min-score", 0, "eligibility relevance threshold override")
	runCmd.MarkFlagRequired("input")

	rootCmd.AddCommand(runCmd)
}
