// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/store"
	"github.com/pdiddy/review-engine/pkg/types"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show how many stored records sit at each PRISMA stage",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	counts, err := s.StageCounts(context.Background())
	if err != nil {
		return err
	}

	stages := []types.SelectionStage{
		types.StageIdentification,
		types.StageScreening,
		types.StageEligibility,
		types.StageIncluded,
	}
	total := 0
	for _, stage := range stages {
		fmt.Fprintf(os.Stdout, "%-16s %d\n", string(stage)+":", counts[stage])
		total += counts[stage]
	}
	fmt.Fprintf(os.Stdout, "%-16s %d\n", "total:", total)
	return nil
}

func init() {
	statusCmd.Flags().String("db", "review.db", "SQLite database path")

	rootCmd.AddCommand(statusCmd)
}
