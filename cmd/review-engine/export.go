// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/review-engine/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the stored corpus to a YAML or JSON file",
	Long: `Export writes the stored corpus, highest relevance first, to the given
output file. The format follows the file extension.`,
	RunE: runExport,
}

func runExport(cmd *cobra.Command, args []string) error {
	dbPath, _ := cmd.Flags().GetString("db")
	output, _ := cmd.Flags().GetString("output")

	s, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.ExportYAML(context.Background(), output); err != nil {
		return err
	}
	fmt.Fprintf(os.Stdout, "Exported to %s\n", output)
	return nil
}

func init() {
	exportCmd.Flags().String("db", "review.db", "SQLite database path")
	exportCmd.Flags().String("output", "export.yaml", "output file (YAML or JSON by extension)")

	rootCmd.AddCommand(exportCmd)
}
