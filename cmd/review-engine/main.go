// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the review-engine CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/review-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the review-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "review-engine",
	Short: "Systematic review pipeline for bibliographic records",
	Long: `review-engine runs the core of a PRISMA systematic review over a corpus
of bibliographic records: duplicate marking, relevance scoring, and staged
selection (identification, screening, eligibility, inclusion).

The corpus is a YAML or JSON file of records, typically exported from a
literature search. The pipeline annotates records in place and never
removes any, so every exclusion stays auditable.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./review-engine.yaml or ~/.config/review-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("review-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "review-engine"))
		}
	}

	viper.SetEnvPrefix("REVIEW_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// reviewConfig builds the pipeline configuration from defaults overlaid
// with config file and environment values.
func reviewConfig() (types.ReviewConfig, error) {
	cfg := types.DefaultReviewConfig()

	if viper.IsSet("dedup.cosine_threshold") {
		cfg.Dedup.CosineThreshold = viper.GetFloat64("dedup.cosine_threshold")
	}
	if viper.IsSet("dedup.ratio_threshold") {
		cfg.Dedup.RatioThreshold = viper.GetInt("dedup.ratio_threshold")
	}
	if viper.IsSet("dedup.block_prefix_len") {
		cfg.Dedup.BlockPrefixLen = viper.GetInt("dedup.block_prefix_len")
	}
	if viper.IsSet("scoring.weights.domain") {
		cfg.Scoring.Weights.Domain = viper.GetFloat64("scoring.weights.domain")
	}
	if viper.IsSet("scoring.weights.technical") {
		cfg.Scoring.Weights.Technical = viper.GetFloat64("scoring.weights.technical")
	}
	if viper.IsSet("scoring.weights.methodology") {
		cfg.Scoring.Weights.Methodology = viper.GetFloat64("scoring.weights.methodology")
	}
	if viper.IsSet("scoring.weights.recency") {
		cfg.Scoring.Weights.Recency = viper.GetFloat64("scoring.weights.recency")
	}
	if viper.IsSet("scoring.weights.quality") {
		cfg.Scoring.Weights.Quality = viper.GetFloat64("scoring.weights.quality")
	}
	if viper.IsSet("selection.year_min") {
		cfg.Selection.YearMin = viper.GetInt("selection.year_min")
	}
	if viper.IsSet("selection.year_max") {
		cfg.Selection.YearMax = viper.GetInt("selection.year_max")
	}
	if viper.IsSet("selection.languages") {
		cfg.Selection.Languages = viper.GetStringSlice("selection.languages")
	}
	if viper.IsSet("selection.min_abstract_words") {
		cfg.Selection.MinAbstractWords = viper.GetInt("selection.min_abstract_words")
	}
	if viper.IsSet("selection.min_relevance_score") {
		cfg.Selection.MinRelevanceScore = viper.GetFloat64("selection.min_relevance_score")
	}
	if viper.IsSet("selection.max_papers") {
		cfg.Selection.MaxPapers = viper.GetInt("selection.max_papers")
	}

	if err := cfg.Validate(); err != nil {
		return types.ReviewConfig{}, err
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
