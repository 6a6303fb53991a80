package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gcbaptista/answer-ranker/config"
)

// addRankingFlags registers the flags that override settings file values.
func addRankingFlags(cmd *cobra.Command) {
	cmd.Flags().Int("max-n", 0, "highest n-gram order (1..3)")
	cmd.Flags().String("reference-mode", "", "reference n-grams: question|gold|combined")
	cmd.Flags().Bool("entities", false, "apply the named-entity proximity adjustment")
	cmd.Flags().Bool("tie-break", true, "rank correct answers first among equal scores")
	cmd.Flags().String("zero-correct", "", "documents without correct answers: skip|zero|fail")
	cmd.Flags().Int("workers", 0, "documents processed in parallel")
}

// loadSettings reads the settings file given by --config, if any, and applies flag overrides.
// Only flags set explicitly on the command line override file values; flags a command
// does not define are never reported as changed.
func loadSettings(cmd *cobra.Command) (config.RankerSettings, error) {
	settings := config.RankerSettings{}

	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return settings, err
	}
	if path != "" {
		if settings, err = config.LoadFile(path); err != nil {
			return settings, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("max-n") {
		settings.MaxN, _ = flags.GetInt("max-n")
	}
	if flags.Changed("reference-mode") {
		settings.ReferenceMode, _ = flags.GetString("reference-mode")
	}
	if flags.Changed("entities") {
		settings.EntityScoring, _ = flags.GetBool("entities")
	}
	if flags.Changed("tie-break") {
		tieBreak, _ := flags.GetBool("tie-break")
		settings.TieBreak = &tieBreak
	}
	if flags.Changed("zero-correct") {
		settings.ZeroCorrectPolicy, _ = flags.GetString("zero-correct")
	}
	if flags.Changed("workers") {
		settings.Workers, _ = flags.GetInt("workers")
	}
	if flags.Changed("color") {
		settings.Color, _ = flags.GetString("color")
	}
	if flags.Changed("output-dir") {
		settings.OutputDir, _ = flags.GetString("output-dir")
	}
	if flags.Changed("gold-store") {
		settings.GoldStore, _ = flags.GetString("gold-store")
	}

	settings.ApplyDefaults()
	if problems := settings.Validate(); len(problems) > 0 {
		return settings, fmt.Errorf("invalid settings: %s", strings.Join(problems, "; "))
	}
	return settings, nil
}
