package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/answer-ranker/internal/persistence"
	"github.com/gcbaptista/answer-ranker/internal/pipeline"
)

var goldCmd = &cobra.Command{
	Use:   "gold [flags] <file-or-dir>",
	Short: "Build and save the gold reference n-grams of every document",
	Long: `Gold builds the n-grams of each document's correct answers and saves them,
keyed by document ID, for later use with "rank --gold-store".`,
	Args: cobra.ExactArgs(1),
	RunE: runGold,
}

func init() {
	goldCmd.Flags().Int("max-n", 0, "highest n-gram order (1..3)")
	goldCmd.Flags().StringP("out", "o", "gold.mp", "output msgpack file")
}

func runGold(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	docs, err := loadDocuments(args[0])
	if err != nil {
		return err
	}

	p, err := pipeline.New(settings, logger)
	if err != nil {
		return err
	}
	gold, err := p.BuildGold(cmd.Context(), docs)
	if err != nil {
		return err
	}

	out, _ := cmd.Flags().GetString("out")
	if err := persistence.Save(out, gold); err != nil {
		return err
	}
	logger.Info("Gold store saved", zap.String("path", out), zap.Int("documents", gold.Len()))
	return nil
}
