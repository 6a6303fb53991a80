package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/answer-ranker/internal/evaluation"
	"github.com/gcbaptista/answer-ranker/internal/ingest"
	"github.com/gcbaptista/answer-ranker/internal/persistence"
	"github.com/gcbaptista/answer-ranker/internal/pipeline"
	"github.com/gcbaptista/answer-ranker/model"
	"github.com/gcbaptista/answer-ranker/store"
)

var rankCmd = &cobra.Command{
	Use:   "rank [flags] <file-or-dir>",
	Short: "Rank the answers of every document and report precision",
	Long: `Rank reads "Q"/"A" documents from a file or from every *.txt file in a directory,
ranks each document's answers and prints the report followed by the average precision.`,
	Args: cobra.ExactArgs(1),
	RunE: runRank,
}

func init() {
	addRankingFlags(rankCmd)
	rankCmd.Flags().String("output-dir", "", "write one report file per document instead of printing")
	rankCmd.Flags().String("gold-store", "", "msgpack file of persisted gold references (from the gold command)")
	rankCmd.Flags().String("scores-out", "", "save every answer score to this msgpack file")
}

func runRank(cmd *cobra.Command, args []string) error {
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

	var report *evaluation.ReportWriter
	if settings.OutputDir != "" {
		if report, err = evaluation.NewFileReportWriter(settings.OutputDir, cmd.OutOrStdout()); err != nil {
			return err
		}
	} else {
		report = evaluation.NewConsoleReportWriter(cmd.OutOrStdout(), settings.Color)
	}

	opts := []pipeline.Option{pipeline.WithReportWriter(report)}
	if settings.GoldStore != "" {
		gold := store.NewReferenceStore()
		if err := persistence.Load(settings.GoldStore, gold); err != nil {
			return fmt.Errorf("failed to load gold store %s: %w", settings.GoldStore, err)
		}
		logger.Info("Gold store loaded", zap.String("path", settings.GoldStore), zap.Int("documents", gold.Len()))
		opts = append(opts, pipeline.WithGoldStore(gold))
	}

	p, err := pipeline.New(settings, logger, opts...)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := p.Run(ctx, docs); err != nil {
		return err
	}
	if err := p.Finish(); err != nil {
		return err
	}

	scoresOut, _ := cmd.Flags().GetString("scores-out")
	if scoresOut != "" {
		if err := persistence.Save(scoresOut, p.Scores()); err != nil {
			return err
		}
		logger.Info("Scores saved", zap.String("path", scoresOut), zap.Int("scores", p.Scores().Len()))
	}
	return nil
}

// loadDocuments loads a single document file or every document in a directory.
func loadDocuments(path string) ([]*model.Document, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if info.IsDir() {
		return ingest.LoadDir(path)
	}
	doc, err := ingest.LoadFile(path)
	if err != nil {
		return nil, err
	}
	return []*model.Document{doc}, nil
}
