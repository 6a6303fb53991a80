package main

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gcbaptista/answer-ranker/api"
	"github.com/gcbaptista/answer-ranker/internal/pipeline"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the ranking API over HTTP",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	addRankingFlags(serveCmd)
	serveCmd.Flags().String("port", "8080", "port to run the server on")
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, err := newLogger(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	p, err := pipeline.New(settings, logger)
	if err != nil {
		return err
	}

	debug, _ := cmd.Flags().GetBool("debug")
	if !debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, p, logger)

	port, _ := cmd.Flags().GetString("port")
	logger.Info("Starting server", zap.String("port", port))
	return router.Run(":" + port)
}
