package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "answer-ranker",
	Short: "Rank candidate answers by overlap with their question",
	Long: `answer-ranker scores candidate answers against the n-grams of their question
(and optionally of gold answers), ranks them and reports precision at R.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.Version = version

	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(goldCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("config", "", "path to a TOML settings file")
	rootCmd.PersistentFlags().String("color", "", "colorize console reports (auto|on|off)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable development logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger builds a production logger, or a development logger with --debug.
func newLogger(cmd *cobra.Command) (*zap.Logger, error) {
	debug, err := cmd.Flags().GetBool("debug")
	if err != nil {
		return nil, err
	}
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("answer-ranker v%s\n", version)
	},
}
