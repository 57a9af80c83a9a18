package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/iliyamo/stagebook/internal/config"
)

var rootCmd = &cobra.Command{
	Use:   "stagebook",
	Short: "Fyyur, trivia and coffee shop backends on one HTTP server",
	Long: `stagebook serves three catalogue backends over JSON:

  fyyur   venues, artists and the shows that book them
  trivia  a categorised question bank and a quiz
  coffee  a drink menu with layered recipes

Without a subcommand it runs the HTTP server.`,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// setupLogging switches logrus to JSON at the configured level.
func setupLogging(cfg config.Config) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)
	lvl, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		logrus.WithField("log_level", cfg.LogLevel).Warn("unknown LOG_LEVEL, using info")
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
