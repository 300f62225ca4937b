// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/config"
	"github.com/naka-gawa/github-activity/internal/gateway"
	"github.com/naka-gawa/github-activity/internal/usecase"
)

var rootCmd = &cobra.Command{
	Use:   "github-activity",
	Short: "A CLI tool to look up a GitHub user's profile, repositories and commit activity.",
	Long: `github-activity fetches a GitHub user's public profile and repositories,
aggregates their recent commits per day and renders the result in the terminal.
Set GITHUB_TOKEN to raise the API rate limit.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
	rootCmd.PersistentFlags().IntP("concurrency", "c", config.DefaultConcurrency, "Maximum commit requests in flight")
}

// newLogger creates the command logger. Debug messages are shown with --verbose.
func newLogger(cmd *cobra.Command, w io.Writer) *log.Logger {
	level := log.InfoLevel
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newSearcher wires the configuration, the GitHub gateway and the searcher.
func newSearcher(cmd *cobra.Command, logger *log.Logger) (*usecase.Searcher, error) {
	cfg := config.Load()
	if cmd.Flags().Changed("concurrency") {
		cfg.Concurrency, _ = cmd.Flags().GetInt("concurrency")
	}

	githubGateway, err := gateway.NewGitHubGateway(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub gateway: %w", err)
	}
	return usecase.NewSearcher(githubGateway, logger, cfg.Concurrency), nil
}
