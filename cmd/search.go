package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/domain"
	"github.com/naka-gawa/github-activity/internal/usecase"
	"github.com/naka-gawa/github-activity/internal/view"
)

// searchResult is the JSON document printed by search --json.
type searchResult struct {
	State usecase.State                  `json:"state"`
	Page  usecase.Page[domain.Repository] `json:"page"`
}

var searchCmd = &cobra.Command{
	Use:   "search <username>",
	Short: "Shows a user's profile, daily commit activity and repositories",
	Long: `Fetches the public profile of a GitHub user, up to 100 of their repositories and
the 20 most recent commits of each repository, then prints the profile, the number
of commits per day and one page of the repository list.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger(cmd, cmd.ErrOrStderr())
		searcher, err := newSearcher(cmd, logger)
		if err != nil {
			return err
		}

		state, err := searcher.Search(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		state = searcher.SetPage(page)

		if chartPath, _ := cmd.Flags().GetString("chart"); chartPath != "" {
			if err := writeChartFile(chartPath, state.Username, state.Commits); err != nil {
				return err
			}
			logger.Info("Chart written", "path", chartPath)
		}

		out := cmd.OutOrStdout()
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			jsonData, err := json.MarshalIndent(searchResult{State: state, Page: searcher.VisibleRepositories()}, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal results to JSON: %w", err)
			}
			fmt.Fprintln(out, string(jsonData))
			return nil
		}

		fmt.Fprintln(out, view.Render(state, searcher.VisibleRepositories()))
		return nil
	},
}

// writeChartFile writes the commit chart to path. A failed close is reported
// since the file may be incomplete.
func writeChartFile(path, username string, series []domain.DailyCommitCount) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close chart file: %w", cerr)
		}
	}()
	return view.WriteChartHTML(f, username, series)
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("page", "p", 1, "Repository page to show (clamped to the available pages)")
	searchCmd.Flags().String("chart", "", "Write the commit chart as HTML to this file")
	searchCmd.Flags().Bool("json", false, "Print the result as JSON")
}
