package cmd

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/naka-gawa/github-activity/internal/view"
)

var tuiCmd = &cobra.Command{
	Use:   "tui [username]",
	Short: "Interactive search screen",
	Long: `Opens an interactive screen with a username input. Press enter to search,
the left and right arrows to page through repositories and esc to quit.
Logs are discarded unless --log-file is given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var logOutput io.Writer = io.Discard
		if path, _ := cmd.Flags().GetString("log-file"); path != "" {
			f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			logOutput = f
		}
		logger := newLogger(cmd, logOutput)

		searcher, err := newSearcher(cmd, logger)
		if err != nil {
			return err
		}

		var initial string
		if len(args) == 1 {
			initial = args[0]
		}

		program := tea.NewProgram(view.NewModel(cmd.Context(), searcher, initial), tea.WithAltScreen())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("failed to run interactive screen: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tuiCmd)
	tuiCmd.Flags().String("log-file", "", "Append logs to this file")
}
