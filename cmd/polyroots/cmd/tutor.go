package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polyroots/internal/logging"
	"github.com/njchilds90/polyroots/internal/tui"
)

var tutorCmd = &cobra.Command{
	Use:   "tutor [polynomial]",
	Short: "Start the interactive walk-through",
	Long: `Starts the terminal tutorial. Each stage unlocks once the one before
it has run.

Navigation:
  n / right   - next stage
  b / left    - previous stage
  1-5         - jump to a completed stage
  g           - guess a candidate root
  a           - try the next remaining candidate
  l           - toggle LaTeX
  r           - start over
  q / Ctrl+C  - quit`,
	RunE: runTutor,
}

func init() {
	rootCmd.AddCommand(tutorCmd)
}

func runTutor(cmd *cobra.Command, args []string) error {
	// Log lines would tear the alternate screen.
	err := tui.Run(tui.Config{
		ShowLaTeX:  cfg.TUI.ShowLaTeX,
		Options:    cfg.EngineOptions(),
		Logger:     logging.Discard(),
		Polynomial: strings.Join(args, ""),
	})
	if err != nil {
		printError("tutor", err)
	}
	return err
}
