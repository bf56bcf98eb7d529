package cmd

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/internal/tui"
)

var solveCmd = &cobra.Command{
	Use:   "solve <polynomial>",
	Short: "Run every stage and print the roots",
	Long: `Runs recognizable forms, the Rational Zero Test, Descartes' rule of
signs and synthetic division, trying every candidate in order.

Examples:
  polyroots solve "x^3-2x^2-5x+6"
  polyroots solve --json "(x+1)(x^2-5x+6)"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSolve,
}

func init() {
	rootCmd.AddCommand(solveCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	rep, err := polyroots.Solve(strings.Join(args, ""), engineOptions()...)
	if err != nil {
		return err
	}
	logger.Debug("solved",
		slog.String("polynomial", rep.Polynomial),
		slog.String("outcome", rep.Outcome.String()))
	return emit(cmd.OutOrStdout(), rep, tui.RenderReport(rep, cfg.TUI.ShowLaTeX))
}
