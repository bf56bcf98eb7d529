package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/internal/tui"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <polynomial>",
	Short: "Look for recognizable forms",
	Long: `Reads off common factors, differences of squares and sums or
differences of cubes, and reports what is left for the Rational Zero Test.

Examples:
  polyroots analyze "x^3-8"
  polyroots analyze "7x(x+5)"
  polyroots analyze --json "x^4-16"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

var rztCmd = &cobra.Command{
	Use:   "rzt <polynomial>",
	Short: "List the Rational Zero Test candidates",
	Long: `Lists the divisors p of the constant term, the divisors q of the
leading coefficient and every reduced p/q.

Examples:
  polyroots rzt "2x^2+13x+6"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRZT,
}

var descartesCmd = &cobra.Command{
	Use:   "descartes <polynomial>",
	Short: "Count sign changes with Descartes' rule of signs",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDescartes,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(rztCmd)
	rootCmd.AddCommand(descartesCmd)
}

func engineOptions() []polyroots.Option {
	return append(cfg.EngineOptions(), polyroots.WithLogger(logger))
}

// vectorArg parses the polynomial argument and applies the degree limit.
func vectorArg(args []string) (polyroots.Vector, error) {
	raw := strings.Join(args, "")
	if err := polyroots.CheckDegree(raw, engineOptions()...); err != nil {
		return nil, err
	}
	return polyroots.ToVector(raw)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, "")
	if err := polyroots.CheckDegree(raw, engineOptions()...); err != nil {
		return err
	}
	res, err := polyroots.Analyze(raw, engineOptions()...)
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), res, tui.RenderForms(res, cfg.TUI.ShowLaTeX))
}

func runRZT(cmd *cobra.Command, args []string) error {
	v, err := vectorArg(args)
	if err != nil {
		return err
	}
	res, err := polyroots.RationalZeroTest(v)
	if err != nil {
		return err
	}
	return emit(cmd.OutOrStdout(), res, tui.RenderRZT(res, cfg.TUI.ShowLaTeX))
}

func runDescartes(cmd *cobra.Command, args []string) error {
	v, err := vectorArg(args)
	if err != nil {
		return err
	}
	sc := polyroots.Descartes(v)
	return emit(cmd.OutOrStdout(), sc, tui.RenderDescartes(sc))
}
