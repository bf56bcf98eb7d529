package cmd

import (
	"github.com/spf13/cobra"

	"github.com/njchilds90/polyroots"
	"github.com/njchilds90/polyroots/internal/tui"
)

var divideCoeffs bool

var divideCmd = &cobra.Command{
	Use:   "divide <polynomial> <root>",
	Short: "Synthetic division by x - root",
	Long: `Divides the polynomial by (x - root) and shows the tableau. The root
may be a fraction. Put -- before a negative root.

Examples:
  polyroots divide "x^3-2x^2-5x+6" 3
  polyroots divide -- "2x^2+13x+6" -1/2
  polyroots divide --coeffs 1,-2,-5,6 3`,
	Args: cobra.ExactArgs(2),
	RunE: runDivide,
}

func init() {
	rootCmd.AddCommand(divideCmd)
	divideCmd.Flags().BoolVar(&divideCoeffs, "coeffs", false, "read the polynomial as comma separated coefficients, highest degree first")
}

func runDivide(cmd *cobra.Command, args []string) error {
	var (
		v   polyroots.Vector
		err error
	)
	if divideCoeffs {
		v, err = polyroots.ParseVector(args[:1])
	} else {
		v, err = vectorArg(args[:1])
	}
	if err != nil {
		return err
	}
	r, err := polyroots.ParseRational(args[1])
	if err != nil {
		return err
	}
	d := polyroots.Divide(v, r)
	return emit(cmd.OutOrStdout(), d, tui.RenderDivision(d))
}
