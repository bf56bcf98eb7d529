package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polyroots/internal/tui"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "polyroots %s (%s %s/%s)\n", tui.Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
