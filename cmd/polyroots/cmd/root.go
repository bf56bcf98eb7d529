package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/errgo.v1"

	"github.com/njchilds90/polyroots/internal/config"
	"github.com/njchilds90/polyroots/internal/logging"
)

var (
	cfgFile   string
	logLevel  string
	asJSON    bool
	showLaTeX bool
	maxDegree int

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "polyroots",
	Short: "Find the rational roots of a polynomial, step by step",
	Long: `polyroots finds the roots of a polynomial in x with the methods taught in
an algebra course:

  forms      - recognizable forms (differences of squares, cubes, common factors)
  rzt        - the Rational Zero Test
  descartes  - Descartes' rule of signs
  divide     - synthetic division by a candidate root
  solve      - all of the above in one go
  tutor      - an interactive walk-through in the terminal
  serve      - the HTTP tool endpoint and WebSocket tutorial`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $"+config.EnvVar+" or ./polyroots.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print results as JSON")
	rootCmd.PersistentFlags().BoolVar(&showLaTeX, "latex", false, "print numbers and polynomials as LaTeX")
	rootCmd.PersistentFlags().IntVar(&maxDegree, "max-degree", 0, "highest degree accepted (default from config)")
}

// setup loads the configuration and applies flag overrides.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		cfg, err = config.Load(cfgFile)
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("log-level") {
		cfg.General.LogLevel = logLevel
	}
	if cmd.Flags().Changed("max-degree") {
		cfg.Engine.MaxDegree = maxDegree
	}
	if cmd.Flags().Changed("latex") {
		cfg.TUI.ShowLaTeX = showLaTeX
	}
	if err := cfg.Validate(); err != nil {
		return errgo.Notef(err, "invalid flags")
	}

	logger = logging.New(logging.LoggerConfig{
		ServiceName: "polyroots",
		Level:       cfg.General.LogLevel,
		Format:      cfg.General.LogFormat,
	})
	logger.Debug("configuration loaded",
		slog.Int("max_degree", cfg.Engine.MaxDegree),
		slog.String("command", cmd.Name()))
	return nil
}

// emit prints v as indented JSON when --json is set and text otherwise.
func emit(w io.Writer, v interface{}, text string) error {
	if !asJSON {
		_, err := fmt.Fprint(w, text)
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printError(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
}
