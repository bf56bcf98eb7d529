package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/njchilds90/polyroots/internal/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the tool endpoint and the WebSocket tutorial",
	Long: `Starts the HTTP server.

Endpoints:
  POST /tool     - run one tool, {"tool": "solve", "params": {"expr": "x^2-4"}}
  GET  /schema   - the tool catalogue
  GET  /health   - liveness and open sessions
  GET  /session  - WebSocket tutorial`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config)")
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 0, "listen port (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("host") {
		cfg.Server.Host = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, logger)
	if err := srv.ListenAndServe(ctx, cfg.Address()); err != nil {
		printError("serve", err)
		return err
	}
	return nil
}
