package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-maze/internal/platform/web"
)

var (
	flagHTTPAddr    string
	flagDefaultPack string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser version over HTTP",
	Long: `Serve the maze to browsers. Each WebSocket connection plays its own
session; finished runs are saved to the scores database.

The page accepts ?pack=<id> and ?player=<name> query parameters.

Endpoints:
  GET /        - Game page
  GET /ws      - WebSocket endpoint
  GET /health  - Health check

Examples:
  maze serve
  maze serve --http :9000 --pack custom --levels ./my-levels`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", env.HTTPAddr, "HTTP listen address")
	serveCmd.Flags().StringVar(&flagDefaultPack, "pack", "classic", "Pack used when the page does not ask for one")
}

func runServe(_ *cobra.Command, _ []string) {
	requirePack(flagDefaultPack)

	logger := newLogger("maze-web")
	_, rules := loadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore(ctx, logger)
	if store != nil {
		defer store.Close()
	}

	srv := web.NewServer(web.Config{
		Addr:  flagHTTPAddr,
		Pack:  flagDefaultPack,
		Rules: rules,
	}, store, logger)

	if err := srv.ListenAndServe(ctx); err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
