// Command server runs the sudoku backend HTTP server.
//
// Configuration is read from CONFIG_PATH (YAML) overridden by environment
// variables; see internal/config. The server shuts down gracefully on
// SIGINT/SIGTERM.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/sudokuhub/backend/internal/app"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx); err != nil {
		log.Fatalf("server: %v", err)
	}
}
