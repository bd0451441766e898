// Command server runs the shuffle server on its own. The configuration file
// is taken from MR_CONFIG, defaulting to the compiled-in configuration.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/cmd/mr/subcommands/serve"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/config"
	"github.com/ShauryaManiTripathi/IIITG-Cloud-Computing/internal/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	path := os.Getenv("MR_CONFIG")

	cfg, err := config.Load(ctx, path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if err := serve.Run(ctx, log, path, cfg, serve.Flags{Job: os.Getenv("MR_JOB")}); err != nil {
		log.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}
