// Command tasklist is a terminal client for a task list server.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/BuzzLyutic/tasklist-sync/internal/cli"
	"github.com/BuzzLyutic/tasklist-sync/internal/config"
	"github.com/BuzzLyutic/tasklist-sync/internal/logging"
)

func main() {
	cfg := config.Load()
	if os.Getenv("LOG_LEVEL") == "" {
		// keep the terminal quiet unless asked
		cfg.LogLevel = "warn"
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitUserError)
	}

	// Interrupt cancels the in-flight request or ends watch.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	code := cli.NewDispatcher(cfg, logger).Run(ctx, os.Args[1:], os.Stdout, os.Stderr)

	stop()
	logger.Sync()
	os.Exit(code)
}
