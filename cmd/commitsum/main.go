package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/codex-k8s/commitsum/internal/cli"
	"github.com/codex-k8s/commitsum/internal/logging"
)

// main is the entry point for the commitsum binary.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := logging.NewLogger(os.Stderr, logging.LevelInfo)
	if err := cli.Execute(ctx, os.Args[1:], logger); err != nil {
		logger.Error("command failed", "error", err)
		stop()
		os.Exit(1)
	}
}
