package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/qreserve/qreserve/internal/interfaces/cli/worker"
)

// Standalone notification worker, equivalent to "qreserve worker".
func main() {
	cmd := worker.NewCommand()
	cmd.SilenceUsage = true

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
