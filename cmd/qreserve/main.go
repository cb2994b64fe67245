package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/qreserve/qreserve/internal/interfaces/cli/migrate"
	"github.com/qreserve/qreserve/internal/interfaces/cli/seed"
	"github.com/qreserve/qreserve/internal/interfaces/cli/server"
	"github.com/qreserve/qreserve/internal/interfaces/cli/worker"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "qreserve",
		Short:        "q-reserve - helpdesk ticketing backend",
		Long:         `q-reserve serves the helpdesk API and ships the migration, seeding and notification worker tools it needs.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		seed.NewCommand(),
		worker.NewCommand(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
