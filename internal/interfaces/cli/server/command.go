package server

import (
	"fmt"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/qreserve/qreserve/internal/infrastructure/database"
	"github.com/qreserve/qreserve/internal/infrastructure/migration"
	"github.com/qreserve/qreserve/internal/interfaces/cli/clienv"
	httpRouter "github.com/qreserve/qreserve/internal/interfaces/http"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

var (
	env                string
	configPath         string
	autoMigrate        bool
	migrationStrategy  string
	skipMigrationCheck bool
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "server",
		Short: "Start the HTTP server",
		Long:  `Start the q-reserve HTTP API with the specified configuration.`,
		RunE:  run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", false, "Run database migrations on startup (not recommended for production)")
	cmd.Flags().StringVar(&migrationStrategy, "migration-strategy", "goose", "Strategy used by --auto-migrate (goose, automigrate)")
	cmd.Flags().BoolVar(&skipMigrationCheck, "skip-migration-check", false, "Skip migration status check on startup")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := clienv.Load(env, configPath)
	if err != nil {
		return err
	}

	log.Infow("starting server",
		"environment", env,
		"version", httpRouter.Version,
		"auto_migrate", autoMigrate)

	gin.SetMode(cfg.Server.Mode)
	gin.DefaultWriter = io.Discard
	gin.DebugPrintRouteFunc = func(httpMethod, absolutePath, handlerName string, nuHandlers int) {}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	if err := handleMigrations(cmd, cfg.Database.Driver, log); err != nil {
		return fmt.Errorf("migration handling failed: %w", err)
	}

	container, err := httpRouter.NewContainer(database.Get(), cfg, log)
	if err != nil {
		return fmt.Errorf("failed to build application: %w", err)
	}
	defer container.Shutdown()

	container.SetupRoutes()

	return container.Run(cmd.Context(), cfg.Server.GetAddr())
}

func handleMigrations(cmd *cobra.Command, driver string, log logger.Interface) error {
	ctx := cmd.Context()

	if autoMigrate {
		if env == "production" {
			log.Warnw("auto-migration is enabled in production environment - this is not recommended!")
		}

		log.Infow("running auto-migration", "strategy", migrationStrategy)
		var strategy migration.Strategy
		switch migrationStrategy {
		case "automigrate":
			strategy = migration.NewAutoMigrateStrategy(log)
		case "goose":
			goose, err := migration.NewGooseStrategy(driver, log)
			if err != nil {
				return err
			}
			strategy = goose
		default:
			return fmt.Errorf("unknown migration strategy %q", migrationStrategy)
		}

		if err := strategy.Migrate(ctx, database.Get()); err != nil {
			return fmt.Errorf("auto-migration failed: %w", err)
		}
		log.Infow("auto-migration completed successfully")
		return nil
	}

	if skipMigrationCheck {
		log.Infow("skipping migration check")
		return nil
	}

	goose, err := migration.NewGooseStrategy(driver, log)
	if err != nil {
		log.Warnw("failed to prepare migration check", "error", err)
		return nil
	}
	version, err := goose.GetVersion(ctx, database.Get())
	if err != nil {
		log.Warnw("failed to check migration status", "error", err)
		return nil
	}
	log.Infow("current migration version", "version", version)
	return nil
}
