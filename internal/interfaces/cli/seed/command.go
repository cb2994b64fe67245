package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	seedApp "github.com/qreserve/qreserve/internal/application/seed"
	"github.com/qreserve/qreserve/internal/infrastructure/auth"
	"github.com/qreserve/qreserve/internal/infrastructure/database"
	"github.com/qreserve/qreserve/internal/infrastructure/repository"
	"github.com/qreserve/qreserve/internal/interfaces/cli/clienv"
	"github.com/qreserve/qreserve/internal/shared/db"
)

var (
	env        string
	configPath string
	seedFile   string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the default admin and categories",
		Long: `Create the initial admin account and default categories. Existing rows are
left untouched, so the command is safe to run repeatedly.`,
		RunE: run,
	}

	cmd.Flags().StringVarP(&env, "env", "e", "development", "Environment (development, test, production)")
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")
	cmd.Flags().StringVarP(&seedFile, "file", "f", "", "YAML seed file (default: built-in data)")

	return cmd
}

func run(cmd *cobra.Command, args []string) error {
	cfg, log, err := clienv.Load(env, configPath)
	if err != nil {
		return err
	}

	data := seedApp.DefaultData()
	if seedFile != "" {
		if data, err = seedApp.LoadFile(seedFile); err != nil {
			return err
		}
	}

	if err := database.Init(&cfg.Database); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.Close()

	conn := database.Get()
	seeder := seedApp.NewSeeder(
		repository.NewUserRepository(conn, log),
		repository.NewCategoryRepository(conn, log),
		auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost),
		db.NewTransactionManager(conn),
		log,
	)

	result, err := seeder.Run(cmd.Context(), data)
	if err != nil {
		log.Errorw("seeding failed", "error", err)
		return fmt.Errorf("seeding failed: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin created: %t, categories created: %d\n",
		result.AdminCreated, result.CategoriesCreated)
	return nil
}
