// Package migration applies the database schema, either from the embedded
// goose scripts or with gorm AutoMigrate for development and tests.
package migration

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"github.com/qreserve/qreserve/internal/infrastructure/persistence/models"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

//go:embed scripts/*/*.sql
var scripts embed.FS

// Strategy brings the schema up to date.
type Strategy interface {
	Migrate(ctx context.Context, db *gorm.DB) error
	GetName() string
}

// GooseStrategy runs the versioned scripts embedded under scripts/<driver>.
type GooseStrategy struct {
	driver string
	logger logger.Interface
}

var _ Strategy = (*GooseStrategy)(nil)

func NewGooseStrategy(driver string, log logger.Interface) (*GooseStrategy, error) {
	driver = strings.ToLower(driver)
	if driver == "" {
		driver = "postgres"
	}
	if _, err := gooseDialect(driver); err != nil {
		return nil, err
	}
	return &GooseStrategy{
		driver: driver,
		logger: log.With("component", "migration.goose"),
	}, nil
}

func gooseDialect(driver string) (goose.Dialect, error) {
	switch driver {
	case "postgres":
		return goose.DialectPostgres, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("no migration scripts for database driver %q", driver)
	}
}

func (s *GooseStrategy) GetName() string {
	return "goose"
}

func (s *GooseStrategy) dir() string {
	return "scripts/" + s.driver
}

func (s *GooseStrategy) prepare(db *gorm.DB) (*goose.Provider, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	dialect, err := gooseDialect(s.driver)
	if err != nil {
		return nil, err
	}
	return s.newProvider(dialect, sqlDB)
}

func (s *GooseStrategy) newProvider(dialect goose.Dialect, db *sql.DB) (*goose.Provider, error) {
	sub, err := fs.Sub(scripts, s.dir())
	if err != nil {
		return nil, fmt.Errorf("failed to open migration scripts: %w", err)
	}
	provider, err := goose.NewProvider(dialect, db, sub)
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}
	return provider, nil
}

func (s *GooseStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	provider, err := s.prepare(db)
	if err != nil {
		return err
	}

	currentVersion, err := provider.GetDBVersion(ctx)
	if err != nil {
		s.logger.Errorw("failed to get current version", "error", err)
		return fmt.Errorf("failed to get current version: %w", err)
	}
	s.logger.Infow("starting goose migration", "driver", s.driver, "version", currentVersion)

	results, err := provider.Up(ctx)
	if err != nil {
		s.logger.Errorw("migration failed", "error", err)
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	finalVersion, err := provider.GetDBVersion(ctx)
	if err != nil {
		return fmt.Errorf("failed to get final version: %w", err)
	}

	s.logger.Infow("migration completed successfully",
		"from_version", currentVersion,
		"to_version", finalVersion,
		"applied", len(results),
	)
	return nil
}

// MigrateDown rolls back steps migrations, stopping early at version 0.
func (s *GooseStrategy) MigrateDown(ctx context.Context, db *gorm.DB, steps int) error {
	provider, err := s.prepare(db)
	if err != nil {
		return err
	}

	s.logger.Infow("starting down migration", "steps", steps)
	for i := 0; i < steps; i++ {
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return fmt.Errorf("failed to get current version: %w", err)
		}
		if version == 0 {
			break
		}
		if _, err := provider.Down(ctx); err != nil {
			s.logger.Errorw("down migration failed", "error", err, "version", version)
			return fmt.Errorf("failed to run down migration: %w", err)
		}
	}
	s.logger.Infow("down migration completed successfully")
	return nil
}

func (s *GooseStrategy) GetVersion(ctx context.Context, db *gorm.DB) (int64, error) {
	provider, err := s.prepare(db)
	if err != nil {
		return 0, err
	}
	return provider.GetDBVersion(ctx)
}

// MigrationStatus is one script and whether it has been applied.
type MigrationStatus struct {
	Version int64
	Source  string
	Applied bool
}

func (s *GooseStrategy) Status(ctx context.Context, db *gorm.DB) ([]MigrationStatus, error) {
	provider, err := s.prepare(db)
	if err != nil {
		return nil, err
	}
	results, err := provider.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get migration status: %w", err)
	}

	statuses := make([]MigrationStatus, 0, len(results))
	for _, r := range results {
		statuses = append(statuses, MigrationStatus{
			Version: r.Source.Version,
			Source:  r.Source.Path,
			Applied: r.State == goose.StateApplied,
		})
	}
	return statuses, nil
}

// AutoMigrateStrategy creates tables straight from the gorm models.
type AutoMigrateStrategy struct {
	logger logger.Interface
}

var _ Strategy = (*AutoMigrateStrategy)(nil)

func NewAutoMigrateStrategy(log logger.Interface) *AutoMigrateStrategy {
	return &AutoMigrateStrategy{logger: log.With("component", "migration.automigrate")}
}

func (s *AutoMigrateStrategy) GetName() string {
	return "gorm_automigrate"
}

func (s *AutoMigrateStrategy) Migrate(ctx context.Context, db *gorm.DB) error {
	all := models.All()
	s.logger.Infow("starting auto migration", "models_count", len(all))
	if err := db.WithContext(ctx).AutoMigrate(all...); err != nil {
		s.logger.Errorw("auto migration failed", "error", err)
		return fmt.Errorf("auto migration failed: %w", err)
	}
	return nil
}
