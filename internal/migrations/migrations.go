package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	"github.com/pressly/goose/v3/database"
	"github.com/uptrace/bun"

	"github.com/pakbaz/todolist/models"
)

//go:embed sql/sqlite/*.sql sql/postgres/*.sql sql/mysql/*.sql
var sqlFS embed.FS

// MigrationOperation represents the type of migration operation
type MigrationOperation int

const (
	MigrateUpOperation MigrationOperation = iota
	MigrateDownOperation
)

// migrationRunner encapsulates the common migration execution logic
type migrationRunner struct {
	logger   models.Logger
	provider *goose.Provider
}

func newMigrationRunner(db bun.IDB, dbProvider string, verbose bool) (*migrationRunner, error) {
	subFS, err := fs.Sub(sqlFS, "sql/"+dbProvider)
	if err != nil {
		return nil, fmt.Errorf("failed to create sub filesystem: %w", err)
	}

	dialect, err := getDialect(dbProvider)
	if err != nil {
		return nil, err
	}

	sqlDB := getSQLDB(db)
	if sqlDB == nil {
		return nil, fmt.Errorf("failed to get *sql.DB from bun.IDB")
	}

	providerInstance, err := goose.NewProvider(dialect, sqlDB, subFS, goose.WithVerbose(verbose))
	if err != nil {
		return nil, fmt.Errorf("failed to create goose provider: %w", err)
	}

	return &migrationRunner{
		provider: providerInstance,
	}, nil
}

// run executes the migration operation and logs results
func (r *migrationRunner) run(ctx context.Context, op MigrationOperation) error {
	var results []*goose.MigrationResult
	var err error

	switch op {
	case MigrateUpOperation:
		results, err = r.provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		for _, result := range results {
			r.logMigration(result, "Migrated")
		}
	case MigrateDownOperation:
		results, err = r.provider.DownTo(ctx, 0)
		if err != nil {
			return fmt.Errorf("rollback failed: %w", err)
		}
		for _, result := range results {
			r.logMigration(result, "Rolled back")
		}
	}

	return nil
}

func (r *migrationRunner) logMigration(result *goose.MigrationResult, action string) {
	if r.logger != nil {
		r.logger.Info(fmt.Sprintf("%s: %s (%s)", action, result.Source.Path, result.Duration))
	}
}

// Run applies all pending migrations for the configured database provider,
// creating the todos table and its indexes on first start.
func Run(ctx context.Context, logger models.Logger, logLevel string, dbProvider string, db bun.IDB) error {
	runner, err := newMigrationRunner(db, dbProvider, logLevel == "debug")
	if err != nil {
		return err
	}
	runner.logger = logger

	return runner.run(ctx, MigrateUpOperation)
}

// Drop rolls back all applied migrations.
func Drop(ctx context.Context, logger models.Logger, dbProvider string, db bun.IDB) error {
	runner, err := newMigrationRunner(db, dbProvider, false)
	if err != nil {
		return err
	}
	runner.logger = logger

	return runner.run(ctx, MigrateDownOperation)
}

// getDialect maps provider string to goose dialect
func getDialect(provider string) (database.Dialect, error) {
	switch provider {
	case "postgres":
		return goose.DialectPostgres, nil
	case "mysql":
		return goose.DialectMySQL, nil
	case "sqlite":
		return goose.DialectSQLite3, nil
	default:
		return "", fmt.Errorf("unsupported database provider: %s", provider)
	}
}

// getSQLDB extracts *sql.DB from bun.IDB
func getSQLDB(db bun.IDB) *sql.DB {
	switch d := db.(type) {
	case *bun.DB:
		return d.DB
	default:
		return nil
	}
}
