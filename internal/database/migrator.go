package database

import (
	"context"
	"embed"
	"fmt"
	"io/fs"

	"github.com/deppfellow/mipp-portal/internal/config"
	"github.com/jackc/pgx/v5"
	tern "github.com/jackc/tern/v2/migrate"
	"github.com/rs/zerolog"
)

const versionTable = "schema_version"

//go:embed migrations/*.sql
var migrations embed.FS

// MigrationStatus describes the schema of a database against the embedded
// migrations.
type MigrationStatus struct {
	Current int32
	Latest  int32
}

func (s MigrationStatus) Pending() int32 {
	return s.Latest - s.Current
}

func newMigrator(ctx context.Context, conn *pgx.Conn) (*tern.Migrator, error) {
	m, err := tern.NewMigrator(ctx, conn, versionTable)
	if err != nil {
		return nil, fmt.Errorf("constructing database migrator: %w", err)
	}

	subtree, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("retrieving database migrations subtree: %w", err)
	}

	if err := m.LoadMigrations(subtree); err != nil {
		return nil, fmt.Errorf("loading database migrations: %w", err)
	}
	return m, nil
}

// withMigrator opens a single connection for the duration of fn.
func withMigrator(ctx context.Context, cfg *config.Config, fn func(m *tern.Migrator) error) error {
	conn, err := pgx.Connect(ctx, DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("connecting for migrations: %w", err)
	}
	defer conn.Close(ctx)

	m, err := newMigrator(ctx, conn)
	if err != nil {
		return err
	}
	return fn(m)
}

// Status reports the applied and available schema versions.
func Status(ctx context.Context, cfg *config.Config) (MigrationStatus, error) {
	var status MigrationStatus

	err := withMigrator(ctx, cfg, func(m *tern.Migrator) error {
		current, err := m.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("retrieving current database migration version: %w", err)
		}
		status = MigrationStatus{Current: current, Latest: int32(len(m.Migrations))}
		return nil
	})
	return status, err
}

// Migrate applies every embedded migration not yet recorded in schema_version.
func Migrate(ctx context.Context, logger *zerolog.Logger, cfg *config.Config) error {
	return withMigrator(ctx, cfg, func(m *tern.Migrator) error {
		from, err := m.GetCurrentVersion(ctx)
		if err != nil {
			return fmt.Errorf("retrieving current database migration version: %w", err)
		}

		m.OnStart = func(sequence int32, name, direction, _ string) {
			logger.Info().
				Int32("sequence", sequence).
				Str("migration", name).
				Str("direction", direction).
				Msg("applying migration")
		}

		if err := m.Migrate(ctx); err != nil {
			return fmt.Errorf("applying migrations: %w", err)
		}

		latest := int32(len(m.Migrations))
		if from == latest {
			logger.Info().Int32("version", latest).Msg("database schema up to date")
		} else {
			logger.Info().Int32("from", from).Int32("to", latest).Msg("migrated database schema")
		}
		return nil
	})
}
