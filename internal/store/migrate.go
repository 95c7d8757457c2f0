package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Migrations returns the embedded goose migrations.
func Migrations() fs.FS {
	sub, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		panic(err)
	}
	return sub
}

// MigrationReport summarises one applied migration.
type MigrationReport struct {
	Version int64
	Path    string
	Empty   bool
}

// Migrate applies every pending migration.
func Migrate(ctx context.Context, db *sql.DB) ([]MigrationReport, error) {
	provider, err := goose.NewProvider(goose.DialectPostgres, db, Migrations())
	if err != nil {
		return nil, fmt.Errorf("store: migrations: %w", err)
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: migrate up: %w", err)
	}
	reports := make([]MigrationReport, 0, len(results))
	for _, res := range results {
		if res == nil || res.Source == nil {
			continue
		}
		reports = append(reports, MigrationReport{
			Version: res.Source.Version,
			Path:    res.Source.Path,
			Empty:   res.Empty,
		})
	}
	return reports, nil
}
