// Package migrator applies embedded goose SQL migrations.
package migrator

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"

	"github.com/magmaminds/admissions/pkg/logger"
)

// NewProvider returns a goose provider for the migrations in files.
func NewProvider(db *sql.DB, files fs.FS) (*goose.Provider, error) {
	p, err := goose.NewProvider(goose.DialectPostgres, db, files)
	if err != nil {
		return nil, fmt.Errorf("migrator: new provider: %w", err)
	}
	return p, nil
}

// Up applies every pending migration in files and logs each one applied.
func Up(ctx context.Context, db *sql.DB, files fs.FS, log logger.Logger) error {
	p, err := NewProvider(db, files)
	if err != nil {
		return err
	}

	results, err := p.Up(ctx)
	for _, r := range results {
		log.InfoContext(ctx, "migration applied",
			"version", r.Source.Version,
			"file", r.Source.Path,
			"duration", r.Duration,
		)
	}
	if err != nil {
		return fmt.Errorf("migrator: up: %w", err)
	}
	if len(results) == 0 {
		log.InfoContext(ctx, "schema up to date")
	}
	return nil
}
