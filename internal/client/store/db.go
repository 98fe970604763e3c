package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/akimovd/wastepoint/internal/client/migrations"
	"github.com/pressly/goose/v3"
)

// RunMigrations applies the embedded schema migrations to db.
func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// OpenDatabase opens (creating if needed) the local sqlite database at dsn
// and brings its schema up to date.
func OpenDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
