// Package repomanager vends repository implementations for the configured
// SQL driver and applies the embedded schema migrations (via goose).
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/server/migrations"
	"github.com/dmitrijs2005/caet/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return err
	}
	return nil
}

// NewRepositoryManager picks the manager matching a dbx driver name.
func NewRepositoryManager(driver string) (RepositoryManager, error) {
	switch driver {
	case dbx.DriverSQLite:
		return NewSQLiteRepositoryManager(), nil
	case dbx.DriverPostgres:
		return NewPostgresRepositoryManager(), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
