// Package migrations embeds the goose SQL migrations, one directory per
// database dialect.
package migrations

import "embed"

// Migrations holds sqlite/*.sql and postgres/*.sql.
//
//go:embed sqlite/*.sql postgres/*.sql
var Migrations embed.FS

// Directories inside Migrations, per dialect.
const (
	DirSQLite   = "sqlite"
	DirPostgres = "postgres"
)
