package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/dmitrijs2005/caet/internal/server/repositories/users"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func TestNewRepositoryManager(t *testing.T) {
	m, err := NewRepositoryManager(dbx.DriverSQLite)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteRepositoryManager{}, m)

	m, err = NewRepositoryManager(dbx.DriverPostgres)
	require.NoError(t, err)
	assert.IsType(t, &PostgresRepositoryManager{}, m)

	_, err = NewRepositoryManager("mysql")
	require.Error(t, err)
}

func TestFactories_ReturnConcreteRepos(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var _ users.Repository = NewPostgresRepositoryManager().Users(db)
	var _ users.Repository = NewSQLiteRepositoryManager().Users(db)

	assert.IsType(t, &users.PostgresRepository{}, NewPostgresRepositoryManager().Users(db))
	assert.IsType(t, &users.SQLiteRepository{}, NewSQLiteRepositoryManager().Users(db))
}

func TestRunMigrations_UsesDialectDirectory(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	var dirs []string
	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		if len(opts) != 0 {
			return errors.New("unexpected opts")
		}
		dirs = append(dirs, dir)
		return nil
	}
	defer func() { gooseUpContext = orig }()

	require.NoError(t, NewPostgresRepositoryManager().RunMigrations(context.Background(), db))
	require.NoError(t, NewSQLiteRepositoryManager().RunMigrations(context.Background(), db))
	assert.Equal(t, []string{"postgres", "sqlite"}, dirs)
}

func TestRunMigrations_Error(t *testing.T) {
	db, _ := newDB(t)
	defer db.Close()

	orig := gooseUpContext
	gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
		return errors.New("boom")
	}
	defer func() { gooseUpContext = orig }()

	m := &PostgresRepositoryManager{}
	if err := m.RunMigrations(context.Background(), db); err == nil || err.Error() != "boom" {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestSQLiteRunMigrations_AppliesSchema(t *testing.T) {
	db, err := dbx.Open(context.Background(), dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	m := NewSQLiteRepositoryManager()
	require.NoError(t, m.RunMigrations(context.Background(), db))
	// second run is a no-op
	require.NoError(t, m.RunMigrations(context.Background(), db))

	u, err := m.Users(db).Create(context.Background(), &models.User{
		Name: "Ana", Email: "ana@x.com", PasswordHash: "h", DOB: "2000-01-01", Phone: "123",
	})
	require.NoError(t, err)
	assert.Positive(t, u.ID)
}
