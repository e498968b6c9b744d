package users

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/server/migrations"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func newSQLiteRepo(t *testing.T) (*SQLiteRepository, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	ddl, err := migrations.Migrations.ReadFile("sqlite/00001_create_users.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(ddl))
	require.NoError(t, err)

	return NewSQLiteRepository(db), db
}

func TestSQLiteRepository_CreateAndGet(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	u, err := repo.Create(ctx, ana())
	require.NoError(t, err)
	assert.Positive(t, u.ID)

	byEmail, err := repo.GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, u, byEmail)

	byID, err := repo.GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "2000-01-01", byID.DOB)
	assert.Equal(t, "digest", byID.PasswordHash)
}

func TestSQLiteRepository_DuplicateEmailLeavesFirstUntouched(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	first, err := repo.Create(ctx, ana())
	require.NoError(t, err)

	dup := &models.User{Name: "Impostor", Email: "ana@x.com", PasswordHash: "other", DOB: "1990-01-01", Phone: "000"}
	_, err = repo.Create(ctx, dup)
	require.True(t, errors.Is(err, common.ErrConflict), "got %v", err)

	got, err := repo.GetUserByEmail(ctx, "ana@x.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "digest", got.PasswordHash)
}

func TestSQLiteRepository_NotFound(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	_, err := repo.GetUserByEmail(ctx, "ghost@x.com")
	assert.ErrorIs(t, err, common.ErrorNotFound)

	_, err = repo.GetUserByID(ctx, 99)
	assert.ErrorIs(t, err, common.ErrorNotFound)

	err = repo.Update(ctx, 99, "n", "p", "2000-01-01")
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestSQLiteRepository_UpdateTouchesOnlyTarget(t *testing.T) {
	repo, _ := newSQLiteRepo(t)
	ctx := context.Background()

	a, err := repo.Create(ctx, ana())
	require.NoError(t, err)
	b, err := repo.Create(ctx, &models.User{Name: "Bo", Email: "bo@x.com", PasswordHash: "d", DOB: "1999-12-31", Phone: "555"})
	require.NoError(t, err)

	require.NoError(t, repo.Update(ctx, a.ID, "Ana Maria", "777", "2000-02-02"))

	gotA, err := repo.GetUserByID(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", gotA.Name)
	assert.Equal(t, "777", gotA.Phone)
	assert.Equal(t, "2000-02-02", gotA.DOB)
	assert.Equal(t, "ana@x.com", gotA.Email)

	gotB, err := repo.GetUserByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b, gotB)
}

func TestSQLiteRepository_ClosedDB(t *testing.T) {
	repo, db := newSQLiteRepo(t)
	require.NoError(t, db.Close())

	_, err := repo.Create(context.Background(), ana())
	require.Error(t, err)
	assert.NotErrorIs(t, err, common.ErrConflict)
	assert.Contains(t, err.Error(), "db error")
}
