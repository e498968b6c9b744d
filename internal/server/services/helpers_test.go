package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/logging"
	"github.com/dmitrijs2005/caet/internal/server/auth"
	"github.com/dmitrijs2005/caet/internal/server/config"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/dmitrijs2005/caet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/caet/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var cheapArgon = auth.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLen: 16, KeyLen: 32}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.SecretKey = "k"
	return cfg
}

// newSQLiteUserService wires a UserService over a migrated in-memory SQLite.
func newSQLiteUserService(t *testing.T) (*UserService, *sql.DB) {
	t.Helper()
	ctx := context.Background()

	db, err := dbx.Open(ctx, dbx.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rm := repomanager.NewSQLiteRepositoryManager()
	require.NoError(t, rm.RunMigrations(ctx, db))

	s := NewUserService(db, rm, testConfig(), logging.Discard())
	s.argon = cheapArgon
	return s, db
}

// fakeRepoManager hands out the same fake repository for every DBTX.
type fakeRepoManager struct {
	repo users.Repository
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository {
	return m.repo
}

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	updateErr  error
	updatedID  int64
	updateArgs []string
	calls      int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	f.calls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) Update(ctx context.Context, id int64, name, phone, dob string) error {
	f.calls++
	f.updatedID = id
	f.updateArgs = []string{name, phone, dob}
	return f.updateErr
}

func newFakeUserService(repo *fakeUsersRepo) *UserService {
	s := NewUserService(nil, &fakeRepoManager{repo: repo}, testConfig(), logging.Discard())
	s.argon = cheapArgon
	return s
}
