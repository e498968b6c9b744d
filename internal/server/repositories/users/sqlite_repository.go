package users

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/server/models"
)

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	query := `INSERT INTO users (name, email, password_hash, dob, phone) VALUES (?, ?, ?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Name, user.Email, user.PasswordHash, user.DOB, user.Phone)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrConflict
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	user.ID = id

	return user, nil
}

func (r *SQLiteRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, dob, phone FROM users WHERE email = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *SQLiteRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT id, name, email, password_hash, dob, phone FROM users WHERE id = ?`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteRepository) Update(ctx context.Context, id int64, name, phone, dob string) error {
	query := `UPDATE users SET name = ?, phone = ?, dob = ? WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, name, phone, dob, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(result)
}
