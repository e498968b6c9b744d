// Package users persists account records. Both implementations share one
// contract: Create reports common.ErrConflict for a duplicate email, lookups
// report common.ErrorNotFound, and anything else is a wrapped "db error".
package users

import (
	"context"

	"github.com/dmitrijs2005/caet/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	Update(ctx context.Context, id int64, name, phone, dob string) error
}
