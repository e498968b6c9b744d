package client

import (
	"context"
	"io"

	"github.com/dmitrijs2005/caet/internal/client/models"
)

// Upload is one local file handed to Client.Upload.
type Upload struct {
	Name string
	Body io.Reader
}

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, name, email, password, dob, phone string) error
	Login(ctx context.Context, email, password string) error
	GoogleLogin(ctx context.Context, token string) error
	Logout(ctx context.Context) error
	Profile(ctx context.Context) (*models.Profile, error)
	UpdateProfile(ctx context.Context, name, phone, dob string) error
	Files(ctx context.Context) ([]models.FileInfo, error)
	Upload(ctx context.Context, files []Upload) error
	ForgotPassword(ctx context.Context, email string) (string, error)
	LoggedIn() bool
}
