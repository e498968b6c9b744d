// Package services contains server-side business logic. UserService covers
// registration, password and third-party login, session resolution and the
// profile; FileService covers the upload store.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/caet/internal/common"
	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/logging"
	"github.com/dmitrijs2005/caet/internal/server/auth"
	"github.com/dmitrijs2005/caet/internal/server/config"
	"github.com/dmitrijs2005/caet/internal/server/models"
	"github.com/dmitrijs2005/caet/internal/server/repositories/repomanager"
)

// ExternalAuthMarker is stored as the password digest of the third-party
// placeholder account. It never parses as a digest, so password login to
// that account always fails.
const ExternalAuthMarker = "google-auth"

// RegisterInput carries the registration form.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	DOB      string
	Phone    string
}

// ProfileInput carries the editable profile fields. Email is not editable.
type ProfileInput struct {
	Name  string
	Phone string
	DOB   string
}

type UserService struct {
	db                      *sql.DB
	repomanager             repomanager.RepositoryManager
	logger                  logging.Logger
	jwtSecret               []byte
	sessionValidityDuration time.Duration
	argon                   auth.Argon2Params
	placeholder             models.User
}

// NewUserService constructs a UserService using repositories and server config.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		db:                      db,
		repomanager:             m,
		logger:                  logger,
		jwtSecret:               []byte(cfg.SecretKey),
		sessionValidityDuration: cfg.SessionTokenValidityDuration,
		argon:                   auth.DefaultArgon2Params(),
		placeholder: models.User{
			Name:         cfg.PlaceholderName,
			Email:        cfg.PlaceholderEmail,
			PasswordHash: ExternalAuthMarker,
			DOB:          cfg.PlaceholderDOB,
			Phone:        cfg.PlaceholderPhone,
		},
	}
}

// Register validates the form and stores a new user with a hashed password.
// A taken email yields common.ErrConflict and leaves the existing row as is.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password, s.argon)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		DOB:          in.DOB,
		Phone:        in.Phone,
	}

	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("error creating user: %w", err)
	}
	return u, nil
}

// Login verifies email and password and mints a session token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if err := requireFields("email", email, "password", password); err != nil {
		return "", err
	}

	user, err := s.repomanager.Users(s.db).GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", common.ErrorUnauthorized
		}
		return "", fmt.Errorf("error searching user: %w", err)
	}

	ok, err := auth.VerifyPassword(password, user.PasswordHash)
	if err != nil || !ok {
		return "", common.ErrorUnauthorized
	}

	return s.mintSession(user.ID)
}

// ExternalLogin signs the caller in as the shared placeholder account,
// creating it on first use. The external token is NOT verified.
func (s *UserService) ExternalLogin(ctx context.Context, externalToken string) (string, error) {
	s.logger.Warn(ctx, "third-party login accepted without token verification",
		"email", s.placeholder.Email, "token_present", externalToken != "")

	var userID int64
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		u, err := repo.GetUserByEmail(ctx, s.placeholder.Email)
		if err == nil {
			userID = u.ID
			return nil
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		p := s.placeholder
		u, err = repo.Create(ctx, &p)
		if err != nil {
			return err
		}
		s.logger.Info(ctx, "placeholder account created", "id", u.ID)
		userID = u.ID
		return nil
	})
	if errors.Is(err, common.ErrConflict) {
		// A concurrent first login created it; the failed tx is gone, read it again.
		var u *models.User
		u, err = s.repomanager.Users(s.db).GetUserByEmail(ctx, s.placeholder.Email)
		if err == nil {
			userID = u.ID
		}
	}
	if err != nil {
		return "", fmt.Errorf("error resolving placeholder account: %w", err)
	}

	return s.mintSession(userID)
}

// Authenticate resolves a presented session token to a user id.
func (s *UserService) Authenticate(token string) (int64, error) {
	if token == "" {
		return 0, common.ErrNoSession
	}
	return auth.GetUserIDFromToken(token, s.jwtSecret)
}

func (s *UserService) Profile(ctx context.Context, userID int64) (*models.Profile, error) {
	u, err := s.repomanager.Users(s.db).GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error loading profile: %w", err)
	}
	p := u.Profile()
	return &p, nil
}

// UpdateProfile rewrites name, phone and dob of userID only.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, in ProfileInput) error {
	if err := requireFields("name", in.Name, "phone", in.Phone, "dob", in.DOB); err != nil {
		return err
	}
	if !common.IsDate(in.DOB) {
		return fmt.Errorf("%w: dob must be YYYY-MM-DD", common.ErrValidation)
	}

	if err := s.repomanager.Users(s.db).Update(ctx, userID, in.Name, in.Phone, in.DOB); err != nil {
		return fmt.Errorf("error updating profile: %w", err)
	}
	return nil
}

// ForgotPassword only acknowledges the request; no mail is sent and the
// answer does not depend on whether the email is registered.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	if err := requireFields("email", email); err != nil {
		return err
	}
	s.logger.Info(ctx, "password recovery requested", "email", email)
	return nil
}

func (s *UserService) mintSession(userID int64) (string, error) {
	token, err := auth.GenerateToken(userID, s.jwtSecret, s.sessionValidityDuration)
	if err != nil {
		return "", fmt.Errorf("error signing session token: %w", err)
	}
	return token, nil
}

func validateRegister(in RegisterInput) error {
	if err := requireFields(
		"name", in.Name,
		"email", in.Email,
		"password", in.Password,
		"dob", in.DOB,
		"phone", in.Phone,
	); err != nil {
		return err
	}
	if !common.IsEmail(in.Email) {
		return fmt.Errorf("%w: malformed email", common.ErrValidation)
	}
	if !common.IsDate(in.DOB) {
		return fmt.Errorf("%w: dob must be YYYY-MM-DD", common.ErrValidation)
	}
	return nil
}

// requireFields takes name/value pairs and reports every empty value.
func requireFields(pairs ...string) error {
	var missing []string
	for i := 0; i+1 < len(pairs); i += 2 {
		if strings.TrimSpace(pairs[i+1]) == "" {
			missing = append(missing, pairs[i])
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", common.ErrValidation, strings.Join(missing, ", "))
	}
	return nil
}
