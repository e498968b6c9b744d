package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/caet/internal/client/client"
	"github.com/dmitrijs2005/caet/internal/client/models"
	"github.com/dmitrijs2005/caet/internal/common"
)

// getSimpleText, getPassword and getDefaultText are indirections used to
// facilitate testing. They point to interactive input helpers and can be
// swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword
var getDefaultText = GetDefaultText

func (a *App) ask(prompt string) (string, error) {
	return getSimpleText(a.reader, prompt, a.out)
}

// askSecret reads a password and returns it as a string, wiping the buffer.
func (a *App) askSecret(prompt string) (string, error) {
	pw, err := getPassword(prompt, a.out)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(pw)
	return string(pw), nil
}

// Register prompts for the sign-up fields, checks them locally and creates
// the account. It does not log the user in.
func (a *App) Register(ctx context.Context) error {
	var f models.RegisterForm
	var err error

	if f.Name, err = a.ask("Enter name"); err != nil {
		return err
	}
	if f.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if f.Password, err = a.askSecret("Enter password"); err != nil {
		return err
	}
	if f.ConfirmPassword, err = a.askSecret("Confirm password"); err != nil {
		return err
	}
	if f.DOB, err = a.ask("Enter date of birth (YYYY-MM-DD)"); err != nil {
		return err
	}
	if f.Phone, err = a.ask("Enter phone"); err != nil {
		return err
	}

	f.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}

	if err := a.api.Register(ctx, f.Name, f.Email, f.Password, f.DOB, f.Phone); err != nil {
		return err
	}

	printlnFn("Registration successful! You can now log in.")
	return nil
}

func (a *App) Login(ctx context.Context) error {
	var f models.LoginForm
	var err error

	if f.Email, err = a.ask("Enter email"); err != nil {
		return err
	}
	if f.Password, err = a.askSecret("Enter password"); err != nil {
		return err
	}

	f.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}

	if err := a.api.Login(ctx, f.Email, f.Password); err != nil {
		return err
	}

	a.setEmail(f.Email)
	printlnFn("Success!")
	return nil
}

// GoogleLogin sends the pasted identity token. The server signs the user in
// to its shared Google account, so the email shown comes from the profile.
func (a *App) GoogleLogin(ctx context.Context) error {
	token, err := a.ask("Paste Google identity token")
	if err != nil {
		return err
	}

	if err := a.api.GoogleLogin(ctx, token); err != nil {
		return err
	}

	if p, err := a.api.Profile(ctx); err == nil {
		a.setEmail(p.Email)
	} else {
		a.logger.Warn(ctx, "could not load profile after google login", "error", err)
	}

	printlnFn("Google login successful!")
	return nil
}

func (a *App) Forgot(ctx context.Context) error {
	email, err := a.ask("Enter the email of your account")
	if err != nil {
		return err
	}
	if err := models.ValidateEmail(email); err != nil {
		return err
	}

	msg, err := a.api.ForgotPassword(ctx, email)
	if err != nil {
		return err
	}

	printlnFn(msg)
	return nil
}

// Logout forgets the session locally even if the server cannot be reached.
func (a *App) Logout(ctx context.Context) error {
	err := a.api.Logout(ctx)
	a.setEmail("")
	if err != nil && !errors.Is(err, client.ErrUnavailable) {
		return err
	}
	printlnFn("Logged out.")
	return nil
}
