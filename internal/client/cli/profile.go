package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/caet/internal/client/models"
)

func (a *App) Profile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}

	printlnFn(fmt.Sprintf("Name:          %s", p.Name))
	printlnFn(fmt.Sprintf("Email:         %s", p.Email))
	printlnFn(fmt.Sprintf("Date of birth: %s", p.DOB))
	printlnFn(fmt.Sprintf("Phone:         %s", p.Phone))
	return nil
}

// EditProfile loads the current profile, offers each editable field with its
// current value as default and saves the result.
func (a *App) EditProfile(ctx context.Context) error {
	p, err := a.api.Profile(ctx)
	if err != nil {
		return err
	}

	f := models.ProfileForm{}
	if f.Name, err = getDefaultText(a.reader, "Name", p.Name, a.out); err != nil {
		return err
	}
	if f.DOB, err = getDefaultText(a.reader, "Date of birth (YYYY-MM-DD)", p.DOB, a.out); err != nil {
		return err
	}
	if f.Phone, err = getDefaultText(a.reader, "Phone", p.Phone, a.out); err != nil {
		return err
	}

	f.Normalize()
	if err := f.Validate(); err != nil {
		return err
	}

	if err := a.api.UpdateProfile(ctx, f.Name, f.Phone, f.DOB); err != nil {
		return err
	}

	printlnFn("Profile updated!")
	return nil
}
