package models

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/dmitrijs2005/caet/internal/common"
)

// Form errors, reported before any request is sent.
var (
	ErrNameRequired     = errors.New("please enter your name")
	ErrInvalidEmail     = errors.New("please enter a valid email")
	ErrPasswordRequired = errors.New("please enter a password")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrDOBRequired      = errors.New("please enter your date of birth (YYYY-MM-DD)")
	ErrTooYoung         = errors.New("you must be at least 13 years old")
	ErrPhoneRequired    = errors.New("please enter a phone number")
	ErrInvalidPhone     = errors.New("please enter a valid phone number (10-11 digits)")
)

const (
	MinPasswordLen = 6
	MinAge         = 13
)

var nonDigits = regexp.MustCompile(`\D`)

// now is a seam for age checks in tests.
var now = time.Now

type LoginForm struct {
	Email    string
	Password string
}

// Normalize trims input and lowercases the email.
func (f *LoginForm) Normalize() {
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Password = strings.TrimSpace(f.Password)
}

func (f LoginForm) Validate() error {
	if !common.IsEmail(f.Email) {
		return ErrInvalidEmail
	}
	if f.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

type RegisterForm struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	DOB             string
	Phone           string
}

func (f *RegisterForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.TrimSpace(f.Email)
	f.DOB = strings.TrimSpace(f.DOB)
	f.Phone = strings.TrimSpace(f.Phone)
}

// Validate checks fields in form order and reports the first problem.
func (f RegisterForm) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if !common.IsEmail(f.Email) {
		return ErrInvalidEmail
	}
	if len(f.Password) < MinPasswordLen {
		return ErrPasswordTooShort
	}
	if f.Password != f.ConfirmPassword {
		return ErrPasswordMismatch
	}
	if err := validateDOB(f.DOB); err != nil {
		return err
	}
	return validatePhone(f.Phone)
}

type ProfileForm struct {
	Name  string
	DOB   string
	Phone string
}

func (f *ProfileForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.DOB = strings.TrimSpace(f.DOB)
	f.Phone = strings.TrimSpace(f.Phone)
}

func (f ProfileForm) Validate() error {
	if f.Name == "" {
		return ErrNameRequired
	}
	if err := validateDOB(f.DOB); err != nil {
		return err
	}
	return validatePhone(f.Phone)
}

// ValidateEmail is the forgot-password form check.
func ValidateEmail(email string) error {
	if !common.IsEmail(strings.TrimSpace(email)) {
		return ErrInvalidEmail
	}
	return nil
}

func validateDOB(dob string) error {
	birth, err := time.Parse(common.DateLayout, dob)
	if err != nil {
		return ErrDOBRequired
	}
	if Age(birth, now()) < MinAge {
		return ErrTooYoung
	}
	return nil
}

func validatePhone(phone string) error {
	if phone == "" {
		return ErrPhoneRequired
	}
	digits := nonDigits.ReplaceAllString(phone, "")
	if len(digits) < 10 || len(digits) > 11 {
		return ErrInvalidPhone
	}
	return nil
}

// Age returns full years between birth and at.
func Age(birth, at time.Time) int {
	age := at.Year() - birth.Year()
	if at.Month() < birth.Month() || (at.Month() == birth.Month() && at.Day() < birth.Day()) {
		age--
	}
	return age
}
