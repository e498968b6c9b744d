// Package common defines shared constants and sentinel errors used across
// the server and the terminal client. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrConflict   = errors.New("email already registered")

	// Service-level errors.
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("invalid credentials")

	// Request validation errors.
	ErrValidation  = errors.New("missing or malformed fields")
	ErrAntiForgery = errors.New("invalid csrf token")

	// Session errors. Expired, forged and malformed tokens all map to
	// ErrInvalidToken; ErrNoSession means no token was presented.
	ErrInvalidToken = errors.New("invalid token")
	ErrNoSession    = errors.New("not authenticated")
)
