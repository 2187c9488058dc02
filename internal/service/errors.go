package service

import (
	"errors"

	"pokemedquest/internal/validation"
)

var (
	ErrUsernameTaken      = errors.New("username already taken")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrForbidden          = errors.New("admin role required")
	ErrCannotDeleteSelf   = errors.New("cannot delete your own account")
	ErrUserNotFound       = errors.New("user not found")
	ErrAvatarExists       = errors.New("user already has an avatar")
	ErrAvatarNotFound     = errors.New("avatar not found")
	ErrStoreFailure       = errors.New("store failure")

	// ErrInvalidScore is a validation.ValidationError, so errors.As matches it too
	ErrInvalidScore error = validation.ValidationError{Field: "score", Message: "score must not be negative"}
)
