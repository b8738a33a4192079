package service

import "errors"

// Validation failures are caught before any network call and carry no
// network side effect.
var (
	ErrFieldRequired    = errors.New("required field is missing")
	ErrPasswordTooShort = errors.New("password is too short")
	ErrInvalidRole      = errors.New("invalid role")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrNotAuthenticated = errors.New("not logged in")
)
