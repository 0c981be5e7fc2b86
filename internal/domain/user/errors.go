package user

import "errors"

var (
	ErrRoleMissing             = errors.New("user role is missing")
	ErrUnknownRole             = errors.New("user role is not recognised")
	ErrInsufficientPermissions = errors.New("insufficient permissions")

	ErrInvalidToken    = errors.New("invalid or expired token")
	ErrMissingIdentity = errors.New("authenticated identity is missing")
)
