package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrAccountNotFound    = errors.New("account not found")
	ErrMembershipNotFound = errors.New("membership not found")
	ErrUnauthorized       = errors.New("not logged in")
	ErrForbidden          = errors.New("forbidden")
	ErrPersistence        = errors.New("storage failure")
	ErrValidation         = errors.New("validation failed")
)
