package services

import "errors"

// Sentinel errors translated to HTTP statuses at the handler boundary.
var (
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidOwner       = errors.New("invalid store owner")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrWrongPassword      = errors.New("current password is incorrect")
)
