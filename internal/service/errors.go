package service

import "errors"

var (
	ErrNotFound          = errors.New("account not found")
	ErrInvalidCredential = errors.New("invalid credentials")
	ErrAlreadyExists     = errors.New("account already exists")
	ErrNoAdminForField   = errors.New("no admin for field")
)
