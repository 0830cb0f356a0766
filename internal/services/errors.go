package services

import "errors"

// Sentinel errors returned by the services. Handlers map these onto HTTP
// status codes with errors.Is; the first violation found wins.
var (
	ErrNotFound           = errors.New("not found")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotHost            = errors.New("account is not a host account")
	ErrInvalidRole        = errors.New("invalid role specified")
	ErrMissingFields      = errors.New("missing required fields")
	ErrInvalidDateRange   = errors.New("invalid date range")
	ErrCapacityExceeded   = errors.New("guest count exceeds property capacity")
)
