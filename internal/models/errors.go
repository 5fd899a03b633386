package models

import "errors"

// Domain errors. Services wrap these with %w; handlers branch on them with
// errors.Is and translate to HTTP status codes. Everything else surfaces as
// a sanitized 500.
var (
	ErrNotFound           = errors.New("not found")
	ErrEmailInUse         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
