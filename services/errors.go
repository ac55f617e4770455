package services

import "errors"

// Errors shared by the services and mapped to HTTP statuses in handlers.
var (
	ErrNotFound = errors.New("requested resource not found")

	ErrValidationFailed = errors.New("validation failed")
	ErrPasswordTooShort = errors.New("password should be at least 6 characters")
	ErrFullNameRequired = errors.New("full name is required")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrInvalidRole      = errors.New("role must be captain or player")

	ErrAuthenticationFailed     = errors.New("authentication failed")
	ErrForbiddenOperation       = errors.New("operation not allowed for the current user")
	ErrConfirmationTokenInvalid = errors.New("invalid or expired confirmation token")

	ErrMatchNotFound  = errors.New("match not found")
	ErrPlayerNotFound = errors.New("player not found")

	ErrMediaStorageDisabled = errors.New("file uploads are not configured")
)
