package user

import "ecomcart-be/internal/apperr"

var (
	// -- Validation & Input --
	ErrMissingFields    = apperr.Validation("Please provide name, email and password")
	ErrMissingLogin     = apperr.Validation("Please provide email and password")
	ErrInvalidEmail     = apperr.Validation("Please provide a valid email address")
	ErrPasswordTooShort = apperr.Validation("Password must be at least 6 characters")
	ErrEmptyName        = apperr.Validation("Name cannot be empty")
	ErrEmailExists      = apperr.Validation("User already exists")

	// -- Authentication --
	ErrInvalidCredentials = apperr.Unauthenticated("Invalid email or password")
	ErrUserInactive       = apperr.Unauthenticated("User account is deactivated")
	ErrNoToken            = apperr.Unauthenticated("Not authorized. No token provided. Please login.")
	ErrTokenInvalid       = apperr.Unauthenticated("Invalid token. Please login again.")
	ErrTokenExpired       = apperr.Unauthenticated("Token expired. Please login again.")
	ErrTokenUserNotFound  = apperr.Unauthenticated("User not found. Please login again.")

	// -- Resource State --
	ErrUserNotFound = apperr.NotFound("User not found")
)

const (
	minPasswordLen        = 6
	emailUniqueConstraint = "users_email_key"
)
