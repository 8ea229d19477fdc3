package errors

import (
	"errors"
	"fmt"
)

// Common error types for the clinic API client
var (
	// Response categories, matched by apiclient.APIError.Is
	ErrBadRequest       = errors.New("bad request")
	ErrUnauthorized     = errors.New("unauthorized")
	ErrPermissionDenied = errors.New("permission denied")
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation error")
	ErrTooManyRequests  = errors.New("too many requests")
	ErrServer           = errors.New("server error")

	// Token / session errors
	ErrRefreshFailed  = errors.New("token refresh failed")
	ErrRefreshTimeout = errors.New("token refresh timed out")
	ErrNoSession      = errors.New("no active session")
	ErrInvalidToken   = errors.New("invalid token")
	ErrNoUserID       = errors.New("user id not present in session")

	// Input errors, raised before anything is sent
	ErrInvalidRequest = errors.New("invalid request")
	ErrWeakPassword   = errors.New("password does not meet strength requirements")
	ErrInvalidRole    = errors.New("invalid role")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join returns an error that wraps the given errors
func Join(errs ...error) error {
	return errors.Join(errs...)
}
