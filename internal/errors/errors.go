package errors

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

var (
	// Authentication handshake errors
	ErrMissingAuthorizationCode = stderrors.New("authorization code not provided")
	ErrCodeExchangeFailure      = stderrors.New("authorization code exchange failed")
	ErrTokenAcquisitionFailure  = stderrors.New("access token not received from backend")
	ErrMissingAuthorizationURL  = stderrors.New("authorization url not received from backend")

	// Session errors
	ErrUnauthorized = stderrors.New("unauthorized")

	// Bootstrap errors
	ErrBootstrapFetchFailure = stderrors.New("workspace bootstrap fetch failed")
	ErrWorkspaceNotFound     = stderrors.New("workspace not found")

	// General errors
	ErrInvalidConfig = stderrors.New("invalid configuration")
)

// Wrap annotates err with a message and a stack trace. Wrap(nil) is nil.
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf is Wrap with a format string.
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return stderrors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return stderrors.As(err, target)
}
