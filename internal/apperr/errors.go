// Package apperr defines the error classes shared by the server layers.
//
// Concrete errors wrap one of the classes with fmt.Errorf("%w: ...") so that
// the HTTP boundary can pick a status code with errors.Is without knowing
// where the error came from.
package apperr

import "errors"

var (
	// ErrValidation marks malformed input (email, password, task fields, ids)
	ErrValidation = errors.New("validation failed")

	// ErrAuthentication marks a missing, invalid, expired or wrong-type token,
	// or a credential mismatch at login
	ErrAuthentication = errors.New("authentication failed")

	// ErrAuthorization marks an authenticated caller acting on a resource it does not own
	ErrAuthorization = errors.New("access denied")

	// ErrDuplicate marks an attempt to create a resource that already exists
	ErrDuplicate = errors.New("resource already exists")

	// ErrNotFound marks a resource that does not exist for the caller
	ErrNotFound = errors.New("resource not found")
)
