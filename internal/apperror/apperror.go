// Package apperror defines the domain error taxonomy shared by the service
// and repository layers. HTTP handlers translate these sentinels to status
// codes in exactly one place (handler.writeError).
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrValidation         = errors.New("validation error")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
)

type AppError struct {
	Err     error  // sentinel for errors.Is checks
	Message string // user-facing message, returned verbatim in the error body
	Field   string // optional: field causing a validation error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// Conflict reports a unique-constraint violation (duplicate username or
// class name). Handlers map it to 400, the contract legacy clients expect.
func Conflict(message string) *AppError {
	return &AppError{
		Err:     ErrConflict,
		Message: message,
	}
}

// InvalidCredentials reports a failed username+password match.
func InvalidCredentials(message string) *AppError {
	return &AppError{
		Err:     ErrInvalidCredentials,
		Message: message,
	}
}

// Unauthorized reports a missing or unverifiable bearer token.
// HTTP handlers map this to 401.
func Unauthorized(message string) *AppError {
	return &AppError{
		Err:     ErrUnauthorized,
		Message: message,
	}
}

// Forbidden reports a caller whose role does not permit the operation.
// HTTP handlers map this to 403.
func Forbidden(message string) *AppError {
	return &AppError{
		Err:     ErrForbidden,
		Message: message,
	}
}
