// Package apperror defines the error kinds the application distinguishes.
//
// ERROR KINDS:
// Every failure a client can see falls into one of three buckets:
//   - ErrValidation → the request was malformed (400)
//   - ErrNotFound   → the referenced record does not exist (404)
//   - anything else → the store failed; reported as a generic 500
//
// Sentinels are wrapped inside *AppError so callers can use errors.Is() for
// the kind and errors.As() for the human-readable message.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

type AppError struct {
	Err     error  // sentinel kind
	Message string // client-facing message
	Field   string // optional: input field that failed validation
	ID      string // optional: identifier that could not be resolved
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFound reports a missing record. The message deliberately leaves the id
// out ("User not found") since clients match on it.
func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found", resource),
		ID:      id,
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}
