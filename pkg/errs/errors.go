package errs

import (
	"errors"
	"net/http"
)

var (
	ErrInternalServer     = errors.New("Internal server error")
	ErrValidation         = errors.New("Invalid input")
	ErrMalformedID        = errors.New("Invalid id")
	ErrNotFound           = errors.New("Not found")
	ErrDuplicateEmail     = errors.New("Email already registered")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrStoreUnavailable   = errors.New("Database not available")
)

var errorMap = map[error]int{
	ErrInternalServer:     http.StatusInternalServerError,
	ErrValidation:         http.StatusBadRequest,
	ErrMalformedID:        http.StatusBadRequest,
	ErrNotFound:           http.StatusNotFound,
	ErrDuplicateEmail:     http.StatusBadRequest,
	ErrInvalidCredentials: http.StatusUnauthorized,
	ErrStoreUnavailable:   http.StatusInternalServerError,
}

// GetErrorStatusCode maps err (or any sentinel it wraps) to an HTTP status.
// Unknown errors are treated as internal server errors.
func GetErrorStatusCode(err error) int {
	for sentinel, code := range errorMap {
		if errors.Is(err, sentinel) {
			return code
		}
	}
	return errorMap[ErrInternalServer]
}

// Message returns the client-facing text for err. Wrapped validation errors
// keep their field detail; anything unrecognised collapses to the generic
// internal error text so store internals do not leak.
func Message(err error) string {
	if errors.Is(err, ErrValidation) {
		return err.Error()
	}
	for sentinel := range errorMap {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return ErrInternalServer.Error()
}

// ValidationError is a field-level input failure. Only the first failing
// field of a request is reported.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

func NewValidationError(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}
