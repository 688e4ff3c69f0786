package tmdb

import (
	"errors"
	"fmt"
)

// ErrorType classifies catalog failures.
type ErrorType string

const (
	// ErrorTypeUnavailable covers transport failures and non-2xx replies.
	ErrorTypeUnavailable ErrorType = "CATALOG_UNAVAILABLE"
	// ErrorTypeMalformed covers bodies that do not decode or lack required fields.
	ErrorTypeMalformed ErrorType = "CATALOG_MALFORMED"
)

// CatalogError is returned by every Client lookup.
type CatalogError struct {
	Type       ErrorType
	Op         string
	StatusCode int
	Err        error
}

// Error returns the error message
func (e *CatalogError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Type, e.Op)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(" (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the wrapped error
func (e *CatalogError) Unwrap() error {
	return e.Err
}

func unavailable(op string, status int, err error) error {
	return &CatalogError{Type: ErrorTypeUnavailable, Op: op, StatusCode: status, Err: err}
}

func malformed(op string, err error) error {
	return &CatalogError{Type: ErrorTypeMalformed, Op: op, Err: err}
}

// IsUnavailable checks if err is a transport or status failure.
func IsUnavailable(err error) bool {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		return catErr.Type == ErrorTypeUnavailable
	}
	return false
}

// IsMalformed checks if err is a decode or missing-field failure.
func IsMalformed(err error) bool {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		return catErr.Type == ErrorTypeMalformed
	}
	return false
}

// StatusCode returns the upstream HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var catErr *CatalogError
	if errors.As(err, &catErr) {
		return catErr.StatusCode
	}
	return 0
}
