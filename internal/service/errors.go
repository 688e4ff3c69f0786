package service

import (
	"errors"
	"fmt"
)

// ErrorType classifies aggregation failures that end a screen load.
type ErrorType string

const (
	ErrorTypeHomeUnavailable    ErrorType = "HOME_UNAVAILABLE"
	ErrorTypeDetailUnavailable  ErrorType = "DETAIL_UNAVAILABLE"
	ErrorTypeListingUnavailable ErrorType = "LISTING_UNAVAILABLE"
)

// AggregateError wraps the lookup failure that made a screen unavailable.
type AggregateError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error returns the error message
func (e *AggregateError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error
func (e *AggregateError) Unwrap() error {
	return e.Err
}

func wrap(errorType ErrorType, message string, err error) error {
	return &AggregateError{Type: errorType, Message: message, Err: err}
}

func isType(err error, t ErrorType) bool {
	var aggErr *AggregateError
	if errors.As(err, &aggErr) {
		return aggErr.Type == t
	}
	return false
}

// IsHomeUnavailable checks if err ended a home-screen load.
func IsHomeUnavailable(err error) bool { return isType(err, ErrorTypeHomeUnavailable) }

// IsDetailUnavailable checks if err ended a detail-screen load.
func IsDetailUnavailable(err error) bool { return isType(err, ErrorTypeDetailUnavailable) }

// IsListingUnavailable checks if err came from a search or genre listing.
func IsListingUnavailable(err error) bool { return isType(err, ErrorTypeListingUnavailable) }
