package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrMissingColumns indicates that the ledger lacks a column the pipeline requires.
var ErrMissingColumns = errors.New("required ledger columns missing")

// ErrRateFetch indicates that the exchange-rate upstream was unreachable or returned malformed content.
var ErrRateFetch = errors.New("failed to fetch exchange rates")

// ErrUnknownCurrency indicates a conversion involving a currency absent from the rate snapshot.
var ErrUnknownCurrency = errors.New("currency not present in rate snapshot")

// ErrDataSource indicates that the ledger source could not be read.
var ErrDataSource = errors.New("ledger source unavailable")

// ErrNotConfigured indicates an optional feature whose backing service is not configured.
var ErrNotConfigured = errors.New("feature not configured")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError creates an AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
