// Package apperror defines the application-level error carried between
// services and handlers: an HTTP-style status plus a machine-readable code.
package apperror

import "fmt"

// AppError wraps a failure with the status and code the handler should emit.
type AppError struct {
	Status int
	Code   string
	Msg    string
	Err    error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Msg)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New builds an AppError without a cause.
func New(status int, code, msg string) *AppError {
	return &AppError{Status: status, Code: code, Msg: msg}
}

// Wrap builds an AppError around a cause.
func Wrap(status int, code, msg string, err error) *AppError {
	return &AppError{Status: status, Code: code, Msg: msg, Err: err}
}
