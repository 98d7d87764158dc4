package common

import "errors"

// AppError represents a recoverable failure with a stable code and a message
// suitable for showing to the shopper.
type AppError struct {
	Code    string
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Code + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap allows errors.Is/As to inspect the underlying error.
func (e *AppError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NewAppError constructs an AppError.
func NewAppError(code, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// IsAppError checks whether the error is an AppError.
func IsAppError(err error) bool {
	var target *AppError
	return errors.As(err, &target)
}

// AppErrorCode returns the code of the first AppError in err's chain.
func AppErrorCode(err error) string {
	var target *AppError
	if errors.As(err, &target) {
		return target.Code
	}
	return ""
}

// UserMessage returns the shopper-facing message of the first AppError in
// err's chain, or fallback.
func UserMessage(err error, fallback string) string {
	var target *AppError
	if errors.As(err, &target) && target.Message != "" {
		return target.Message
	}
	return fallback
}
