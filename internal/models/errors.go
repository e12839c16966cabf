package models

import (
	"errors"
	"fmt"
)

// Error codes surfaced to callers.
const (
	CodeDuplicateEmail      = "DUPLICATE_EMAIL"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmptyPost           = "EMPTY_POST"
	CodeEmptyComment        = "EMPTY_COMMENT"
	CodeForbidden           = "FORBIDDEN"
	CodeUnauthenticated     = "UNAUTHENTICATED"
	CodeStorageWriteFailure = "STORAGE_WRITE_FAILURE"
	CodeValidation          = "VALIDATION_ERROR"
	CodeNotFound            = "NOT_FOUND"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Is matches any AppError carrying the same code, so the sentinels below work
// with errors.Is regardless of message.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Sentinels for errors.Is checks.
var (
	ErrDuplicateEmail      = &AppError{Code: CodeDuplicateEmail, Message: "Email already registered."}
	ErrUserNotFound        = &AppError{Code: CodeUserNotFound, Message: "No account found for this email."}
	ErrInvalidCredentials  = &AppError{Code: CodeInvalidCredentials, Message: "Incorrect password."}
	ErrEmptyPost           = &AppError{Code: CodeEmptyPost, Message: "Post needs text or at least one image."}
	ErrEmptyComment        = &AppError{Code: CodeEmptyComment, Message: "Comment cannot be empty."}
	ErrForbidden           = &AppError{Code: CodeForbidden, Message: "You can only delete your own posts."}
	ErrUnauthenticated     = &AppError{Code: CodeUnauthenticated, Message: "Please sign in first."}
	ErrStorageWriteFailure = &AppError{Code: CodeStorageWriteFailure, Message: "Storage write failed"}
	ErrValidation          = &AppError{Code: CodeValidation, Message: "Invalid input"}
	ErrNotFound            = &AppError{Code: CodeNotFound, Message: "Not found"}
)

// Predefined error constructors
func NewNotFoundError(resource string, id interface{}) *AppError {
	return &AppError{
		Code:    CodeNotFound,
		Message: fmt.Sprintf("%s with ID %v not found", resource, id),
	}
}

func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    CodeValidation,
		Message: message,
	}
}

// NewStorageWriteError wraps a failed persist of key. Callers treat it as fatal.
func NewStorageWriteError(key string, err error) *AppError {
	return &AppError{
		Code:    CodeStorageWriteFailure,
		Message: fmt.Sprintf("failed to write %q", key),
		Err:     err,
	}
}

// CodeOf returns the AppError code of err, or "" when err is not an AppError.
func CodeOf(err error) string {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return ""
}
