// Package domain defines the core domain models for FlexNotes.
package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a business domain error with a structured error code.
type DomainError struct {
	Code    string // Error code (e.g., "FN-NOTE-4040")
	Message string // Human-readable message
	Details string // Optional additional details
	Cause   error  // Underlying error (if any)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap() support.
func (e *DomainError) Unwrap() error {
	return e.Cause
}

// Is implements errors.Is() support; two DomainErrors match on Code.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewDomainError creates a new DomainError with the given code and message.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WithDetails returns a copy of the error with additional details.
func (e *DomainError) WithDetails(details string) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: details,
		Cause:   e.Cause,
	}
}

// WithCause returns a copy of the error wrapping the given cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	return &DomainError{
		Code:    e.Code,
		Message: e.Message,
		Details: e.Details,
		Cause:   cause,
	}
}

// IsDomainError checks if an error is a DomainError with the given code.
// If code is empty, it only checks if the error is a DomainError.
func IsDomainError(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		if code == "" {
			return true
		}
		return de.Code == code
	}
	return false
}

// GetErrorCode extracts the error code from an error if it's a DomainError.
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authentication errors (AUTH).
var (
	// ErrMissingCredentials indicates the request carried no credentials.
	ErrMissingCredentials = NewDomainError("FN-AUTH-4001", "missing credentials")

	// ErrUnauthorized indicates failed authentication: bad password,
	// bad or expired token, or a token subject that no longer resolves.
	ErrUnauthorized = NewDomainError("FN-AUTH-4010", "unauthorized")

	// ErrTokenInvalid indicates a malformed token or a bad signature.
	ErrTokenInvalid = NewDomainError("FN-AUTH-4011", "invalid token")

	// ErrTokenExpired indicates the token's expiry lies in the past.
	// Distinguished from ErrUnauthorized only on the refresh path.
	ErrTokenExpired = NewDomainError("FN-AUTH-4012", "token expired")

	// ErrUserExists indicates the username or email is already registered.
	ErrUserExists = NewDomainError("FN-AUTH-4090", "user already exists")
)

// Resource errors. Cross-owner access reports the same not-found
// sentinel as a genuinely absent resource; there is no "forbidden".
var (
	// ErrUserNotFound indicates the user lookup matched nothing.
	// Never surfaced to clients on auth paths; mapped to ErrUnauthorized.
	ErrUserNotFound = NewDomainError("FN-USER-4040", "user not found")

	// ErrNoteNotFound indicates the note is absent or owned by someone else.
	ErrNoteNotFound = NewDomainError("FN-NOTE-4040", "note not found")

	// ErrTodoListNotFound indicates the todo list is absent or owned by someone else.
	ErrTodoListNotFound = NewDomainError("FN-LIST-4040", "todo list not found")

	// ErrTodoNotFound indicates no embedded todo matched the given id.
	ErrTodoNotFound = NewDomainError("FN-LIST-4041", "todo not found")

	// ErrNothingChanged indicates a write matched zero documents.
	ErrNothingChanged = NewDomainError("FN-RES-4042", "nothing changed")
)

// System errors (SYS).
var (
	// ErrInternal indicates a storage or hashing failure. The underlying
	// detail is logged, never exposed to the caller.
	ErrInternal = NewDomainError("FN-SYS-5000", "internal error")

	// ErrBadRequest indicates a malformed request body.
	ErrBadRequest = NewDomainError("FN-SYS-4000", "bad request")

	// ErrInvalidArgument indicates invalid or missing operation arguments.
	ErrInvalidArgument = NewDomainError("FN-ARG-1001", "invalid argument")
)
