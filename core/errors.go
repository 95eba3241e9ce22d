package core

import (
	"errors"
	"fmt"
)

type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindUnauthorized
	KindForbidden
	KindNotFound
	KindConflict
	KindInvalidCredentials
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInvalidCredentials:
		return "invalid_credentials"
	default:
		return "internal"
	}
}

// Error is the application error carried from the ledgers to the request boundary.
// Message is safe to show to the caller; Err is the underlying cause, if any.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind and message so package-level sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == e.Message
}

func NewValidationError(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NewNotFoundError(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func NewConflictError(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

func NewInternalError(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

var (
	ErrNotAuthorized = &Error{Kind: KindUnauthorized, Message: "Not authorized"}
	ErrTokenFailed   = &Error{Kind: KindUnauthorized, Message: "Token failed"}
	ErrAdminOnly     = &Error{Kind: KindForbidden, Message: "Admin only"}

	ErrUserNotFound    = &Error{Kind: KindInvalidCredentials, Message: "User not found"}
	ErrInvalidPassword = &Error{Kind: KindInvalidCredentials, Message: "Invalid password"}
	ErrSamePassword    = &Error{Kind: KindValidation, Message: "New password must be different from current password."}
)

// KindOf returns the kind of err, KindInternal for anything that is not an *Error.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}
