package utils

import (
	"errors"
	"net/http"
)

// ErrKind is the machine-checkable error class the core hands back to the
// HTTP layer. The core never deals in status codes itself.
type ErrKind string

const (
	KindAuthentication ErrKind = "authentication_error"
	KindAuthorization  ErrKind = "authorization_error"
	KindNotFound       ErrKind = "not_found"
	KindValidation     ErrKind = "validation_error"
	KindConflict       ErrKind = "conflict"
	KindInternal       ErrKind = "internal_error"
)

type AppError struct {
	Kind    ErrKind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func AuthenticationError(msg string) *AppError {
	return &AppError{Kind: KindAuthentication, Message: msg}
}

func AuthorizationError(msg string) *AppError {
	return &AppError{Kind: KindAuthorization, Message: msg}
}

func NotFoundError(msg string) *AppError {
	return &AppError{Kind: KindNotFound, Message: msg}
}

func ValidationError(msg string) *AppError {
	return &AppError{Kind: KindValidation, Message: msg}
}

func ConflictError(msg string) *AppError {
	return &AppError{Kind: KindConflict, Message: msg}
}

func InternalError(err error) *AppError {
	return &AppError{Kind: KindInternal, Message: "internal server error", Err: err}
}

// KindOf returns the error's kind, defaulting to internal for plain errors.
func KindOf(err error) ErrKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTPStatus maps an error kind to a status code at the HTTP edge.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindAuthentication:
		return http.StatusUnauthorized
	case KindAuthorization:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
