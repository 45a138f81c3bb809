package errors_utils

import (
	"errors"
	"net/http"
)

// Kind is the stable, machine readable category of an error. It is
// rendered to API callers as the "code" field.
type Kind string

const (
	KindInvalidID             Kind = "invalid_id"
	KindValidation            Kind = "validation_error"
	KindNotFound              Kind = "not_found"
	KindConflict              Kind = "conflict"
	KindForbidden             Kind = "forbidden"
	KindUnauthorized          Kind = "unauthorized"
	KindDependencyUnavailable Kind = "dependency_missing"
	KindCreateFailed          Kind = "create_failed"
	KindUpdateFailed          Kind = "update_failed"
	KindDeleteFailed          Kind = "delete_failed"
	KindInternal              Kind = "internal_error"
)

func (k Kind) Status() int {
	switch k {
	case KindInvalidID:
		return http.StatusBadRequest
	case KindValidation:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindForbidden:
		return http.StatusForbidden
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) Status() int {
	return e.Kind.Status()
}

func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

func InvalidID(message string) *AppError {
	return New(KindInvalidID, message)
}

func Validation(message string) *AppError {
	return New(KindValidation, message)
}

func NotFound(message string) *AppError {
	return New(KindNotFound, message)
}

func Conflict(message string) *AppError {
	return New(KindConflict, message)
}

func Forbidden(message string) *AppError {
	return New(KindForbidden, message)
}

func Unauthorized(message string) *AppError {
	return New(KindUnauthorized, message)
}

func DependencyUnavailable(message string, err error) *AppError {
	return Wrap(KindDependencyUnavailable, message, err)
}

func CreateFailed(message string, err error) *AppError {
	return Wrap(KindCreateFailed, message, err)
}

func UpdateFailed(message string, err error) *AppError {
	return Wrap(KindUpdateFailed, message, err)
}

func DeleteFailed(message string, err error) *AppError {
	return Wrap(KindDeleteFailed, message, err)
}

// KindOf reports the kind of the first AppError in the chain, or
// KindInternal for anything else.
func KindOf(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	return KindInternal
}

func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
