package apperr

import (
	"errors"

	"github.com/savethegov/govbudget/internal/domain"
)

// AppError is the outward-facing error shape with a stable code
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *AppError) Error() string {
	return e.Message
}

const (
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeValidation      = "VALIDATION_FAILED"
	CodeNoChange        = "NO_CHANGE"
	CodeNotFound        = "NOT_FOUND"
	CodeAlreadyResolved = "ALREADY_RESOLVED"
	CodeAuthorityExists = "AUTHORITY_EXISTS"
	CodeStorage         = "STORAGE_FAILURE"
	CodeInternal        = "INTERNAL_ERROR"
)

func New(code, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// MapError translates domain errors into coded application errors
func MapError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	var authErr *domain.AuthorizationError
	if errors.As(err, &authErr) {
		return New(CodeUnauthorized, authErr.Message)
	}

	if errors.Is(err, domain.ErrNoChange) {
		return New(CodeNoChange, err.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return New(CodeValidation, valErr.Message)
	}

	if errors.Is(err, domain.ErrUnknownDecision) {
		return New(CodeValidation, err.Error())
	}

	var notFound *domain.NotFoundError
	if errors.As(err, &notFound) {
		return New(CodeNotFound, notFound.Error())
	}

	var resolved *domain.AlreadyResolvedError
	if errors.As(err, &resolved) {
		return New(CodeAlreadyResolved, resolved.Error())
	}

	if errors.Is(err, domain.ErrAuthorityExists) {
		return New(CodeAuthorityExists, err.Error())
	}

	var storage *domain.StorageError
	if errors.As(err, &storage) {
		return New(CodeStorage, storage.Error())
	}

	return New(CodeInternal, "an unexpected error occurred")
}
