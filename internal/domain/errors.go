package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the workflow
var (
	ErrNoChange        = errors.New("proposed value equals the current value")
	ErrUnknownDecision = errors.New("unknown decision")
	ErrAuthorityExists = errors.New("an approving authority already exists")
	ErrChangeNotFound  = &NotFoundError{Resource: "change request"}
	ErrItemNotFound    = &NotFoundError{Resource: "budget item"}
	ErrUserNotFound    = &NotFoundError{Resource: "user"}
)

// AuthorizationError indicates the actor lacks the required capability.
// Never retried; always surfaced to the caller verbatim.
type AuthorizationError struct {
	Message string
}

func (e *AuthorizationError) Error() string {
	return e.Message
}

func NewAuthorizationError(message string) *AuthorizationError {
	return &AuthorizationError{Message: message}
}

// ValidationError indicates a proposed change violates a numeric policy.
// Limit carries the fractional limit that was exceeded, when one applies.
type ValidationError struct {
	Message string
	Limit   float64
}

func (e *ValidationError) Error() string {
	return e.Message
}

func NewValidationError(message string, limit float64) *ValidationError {
	return &ValidationError{Message: message, Limit: limit}
}

// NotFoundError indicates a lookup by identifier matched nothing
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// AlreadyResolvedError indicates a resolve attempt against a change that has
// already left PENDING. Status carries the existing terminal status so the
// caller can report it without another lookup.
type AlreadyResolvedError struct {
	Status Status
}

func (e *AlreadyResolvedError) Error() string {
	return fmt.Sprintf("change request already resolved: %s", e.Status)
}

// StorageError indicates the backing store could not be read or written.
// Fatal to the operation in progress; previously durable entries stay intact.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

func NewStorageError(op string, err error) *StorageError {
	return &StorageError{Op: op, Err: err}
}
