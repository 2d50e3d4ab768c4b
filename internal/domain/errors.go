package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation is the parent of every input validation failure
	ErrValidation = errors.New("validation failed")

	// ErrChainNotFound is returned when a chain id is not present in the registry
	ErrChainNotFound = errors.New("chain not found")

	// ErrUnsupportedVmType is returned when a VM type is unknown or not supported by an operation
	ErrUnsupportedVmType = errors.New("unsupported vm type")

	// ErrAlreadyExists is returned when an insert-once record already exists for its key
	ErrAlreadyExists = errors.New("already exists")

	// ErrLockNotFound is returned when a balance lock does not exist
	ErrLockNotFound = errors.New("balance lock not found")

	// ErrLockSourceMismatch is returned when a lock is released through a path reserved for another source
	ErrLockSourceMismatch = errors.New("balance lock source mismatch")

	// ErrAlreadyUnlocked is returned when a lock was already executed
	ErrAlreadyUnlocked = errors.New("balance lock already unlocked")

	// ErrLockNotExpired is returned when the expiry path meets a lock whose expiration has not passed
	ErrLockNotExpired = errors.New("balance lock not expired")

	// ErrInsufficientBalance is returned when a debit would take a balance below zero
	ErrInsufficientBalance = errors.New("insufficient balance")

	// ErrReallocationFailed is returned when either side of a reallocation did not land
	ErrReallocationFailed = errors.New("reallocation failed")

	// ErrInvalidSignature is returned when an oracle signature cannot be verified
	ErrInvalidSignature = errors.New("invalid oracle signature")

	// ErrInsufficientSignatures is returned when fewer than the threshold of allowed oracles signed
	ErrInsufficientSignatures = errors.New("insufficient oracle signatures")
)

// ValidationError describes a malformed input value
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is makes every ValidationError match ErrValidation
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, value, reason string) error {
	return &ValidationError{Field: field, Value: value, Reason: reason}
}

// IsValidationError reports whether err is a validation failure, including unknown chains and VM types
func IsValidationError(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrChainNotFound) ||
		errors.Is(err, ErrUnsupportedVmType)
}
