package store

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/relay-hub/settlement-hub/internal/domain"
)

// Postgres SQLSTATE codes the store reacts to
const (
	pgUniqueViolation      = "23505"
	pgCheckViolation       = "23514"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
)

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// IsRetryable reports whether the transaction was aborted by a deadlock or serialization failure
// and can be replayed as a whole.
func IsRetryable(err error) bool {
	code := pgErrorCode(err)
	return code == pgSerializationFailure || code == pgDeadlockDetected
}

// classifyWriteError maps constraint violations onto domain errors, keeping the driver error in the message
func classifyWriteError(err error) error {
	switch pgErrorCode(err) {
	case pgCheckViolation:
		return fmt.Errorf("%w: %v", domain.ErrInsufficientBalance, err)
	case pgUniqueViolation:
		return fmt.Errorf("%w: %v", domain.ErrAlreadyExists, err)
	default:
		return err
	}
}
