package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/appointment-scheduler/internal/httperr"
)

const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	pgLockNotAvailable     = "55P03"
)

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgCode(err) == pgUniqueViolation
}

// classify turns lock contention into a retryable booking conflict.
func classify(err error) error {
	if err == nil {
		return nil
	}

	switch pgCode(err) {
	case pgLockNotAvailable, pgSerializationFailure, pgDeadlockDetected:
		return httperr.Conflict("booking_busy", "Another booking for this day is being processed. Please try again.")
	}
	return err
}

func notFound(err error, code, message string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code, message)
	}
	return err
}
