// Copyright (c) 2026 BoiBritto. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/boibritto/boibritto-api/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the
// error type.
//
// # Classification
//
//   - pgx.ErrNoRows            -> 404 NOT_FOUND
//   - SQLSTATE 23505 (unique)  -> 409 CONFLICT, using conflictMsg
//   - SQLSTATE 23503 (FK)      -> 400 VALIDATION_ERROR (referenced row missing)
//   - anything else            -> 500 INTERNAL_ERROR
func Wrap(err error, conflictMsg string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			if conflictMsg == "" {
				conflictMsg = "Resource already exists"
			}
			return apperr.Conflict(conflictMsg)
		case pgerrcode.ForeignKeyViolation:
			return apperr.ValidationError("Referenced resource does not exist")
		}
	}

	return apperr.Internal(err)
}

// IsUniqueViolation reports whether err is a unique-constraint violation,
// optionally narrowed to a specific constraint name.
func IsUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != pgerrcode.UniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
