// Copyright (c) 2026 RateUp. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/nifoox/rateup/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Constraints maps a constraint name to the client-facing error it represents.
// Repositories pass one to [WrapWith] to name their own unique/foreign keys.
type Constraints map[string]*apperr.AppError

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
func Wrap(err error, action string) error {
	return WrapWith(err, action, nil)
}

// WrapWith behaves like [Wrap] and additionally resolves named constraint violations.
func WrapWith(err error, action string, constraints Constraints) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Deadlines must stay distinguishable from empty results
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return apperr.StoreTimeout(fmt.Errorf("%s: %w", action, err))
	}

	// 3. SQLSTATE classification
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if mapped, ok := constraints[pgErr.ConstraintName]; ok {
			return mapped
		}

		switch {
		case pgErr.Code == pgerrcode.UniqueViolation:
			return apperr.Conflict("Resource already exists")
		case pgErr.Code == pgerrcode.ForeignKeyViolation:
			return apperr.NotFound("Referenced resource")
		case pgErr.Code == pgerrcode.CheckViolation:
			return apperr.InvalidData("Value violates a data constraint")
		case pgErr.Code == pgerrcode.QueryCanceled:
			return apperr.StoreTimeout(fmt.Errorf("%s: %w", action, err))
		case pgerrcode.IsConnectionException(pgErr.Code), pgErr.Code == pgerrcode.CannotConnectNow:
			return apperr.StoreUnavailable(fmt.Errorf("%s: %w", action, err))
		}
	}

	// 4. Connection-level failures that never reached the server
	var connectErr *pgconn.ConnectError
	if errors.As(err, &connectErr) || isClosedPool(err) {
		return apperr.StoreUnavailable(fmt.Errorf("%s: %w", action, err))
	}

	// 5. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}

// IsNotFound reports whether err represents a missing row.
func IsNotFound(err error) bool {
	return errors.Is(err, pgx.ErrNoRows) || apperr.Is(err, apperr.CodeNotFound)
}

func isClosedPool(err error) bool {
	return strings.Contains(err.Error(), "closed pool")
}
