// Copyright (c) 2026 RateUp. All rights reserved.

// Package ctxutil provides helpers for interacting with values stored in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/nifoox/rateup/internal/platform/ctxkey"
	"github.com/nifoox/rateup/internal/platform/sec"
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, ctxkey.KeyRequestID, id)
}

// GetRequestID retrieves the request ID from the context.
// Returns an empty string if not found.
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(ctxkey.KeyRequestID).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxkey.KeyLogger, logger)
}

// GetLogger retrieves the logger from the context.
// If no logger is found, it returns the global default logger.
func GetLogger(ctx context.Context) *slog.Logger {
	logger, ok := ctx.Value(ctxkey.KeyLogger).(*slog.Logger)
	if !ok {
		return slog.Default()
	}
	return logger
}

// # Identity & Access

// WithSubject returns a new context carrying the verified caller.
func WithSubject(ctx context.Context, subject *sec.Subject) context.Context {
	return context.WithValue(ctx, ctxkey.KeyUser, subject)
}

// GetSubject retrieves the verified caller from the [context.Context].
// A nil result means the request is anonymous.
func GetSubject(ctx context.Context) *sec.Subject {
	subject, ok := ctx.Value(ctxkey.KeyUser).(*sec.Subject)
	if !ok {
		return nil
	}
	return subject
}
