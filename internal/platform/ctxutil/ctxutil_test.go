// Copyright (c) 2026 RateUp. All rights reserved.

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nifoox/rateup/internal/platform/ctxutil"
	"github.com/nifoox/rateup/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Subject verifies that a verified caller can be stored in context
and that a bare context is anonymous.
*/
func TestContext_Subject(t *testing.T) {
	ctx := context.Background()
	subject := &sec.Subject{
		ID:    123,
		Email: "alice@x.com",
		Roles: []sec.Role{sec.RoleAdmin},
	}

	// 1. Initially anonymous
	assert.Nil(t, ctxutil.GetSubject(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithSubject(ctx, subject)
	retrieved := ctxutil.GetSubject(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, int64(123), retrieved.ID)
	assert.True(t, retrieved.HasRole(sec.RoleAdmin))
}
