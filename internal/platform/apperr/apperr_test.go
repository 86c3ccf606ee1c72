// Copyright (c) 2026 RateUp. All rights reserved.

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors_StatusMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    *AppError
		code   Code
		status int
	}{
		{"unauthenticated", Unauthenticated("no token"), CodeUnauthenticated, http.StatusUnauthorized},
		{"invalid credentials", InvalidCredentials(), CodeInvalidCredentials, http.StatusUnauthorized},
		{"forbidden", Forbidden("nope"), CodeForbidden, http.StatusForbidden},
		{"invalid data", InvalidData("bad"), CodeInvalidData, http.StatusBadRequest},
		{"not found", NotFound("Review"), CodeNotFound, http.StatusNotFound},
		{"conflict", Conflict("dup"), CodeConflict, http.StatusConflict},
		{"config", ConfigError("missing secret"), CodeConfig, http.StatusInternalServerError},
		{"store timeout", StoreTimeout(errors.New("slow")), CodeStoreTimeout, http.StatusGatewayTimeout},
		{"store unavailable", StoreUnavailable(errors.New("down")), CodeStoreUnavailable, http.StatusServiceUnavailable},
		{"internal", Internal(errors.New("boom")), CodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.status, tt.err.HTTPStatus)
		})
	}
}

func TestIs_ThroughWrapping(t *testing.T) {
	err := fmt.Errorf("review_service_update_failed: %w", NotFound("Review"))

	assert.True(t, Is(err, CodeNotFound))
	assert.False(t, Is(err, CodeForbidden))
	assert.Equal(t, CodeNotFound, CodeOf(err))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("plain")))
	assert.Equal(t, Code(""), CodeOf(nil))
}

func TestNotFound_Message(t *testing.T) {
	assert.Equal(t, "Review not found", NotFound("Review").Error())
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "An unexpected error occurred", err.Error())
}
