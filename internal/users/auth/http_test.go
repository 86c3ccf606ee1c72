// Copyright (c) 2026 RateUp. All rights reserved.

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nifoox/rateup/internal/platform/middleware"
)

func newTestRouter(f *fixture) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(f.tokens))
	router.Mount("/auth", NewHandler(f.service).Routes())
	return router
}

type envelope struct {
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Details []struct {
		Field string `json:"field"`
	} `json:"details"`
}

func send(t *testing.T, router http.Handler, method, path, token, body string) (int, envelope) {
	t.Helper()

	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	var decoded envelope
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &decoded))
	return recorder.Code, decoded
}

func TestHandler_LoginThenMe(t *testing.T) {
	f := newFixture(t, testSecret)
	f.seed(t, "alice", "alice@x.com", "s3cret-pass")
	router := newTestRouter(f)

	// 1. Login returns a token and the safe profile
	status, body := send(t, router, http.MethodPost, "/auth/login", "",
		`{"identifier": "alice@x.com", "password": "s3cret-pass", "rememberMe": true}`)
	require.Equal(t, http.StatusOK, status)

	var result struct {
		Token     string         `json:"token"`
		ExpiresAt string         `json:"expiresAt"`
		User      map[string]any `json:"user"`
	}
	require.NoError(t, json.Unmarshal(body.Data, &result))
	assert.NotEmpty(t, result.Token)
	assert.NotEmpty(t, result.ExpiresAt)
	assert.Equal(t, "alice", result.User["username"])
	assert.NotContains(t, result.User, "passwordHash")

	// 2. The token authenticates /me
	status, body = send(t, router, http.MethodGet, "/auth/me", result.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(body.Data), `"email":"alice@x.com"`)

	// 3. /me without a token is rejected
	status, body = send(t, router, http.MethodGet, "/auth/me", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHENTICATED", body.Code)
}

func TestHandler_LoginFailures(t *testing.T) {
	f := newFixture(t, testSecret)
	f.seed(t, "alice", "alice@x.com", "s3cret-pass")
	router := newTestRouter(f)

	cases := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"wrong password", `{"identifier": "alice", "password": "nope-nope"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"unknown user", `{"identifier": "zed", "password": "nope-nope"}`, http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"empty identifier", `{"identifier": "  ", "password": "x"}`, http.StatusBadRequest, "INVALID_DATA"},
		{"bad json", `{"identifier":`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := send(t, router, http.MethodPost, "/auth/login", "", tc.body)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
		})
	}
}

func TestHandler_Register(t *testing.T) {
	f := newFixture(t, testSecret)
	router := newTestRouter(f)

	status, body := send(t, router, http.MethodPost, "/auth/register", "",
		`{"username": "dave", "email": "dave@x.com", "password": "s3cret-pass"}`)
	require.Equal(t, http.StatusCreated, status)
	assert.Contains(t, string(body.Data), `"roles":["USER"]`)

	status, body = send(t, router, http.MethodPost, "/auth/register", "",
		`{"username": "dave", "email": "dave2@x.com", "password": "s3cret-pass"}`)
	assert.Equal(t, http.StatusConflict, status)
	assert.Equal(t, "CONFLICT", body.Code)

	status, body = send(t, router, http.MethodPost, "/auth/register", "",
		`{"username": "x", "email": "not-an-email", "password": "short"}`)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", body.Code)

	fields := make([]string, 0, len(body.Details))
	for _, detail := range body.Details {
		fields = append(fields, detail.Field)
	}
	assert.Contains(t, fields, FieldUsername)
	assert.Contains(t, fields, FieldEmail)
	assert.Contains(t, fields, FieldPassword)
}
