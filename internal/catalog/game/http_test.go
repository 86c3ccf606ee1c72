// Copyright (c) 2026 RateUp. All rights reserved.

package game

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
	"github.com/nifoox/rateup/internal/platform/sec"
)

type stubVerifier map[string]*sec.Subject

func (verifier stubVerifier) Verify(token string) (*sec.Subject, error) {
	if subject, ok := verifier[token]; ok {
		return subject, nil
	}
	return nil, &sec.TokenError{Reason: sec.ReasonBadSignature}
}

func TestHandler_AdminOnlyMutations(t *testing.T) {
	service, _ := newTestService()
	handler := NewHandler(service)

	router := chi.NewRouter()
	router.Use(middleware.Authenticate(stubVerifier{
		"user":  {ID: 1, Email: "u@x.com", Roles: []sec.Role{sec.RoleUser}},
		"admin": {ID: 2, Email: "a@x.com", Roles: []sec.Role{sec.RoleUser, sec.RoleAdmin}},
	}))
	router.Route("/games", handler.RegisterRoutes)

	do := func(method, path, token, body string) *httptest.ResponseRecorder {
		request := httptest.NewRequest(method, path, strings.NewReader(body))
		if token != "" {
			request.Header.Set("Authorization", "Bearer "+token)
		}
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, request)
		return recorder
	}

	// 1. Mutations are rejected for anonymous callers and plain users
	assert.Equal(t, http.StatusUnauthorized, do(http.MethodPost, "/games", "", `{"name": "Celeste"}`).Code)
	assert.Equal(t, http.StatusForbidden, do(http.MethodPost, "/games", "user", `{"name": "Celeste"}`).Code)

	// 2. An admin creates a game
	recorder := do(http.MethodPost, "/games", "admin", `{"name": "Celeste", "genre": "Platformer"}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	var created struct {
		Data Game `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &created))
	assert.Equal(t, "celeste", created.Data.Slug)

	// 3. Reads are public
	recorder = do(http.MethodGet, "/games?genre=platformer", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var listed struct {
		Data []Game `json:"data"`
		Meta struct {
			Total int `json:"total"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &listed))
	assert.Equal(t, 1, listed.Meta.Total)

	assert.Equal(t, http.StatusNotFound, do(http.MethodGet, "/games/999", "", "").Code)
	assert.Equal(t, http.StatusNoContent, do(http.MethodDelete, "/games/1", "admin", "").Code)
}
