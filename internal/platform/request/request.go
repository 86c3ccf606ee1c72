// Copyright (c) 2026 RateUp. All rights reserved.

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/ctxutil"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/platform/validate"
)

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	if request.Body == nil {
		return validate.ErrInvalidJSON
	}
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID parses a named URL parameter as a positive integer identifier.

Returns:
  - int64: The identifier
  - error: apperr.InvalidData when the parameter is missing or not a positive integer
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.InvalidData("Invalid " + name)
	}
	return id, nil
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

// Query returns the trimmed query string value for key.
func Query(request *http.Request, key string) string {
	return strings.TrimSpace(request.URL.Query().Get(key))
}

// QueryInt parses an integer query value, returning fallback when absent or invalid.
func QueryInt(request *http.Request, key string, fallback int) int {
	raw := Query(request, key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

// QueryID parses an optional positive identifier from the query string.
// It returns nil when the key is absent.
func QueryID(request *http.Request, key string) (*int64, error) {
	raw := Query(request, key)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, apperr.InvalidData("Invalid " + key)
	}
	return &id, nil
}

/*
Subject extracts the verified caller from the request context.

Returns nil if the request is anonymous.
*/
func Subject(request *http.Request) *sec.Subject {
	return ctxutil.GetSubject(request.Context())
}

/*
RequiredSubject ensures the request is authenticated and returns the caller.

Returns:
  - *sec.Subject: The verified caller
  - error: apperr.Unauthenticated if the request is anonymous
*/
func RequiredSubject(request *http.Request) (*sec.Subject, error) {
	subject := ctxutil.GetSubject(request.Context())
	if subject == nil {
		return nil, apperr.Unauthenticated("Authentication required")
	}
	return subject, nil
}
