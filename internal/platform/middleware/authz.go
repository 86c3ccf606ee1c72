// Copyright (c) 2026 RateUp. All rights reserved.

package middleware

import (
	"net/http"
	"strings"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/authz"
	"github.com/nifoox/rateup/internal/platform/constants"
	"github.com/nifoox/rateup/internal/platform/ctxutil"
	"github.com/nifoox/rateup/internal/platform/respond"
	"github.com/nifoox/rateup/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify tokens in middleware.
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenService], allowing fakes during unit testing.
type TokenVerifier interface {
	Verify(tokenString string) (*sec.Subject, error)
}

// Authenticate extracts and verifies the bearer token from the Authorization header.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent, request proceeds as anonymous.
//  3. If present, verify the token via [TokenVerifier].
//  4. Inject the [*sec.Subject] into the request context for downstream use.
//
// A present but unusable token is rejected rather than downgraded to anonymous.
func Authenticate(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get(constants.HeaderAuthorization)

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Validation ──────────────────────────────────────────
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(tokenString) == "" {
				respond.Error(writer, request, apperr.Unauthenticated("Invalid authorization format"))
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			subject, err := verifier.Verify(strings.TrimSpace(tokenString))
			if err != nil {
				respond.Error(writer, request, tokenFailure(err))
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := ctxutil.WithSubject(request.Context(), subject)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// tokenFailure converts a verification error into the client-facing error.
// Configuration failures keep their own code so operators can spot them.
func tokenFailure(err error) error {
	if apperr.Is(err, apperr.CodeConfig) {
		return err
	}

	if reason, ok := sec.ReasonOf(err); ok && reason == sec.ReasonExpired {
		return apperr.Unauthenticated("Token expired")
	}

	return apperr.Unauthenticated("Invalid token")
}

// RequireAuth blocks requests that are not authenticated.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if err := authz.Check(GetSubject(request), authz.Authenticated(authz.KindRouteAccess)); err != nil {
			respond.Error(writer, request, err)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose caller does not hold role.
//
// It implies [RequireAuth]: anonymous callers get 401, others 403.
func RequireRole(role sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if err := authz.Check(GetSubject(request), authz.Role(authz.KindRouteAccess, role)); err != nil {
				respond.Error(writer, request, err)
				return
			}
			next.ServeHTTP(writer, request)
		})
	}
}

// GetSubject retrieves the verified caller of request, or nil when anonymous.
func GetSubject(request *http.Request) *sec.Subject {
	return ctxutil.GetSubject(request.Context())
}
