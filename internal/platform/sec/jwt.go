// Copyright (c) 2026 RateUp. All rights reserved.

// Package sec provides cryptographic primitives and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (password hashing, token
// signing) from the domain logic. Services receive a [*Hasher] and a
// [*TokenService] through their constructors; nothing here is global.
package sec

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/constants"
)

// # Token Payload

// AuthClaims represents the payload embedded inside a signed session token.
//
// The subject id travels in the registered "sub" claim as a decimal string.
type AuthClaims struct {
	jwt.RegisteredClaims

	Email string   `json:"email"`
	Roles []string `json:"roles"`
}

// Subject is a verified caller identity decoded from a token.
//
// Anonymous callers are represented by a nil *Subject, never by a Subject
// without roles.
type Subject struct {
	ID        int64
	Email     string
	Roles     []Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// HasRole reports whether the subject holds role.
func (subject *Subject) HasRole(role Role) bool {
	return subject != nil && HasRole(subject.Roles, role)
}

// IssuedToken is the result of a successful issuance.
type IssuedToken struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// # Rejection Reasons

// Reason classifies why a token was rejected.
type Reason string

const (
	// ReasonMalformed: not a well-formed signed structure, or a required claim is missing.
	ReasonMalformed Reason = "MALFORMED"
	// ReasonBadSignature: the structure is valid but the signature does not match.
	ReasonBadSignature Reason = "BAD_SIGNATURE"
	// ReasonExpired: the signature is valid and the current time is at or past "exp".
	ReasonExpired Reason = "EXPIRED"
)

// TokenError is returned by [TokenService.Verify] for every rejected token.
type TokenError struct {
	Reason Reason
	Err    error
}

func (e *TokenError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("sec: token rejected (%s)", e.Reason)
	}
	return fmt.Sprintf("sec: token rejected (%s): %v", e.Reason, e.Err)
}

func (e *TokenError) Unwrap() error { return e.Err }

// ReasonOf extracts the rejection reason from err, if any.
func ReasonOf(err error) (Reason, bool) {
	var tokenErr *TokenError
	if errors.As(err, &tokenErr) {
		return tokenErr.Reason, true
	}
	return "", false
}

// ErrMissingSecret is returned by every issue or verify attempt when no
// signing secret was configured.
var ErrMissingSecret = apperr.ConfigError("Token signing secret is not configured")

// # Token Service

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock replaces the time source used for issuance and expiry checks.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) { service.now = now }
}

// WithIssuer overrides the "iss" claim written into issued tokens.
func WithIssuer(issuer string) TokenOption {
	return func(service *TokenService) { service.issuer = issuer }
}

// TokenService handles issuance and verification of HS256 session tokens.
// The secret is read-only after construction.
type TokenService struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewTokenService creates a new TokenService.
//
// An empty secret is accepted here. The failure surfaces as [ErrMissingSecret]
// on the first call to [TokenService.Issue] or [TokenService.Verify].
func NewTokenService(secret string, options ...TokenOption) *TokenService {
	service := &TokenService{
		secret: []byte(secret),
		issuer: constants.AuthIssuer,
		now:    time.Now,
	}
	for _, option := range options {
		option(service)
	}
	return service
}

/*
Issue signs a token for a verified credential.

Parameters:
  - subjectID: int64 (Credential identifier)
  - roles: []Role (Non-empty role set)
  - email: string (Identifier embedded in the token)
  - rememberMe: bool (Selects the 30 day class instead of the 4 hour class)

Returns:
  - *IssuedToken: Signed token and its expiry (second precision)
  - error: [ErrMissingSecret] or signing failures
*/
func (service *TokenService) Issue(subjectID int64, roles []Role, email string, rememberMe bool) (*IssuedToken, error) {
	if len(service.secret) == 0 {
		return nil, ErrMissingSecret
	}
	if len(roles) == 0 {
		return nil, fmt.Errorf("sec: cannot issue a token without roles")
	}

	timeToLive := constants.AccessTokenTTL
	if rememberMe {
		timeToLive = constants.RememberMeTokenTTL
	}

	currentTime := service.now()
	claims := AuthClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(timeToLive)),
		},
		Email: email,
		Roles: RoleStrings(roles),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(service.secret)
	if err != nil {
		return nil, fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return &IssuedToken{Token: signedToken, ExpiresAt: claims.ExpiresAt.Time}, nil
}

/*
Verify checks the signature, the expiry and the required claims of a token.

Description: Only HS256 is accepted. The signature is checked before any
claim is trusted. A correctly signed token that lacks "sub", "email" or a
non-empty "roles" array is rejected as malformed.

Returns:
  - *Subject: The verified caller
  - error: [*TokenError] with a [Reason], or [ErrMissingSecret]
*/
func (service *TokenService) Verify(tokenString string) (*Subject, error) {
	if len(service.secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &AuthClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims,
		func(token *jwt.Token) (any, error) {
			return service.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithStrictDecoding(),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	)
	if err != nil {
		return nil, classify(err)
	}

	return subjectFromClaims(claims)
}

// classify maps parser failures onto the closed set of rejection reasons.
func classify(err error) *TokenError {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return &TokenError{Reason: ReasonBadSignature, Err: err}
	case errors.Is(err, jwt.ErrTokenExpired):
		return &TokenError{Reason: ReasonExpired, Err: err}
	default:
		return &TokenError{Reason: ReasonMalformed, Err: err}
	}
}

func subjectFromClaims(claims *AuthClaims) (*Subject, error) {
	subjectID, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || subjectID <= 0 {
		return nil, &TokenError{Reason: ReasonMalformed, Err: errors.New("missing or invalid sub claim")}
	}

	if claims.Email == "" {
		return nil, &TokenError{Reason: ReasonMalformed, Err: errors.New("missing email claim")}
	}

	if len(claims.Roles) == 0 {
		return nil, &TokenError{Reason: ReasonMalformed, Err: errors.New("missing roles claim")}
	}

	roles, ok := ParseRoles(claims.Roles)
	if !ok {
		return nil, &TokenError{Reason: ReasonMalformed, Err: errors.New("unknown role in roles claim")}
	}

	subject := &Subject{
		ID:        subjectID,
		Email:     claims.Email,
		Roles:     roles,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		subject.IssuedAt = claims.IssuedAt.Time
	}

	return subject, nil
}
