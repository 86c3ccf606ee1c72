// Copyright (c) 2026 RateUp. All rights reserved.

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/sec"
)

// # Contracts & Types

// PasswordHasher derives and checks password hashes.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, stored string) bool
}

// TokenIssuer signs session tokens.
type TokenIssuer interface {
	Issue(subjectID int64, roles []sec.Role, email string, rememberMe bool) (*sec.IssuedToken, error)
}

// Service implements the authentication use cases.
type Service struct {
	users  UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	logger *slog.Logger

	decoyOnce sync.Once
	decoyHash string
}

// NewService constructs a new [Service] with its dependencies.
func NewService(users UserRepository, hasher PasswordHasher, tokens TokenIssuer, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		logger: logger,
	}
}

// # Authentication Flow

// LoginInput holds the credentials of a login attempt. Identifier is either
// a username or an email address.
type LoginInput struct {
	Identifier string
	Password   string
	RememberMe bool
}

// LoginResult is a successfully established session.
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      *Profile  `json:"user"`
}

/*
Login checks a credential and issues a session token.

Description: An identifier containing "@" is looked up as an email first,
anything else as a username first. On a miss the other lookup is tried.
A missing, inactive or mismatching credential yields the same
INVALID_CREDENTIALS error so callers cannot tell which check failed.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *LoginResult: Token, its expiry and the caller's profile
  - error: INVALID_DATA, INVALID_CREDENTIALS, CONFIG_ERROR or store failures
*/
func (service *Service) Login(context context.Context, input LoginInput) (*LoginResult, error) {
	identifier := strings.TrimSpace(input.Identifier)
	if identifier == "" || strings.TrimSpace(input.Password) == "" {
		return nil, apperr.InvalidData("Identifier and password are required")
	}

	user, err := service.findCredential(context, identifier)
	if err != nil {
		return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
	}

	if user == nil || !user.Active {
		service.hasher.Verify(input.Password, service.decoy())
		return nil, apperr.InvalidCredentials()
	}

	if !service.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, apperr.InvalidCredentials()
	}

	issued, err := service.tokens.Issue(user.ID, user.Roles, user.Email, input.RememberMe)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	service.logger.Info("user_logged_in",
		slog.Int64("user_id", user.ID),
		slog.Bool("remember_me", input.RememberMe),
	)

	return &LoginResult{
		Token:     issued.Token,
		ExpiresAt: issued.ExpiresAt,
		User:      user.Profile(),
	}, nil
}

// decoy returns a real hash to verify against when no credential matched,
// so a miss costs the same key derivation as a wrong password.
func (service *Service) decoy() string {
	service.decoyOnce.Do(func() {
		hash, err := service.hasher.Hash("rateup-decoy-credential")
		if err != nil {
			service.logger.Warn("auth_decoy_hash_failed", slog.Any("error", err))
			return
		}
		service.decoyHash = hash
	})
	return service.decoyHash
}

// findCredential returns nil, nil when neither lookup matches.
func (service *Service) findCredential(ctx context.Context, identifier string) (*User, error) {
	lookups := []func(context.Context, string) (*User, error){
		service.users.FindByUsername,
		service.users.FindByEmail,
	}
	if strings.Contains(identifier, "@") {
		lookups[0], lookups[1] = lookups[1], lookups[0]
	}

	for _, find := range lookups {
		user, err := find(ctx, identifier)
		if err == nil {
			return user, nil
		}
		if !apperr.Is(err, apperr.CodeNotFound) {
			return nil, err
		}
	}

	return nil, nil
}

// # Registration Flow

// RegisterInput holds the data required to enroll a new member.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

/*
Register hashes the password and persists a new active credential.

Description: Self-registered accounts always get the USER role. Uniqueness
of username and email is enforced by the store.

Parameters:
  - context: context.Context
  - input: RegisterInput

Returns:
  - *Profile: Created account
  - error: CONFLICT or store failures
*/
func (service *Service) Register(context context.Context, input RegisterInput) (*Profile, error) {
	user, err := service.create(context, input, []sec.Role{sec.RoleUser})
	if err != nil {
		return nil, fmt.Errorf("auth_service_register_failed: %w", err)
	}

	service.logger.Info("user_registered", slog.Int64("user_id", user.ID))
	return user.Profile(), nil
}

/*
Create persists a credential with explicit roles. It backs the admin
endpoints and tooling.

Returns:
  - *Profile: Created account
  - error: INVALID_DATA for an empty or unknown role set, CONFLICT or store failures
*/
func (service *Service) Create(context context.Context, input RegisterInput, roles []sec.Role) (*Profile, error) {
	if len(roles) == 0 {
		return nil, apperr.InvalidData("At least one role is required")
	}
	for _, role := range roles {
		if !role.Valid() {
			return nil, apperr.InvalidData("Unknown role: " + string(role))
		}
	}

	user, err := service.create(context, input, roles)
	if err != nil {
		return nil, fmt.Errorf("auth_service_create_failed: %w", err)
	}

	service.logger.Info("user_created",
		slog.Int64("user_id", user.ID),
		slog.Any("roles", sec.RoleStrings(roles)),
	)
	return user.Profile(), nil
}

func (service *Service) create(context context.Context, input RegisterInput, roles []sec.Role) (*User, error) {
	hash, err := service.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash_password: %w", err)
	}

	user := &User{
		Username:     strings.TrimSpace(input.Username),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		PasswordHash: hash,
		Roles:        roles,
		Active:       true,
	}

	if err := service.users.Create(context, user); err != nil {
		return nil, err
	}
	return user, nil
}

// # Identity

// Me returns the private profile of the authenticated caller.
func (service *Service) Me(context context.Context, subject *sec.Subject) (*Profile, error) {
	if subject == nil {
		return nil, apperr.Unauthenticated("Authentication required")
	}

	user, err := service.users.FindByID(context, subject.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_me_failed: %w", err)
	}
	if !user.Active {
		return nil, apperr.NotFound("User")
	}

	return user.Profile(), nil
}

// # Bootstrap

/*
SeedAdmin creates an active ADMIN credential unless one with the same email
already exists.

Returns:
  - bool: true when a credential was created
  - error: Store failures
*/
func (service *Service) SeedAdmin(context context.Context, input RegisterInput) (bool, error) {
	_, err := service.users.FindByEmail(context, strings.ToLower(strings.TrimSpace(input.Email)))
	if err == nil {
		return false, nil
	}
	if !apperr.Is(err, apperr.CodeNotFound) {
		return false, fmt.Errorf("auth_service_seed_lookup_failed: %w", err)
	}

	if _, err := service.Create(context, input, []sec.Role{sec.RoleUser, sec.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}
