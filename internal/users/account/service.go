// Copyright (c) 2026 RateUp. All rights reserved.

package account

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/authz"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/users/auth"
	"github.com/nifoox/rateup/pkg/slice"
)

// AccountCreator persists new credentials with explicit roles.
type AccountCreator interface {
	Create(ctx context.Context, input auth.RegisterInput, roles []sec.Role) (*auth.Profile, error)
}

// # Service Layer

// Service orchestrates account administration and profile reads.
type Service struct {
	accountRepository AccountRepository
	creator           AccountCreator
	hasher            auth.PasswordHasher
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	accountRepo AccountRepository,
	creator AccountCreator,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		creator:           creator,
		hasher:            hasher,
		logger:            logger,
	}
}

// # Administration

// List returns one page of accounts as private profiles.
func (service *Service) List(context context.Context, filter ListFilter) ([]*auth.Profile, int, error) {
	users, total, err := service.accountRepository.List(context, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("account_service_list_failed: %w", err)
	}

	return slice.Map(users, (*auth.User).Profile), total, nil
}

// Get returns the private profile of any account.
func (service *Service) Get(context context.Context, id int64) (*auth.Profile, error) {
	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_failed: %w", err)
	}
	return user.Profile(), nil
}

// Create persists an account with explicit roles on behalf of an administrator.
func (service *Service) Create(context context.Context, input auth.RegisterInput, roles []sec.Role) (*auth.Profile, error) {
	return service.creator.Create(context, input, roles)
}

// UpdateInput is a partial account change. Nil fields are left untouched.
type UpdateInput struct {
	Username *string
	Email    *string
	Password *string
	Roles    []sec.Role
	Active   *bool
}

func (input UpdateInput) touchesPrivileges() bool {
	return input.Roles != nil || input.Active != nil
}

/*
Update applies a partial change to an account.

Description: The caller must own the account or be an administrator.
Changing roles or the active flag additionally requires ADMIN. A new
password is re-hashed before it is stored.

Parameters:
  - context: context.Context
  - subject: *sec.Subject (the caller, nil when anonymous)
  - id: int64
  - input: UpdateInput

Returns:
  - *auth.Profile: The updated account
  - error: UNAUTHENTICATED, FORBIDDEN, NOT_FOUND, INVALID_DATA, CONFLICT or store failures
*/
func (service *Service) Update(context context.Context, subject *sec.Subject, id int64, input UpdateInput) (*auth.Profile, error) {
	if err := authz.Check(subject, authz.OwnedBy(authz.KindUserUpdate, id)); err != nil {
		return nil, err
	}
	if input.touchesPrivileges() {
		if err := authz.Check(subject, authz.Role(authz.KindUserPrivileges, sec.RoleAdmin)); err != nil {
			return nil, err
		}
	}
	if input.Roles != nil {
		if err := validateRoles(input.Roles); err != nil {
			return nil, err
		}
	}

	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_update_lookup_failed: %w", err)
	}

	// Apply delta updates
	if input.Username != nil {
		user.Username = strings.TrimSpace(*input.Username)
	}
	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Password != nil {
		hash, err := service.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("account_service_hash_failed: %w", err)
		}
		user.PasswordHash = hash
	}
	if input.Roles != nil {
		user.Roles = input.Roles
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	service.logger.Info("user_account_updated",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", subject.ID),
		slog.Bool("privileges_changed", input.touchesPrivileges()),
	)

	return user.Profile(), nil
}

// SetRoles replaces the role set of an account. Only administrators may call it.
func (service *Service) SetRoles(context context.Context, subject *sec.Subject, id int64, roles []sec.Role) (*auth.Profile, error) {
	if roles == nil {
		roles = []sec.Role{}
	}
	return service.Update(context, subject, id, UpdateInput{Roles: roles})
}

// Deactivate soft-deletes an account: the row stays, login stops working.
func (service *Service) Deactivate(context context.Context, subject *sec.Subject, id int64) error {
	if err := authz.Check(subject, authz.Role(authz.KindUserManage, sec.RoleAdmin)); err != nil {
		return err
	}

	if err := service.accountRepository.Deactivate(context, id); err != nil {
		return fmt.Errorf("account_service_deactivate_failed: %w", err)
	}

	service.logger.Info("user_account_deactivated",
		slog.Int64("user_id", id),
		slog.Int64("actor_id", subject.ID),
	)
	return nil
}

// # Public Profile

// PublicProfile returns the public view of an active account with its reputation.
func (service *Service) PublicProfile(context context.Context, id int64) (*PublicProfile, error) {
	user, err := service.accountRepository.FindByID(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_profile_failed: %w", err)
	}
	if !user.Active {
		return nil, apperr.NotFound("User")
	}

	activity, err := service.accountRepository.Activity(context, id)
	if err != nil {
		return nil, fmt.Errorf("account_service_activity_failed: %w", err)
	}

	return &PublicProfile{
		ID:          user.ID,
		Username:    user.Username,
		MemberSince: user.CreatedAt,
		ReviewCount: activity.ReviewCount,
		Reputation:  NewReputation(activity.Upvotes, activity.Downvotes),
	}, nil
}

func validateRoles(roles []sec.Role) error {
	if len(roles) == 0 {
		return apperr.InvalidData("At least one role is required")
	}
	for _, role := range roles {
		if !role.Valid() {
			return apperr.InvalidData("Unknown role: " + string(role))
		}
	}
	return nil
}
