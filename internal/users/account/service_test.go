// Copyright (c) 2026 RateUp. All rights reserved.

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/users/auth"
	"github.com/nifoox/rateup/pkg/pagination"
	"github.com/nifoox/rateup/pkg/pointer"
)

type fixture struct {
	store   *memoryAccounts
	hasher  *sec.Hasher
	service *Service
	alice   *auth.Profile
	bob     *auth.Profile
	admin   *auth.Profile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := newMemoryAccounts()
	hasher := sec.NewHasher(sec.HasherParams{Time: 1, Memory: 1024, Threads: 1, KeyLength: 32, SaltLength: 16})
	authService := auth.NewService(store, hasher, sec.NewTokenService("secret"), logger)

	f := &fixture{
		store:   store,
		hasher:  hasher,
		service: NewService(store, authService, hasher, logger),
	}

	ctx := context.Background()
	var err error
	f.alice, err = authService.Register(ctx, auth.RegisterInput{Username: "alice", Email: "alice@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	f.bob, err = authService.Register(ctx, auth.RegisterInput{Username: "bob", Email: "bob@x.com", Password: "s3cret-pass"})
	require.NoError(t, err)
	f.admin, err = authService.Create(ctx, auth.RegisterInput{Username: "root", Email: "root@x.com", Password: "s3cret-pass"},
		[]sec.Role{sec.RoleUser, sec.RoleAdmin})
	require.NoError(t, err)

	return f
}

func subjectOf(profile *auth.Profile) *sec.Subject {
	return &sec.Subject{ID: profile.ID, Email: profile.Email, Roles: profile.Roles}
}

/*
TestUpdate_OwnerRule verifies the owner-or-admin rule on account edits.
*/
func TestUpdate_OwnerRule(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 1. The owner may rename themselves
	profile, err := f.service.Update(ctx, subjectOf(f.alice), f.alice.ID, UpdateInput{Username: pointer.To("alice2")})
	require.NoError(t, err)
	assert.Equal(t, "alice2", profile.Username)

	// 2. Another user may not
	_, err = f.service.Update(ctx, subjectOf(f.bob), f.alice.ID, UpdateInput{Username: pointer.To("hacked")})
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	// 3. An admin may
	profile, err = f.service.Update(ctx, subjectOf(f.admin), f.alice.ID, UpdateInput{Username: pointer.To("alice3")})
	require.NoError(t, err)
	assert.Equal(t, "alice3", profile.Username)

	// 4. Anonymous callers are rejected before any lookup
	_, err = f.service.Update(ctx, nil, 999, UpdateInput{Username: pointer.To("ghost")})
	assert.Equal(t, apperr.CodeUnauthenticated, apperr.CodeOf(err))
}

func TestUpdate_PrivilegesRequireAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Update(ctx, subjectOf(f.alice), f.alice.ID, UpdateInput{Roles: []sec.Role{sec.RoleAdmin}})
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	_, err = f.service.Update(ctx, subjectOf(f.alice), f.alice.ID, UpdateInput{Active: pointer.To(false)})
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	profile, err := f.service.Update(ctx, subjectOf(f.admin), f.alice.ID, UpdateInput{Roles: []sec.Role{sec.RoleUser, sec.RoleAdmin}})
	require.NoError(t, err)
	assert.ElementsMatch(t, []sec.Role{sec.RoleUser, sec.RoleAdmin}, profile.Roles)
}

func TestUpdate_PasswordIsRehashed(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.Update(ctx, subjectOf(f.alice), f.alice.ID, UpdateInput{Password: pointer.To("n3w-password")})
	require.NoError(t, err)

	stored, err := f.store.FindByID(ctx, f.alice.ID)
	require.NoError(t, err)
	assert.True(t, f.hasher.Verify("n3w-password", stored.PasswordHash))
	assert.False(t, f.hasher.Verify("s3cret-pass", stored.PasswordHash))
}

func TestUpdate_DuplicateUsernameConflicts(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Update(context.Background(), subjectOf(f.alice), f.alice.ID, UpdateInput{Username: pointer.To("bob")})
	assert.Equal(t, apperr.CodeConflict, apperr.CodeOf(err))
}

func TestUpdate_MissingAccount(t *testing.T) {
	f := newFixture(t)

	_, err := f.service.Update(context.Background(), subjectOf(f.admin), 404, UpdateInput{Username: pointer.To("nobody")})
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestSetRoles(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.service.SetRoles(ctx, subjectOf(f.admin), f.bob.ID, nil)
	assert.Equal(t, apperr.CodeInvalidData, apperr.CodeOf(err))

	_, err = f.service.SetRoles(ctx, subjectOf(f.bob), f.bob.ID, []sec.Role{sec.RoleAdmin})
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	profile, err := f.service.SetRoles(ctx, subjectOf(f.admin), f.bob.ID, []sec.Role{sec.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, []sec.Role{sec.RoleAdmin}, profile.Roles)
}

func TestDeactivate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.service.Deactivate(ctx, subjectOf(f.alice), f.bob.ID)
	assert.Equal(t, apperr.CodeForbidden, apperr.CodeOf(err))

	require.NoError(t, f.service.Deactivate(ctx, subjectOf(f.admin), f.bob.ID))

	// The row survives but disappears from public reads
	stored, err := f.store.FindByID(ctx, f.bob.ID)
	require.NoError(t, err)
	assert.False(t, stored.Active)

	_, err = f.service.PublicProfile(ctx, f.bob.ID)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))

	err = f.service.Deactivate(ctx, subjectOf(f.admin), 404)
	assert.Equal(t, apperr.CodeNotFound, apperr.CodeOf(err))
}

func TestPublicProfile_Reputation(t *testing.T) {
	f := newFixture(t)
	f.store.activity[f.alice.ID] = Activity{ReviewCount: 4, Upvotes: 3, Downvotes: 1}

	profile, err := f.service.PublicProfile(context.Background(), f.alice.ID)
	require.NoError(t, err)

	assert.Equal(t, "alice", profile.Username)
	assert.Equal(t, int64(4), profile.ReviewCount)
	assert.Equal(t, int64(2), profile.Reputation.Score)
	assert.InDelta(t, 0.75, profile.Reputation.LikesRate, 1e-9)
}

func TestNewReputation_NoVotes(t *testing.T) {
	reputation := NewReputation(0, 0)
	assert.Zero(t, reputation.LikesRate)
	assert.Zero(t, reputation.Score)
}

func TestList_SearchAndPaging(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	profiles, total, err := f.service.List(ctx, ListFilter{Params: pagination.Params{Page: 1, PageSize: 2}})
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, profiles, 2)

	profiles, total, err = f.service.List(ctx, ListFilter{Search: "BOB", Params: pagination.Params{Page: 1, PageSize: 10}})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, profiles, 1)
	assert.Equal(t, "bob", profiles[0].Username)
}
