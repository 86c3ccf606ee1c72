// Copyright (c) 2026 RateUp. All rights reserved.

package account

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/nifoox/rateup/internal/platform/apperr"
	"github.com/nifoox/rateup/internal/users/auth"
)

// memoryAccounts backs both [AccountRepository] and [auth.UserRepository],
// so tests can create accounts through the real auth service.
type memoryAccounts struct {
	mu       sync.Mutex
	nextID   int64
	users    map[int64]auth.User
	activity map[int64]Activity
}

func newMemoryAccounts() *memoryAccounts {
	return &memoryAccounts{
		users:    make(map[int64]auth.User),
		activity: make(map[int64]Activity),
	}
}

func (store *memoryAccounts) Create(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if err := store.checkUnique(user); err != nil {
		return err
	}

	store.nextID++
	user.ID = store.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	store.users[user.ID] = *user
	return nil
}

func (store *memoryAccounts) checkUnique(user *auth.User) error {
	for id, existing := range store.users {
		if id == user.ID {
			continue
		}
		if existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Email is already registered")
		}
	}
	return nil
}

func (store *memoryAccounts) FindByID(_ context.Context, id int64) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (store *memoryAccounts) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	return store.find(func(user auth.User) bool { return strings.EqualFold(user.Email, email) })
}

func (store *memoryAccounts) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	return store.find(func(user auth.User) bool { return user.Username == username })
}

func (store *memoryAccounts) find(match func(auth.User) bool) (*auth.User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, user := range store.users {
		if match(user) {
			return &user, nil
		}
	}
	return nil, apperr.NotFound("User")
}

func (store *memoryAccounts) List(_ context.Context, filter ListFilter) ([]*auth.User, int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	var matched []*auth.User
	for _, user := range store.users {
		if filter.Search == "" ||
			strings.Contains(strings.ToLower(user.Username), strings.ToLower(filter.Search)) ||
			strings.Contains(strings.ToLower(user.Email), strings.ToLower(filter.Search)) {
			copied := user
			matched = append(matched, &copied)
		}
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })

	total := len(matched)
	start := min(filter.Offset(), total)
	end := min(start+filter.Limit(), total)
	return matched[start:end], total, nil
}

func (store *memoryAccounts) Update(_ context.Context, user *auth.User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.users[user.ID]; !ok {
		return apperr.NotFound("User")
	}
	if err := store.checkUnique(user); err != nil {
		return err
	}

	user.UpdatedAt = time.Now()
	store.users[user.ID] = *user
	return nil
}

func (store *memoryAccounts) Deactivate(_ context.Context, id int64) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	user, ok := store.users[id]
	if !ok {
		return apperr.NotFound("User")
	}
	user.Active = false
	store.users[id] = user
	return nil
}

func (store *memoryAccounts) Activity(_ context.Context, userID int64) (Activity, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	return store.activity[userID], nil
}
