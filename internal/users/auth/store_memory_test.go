// Copyright (c) 2026 RateUp. All rights reserved.

package auth

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nifoox/rateup/internal/platform/apperr"
)

// memoryUsers is an in-process [UserRepository] with the same uniqueness
// rules as the users table.
type memoryUsers struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*User
	err    error
}

func newMemoryUsers() *memoryUsers {
	return &memoryUsers{users: make(map[int64]*User)}
}

// put stores a credential as is, bypassing request validation.
func (store *memoryUsers) put(user User) *User {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.nextID++
	user.ID = store.nextID
	store.users[user.ID] = &user
	return &user
}

func (store *memoryUsers) Create(_ context.Context, user *User) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return store.err
	}
	for _, existing := range store.users {
		if existing.Username == user.Username {
			return apperr.Conflict("Username is already taken")
		}
		if strings.EqualFold(existing.Email, user.Email) {
			return apperr.Conflict("Email is already registered")
		}
	}

	now := time.Now()
	store.nextID++
	user.ID = store.nextID
	user.CreatedAt, user.UpdatedAt = now, now

	stored := *user
	store.users[user.ID] = &stored
	return nil
}

func (store *memoryUsers) FindByID(_ context.Context, id int64) (*User, error) {
	return store.find(func(user *User) bool { return user.ID == id })
}

func (store *memoryUsers) FindByEmail(_ context.Context, email string) (*User, error) {
	return store.find(func(user *User) bool { return strings.EqualFold(user.Email, email) })
}

func (store *memoryUsers) FindByUsername(_ context.Context, username string) (*User, error) {
	return store.find(func(user *User) bool { return user.Username == username })
}

func (store *memoryUsers) find(match func(*User) bool) (*User, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if store.err != nil {
		return nil, store.err
	}
	for _, user := range store.users {
		if match(user) {
			found := *user
			return &found, nil
		}
	}
	return nil, apperr.NotFound("User")
}
