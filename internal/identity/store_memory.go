// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package identity

import (
	"context"
	"sync"

	"github.com/grotaveiculos/gateway/internal/session"
)

// MemoryStore is an in-memory Store implementation for tests and local runs.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]AuthenticatedUser
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: make(map[string]AuthenticatedUser)}
}

func memoryKey(scope session.Scope, subjectID string) string {
	return string(scope) + ":" + subjectID
}

// Put registers a principal under a scope. Capabilities are derived from the
// role at insertion so reads mirror the PostgreSQL implementation.
func (store *MemoryStore) Put(scope session.Scope, user AuthenticatedUser) {
	user.Capabilities = CapabilitiesForRole(user.Role)

	store.mu.Lock()
	defer store.mu.Unlock()
	store.users[memoryKey(scope, user.ID)] = user
}

// FindBySubject retrieves a principal by subject ID and scope.
func (store *MemoryStore) FindBySubject(ctx context.Context, scope session.Scope, subjectID string) (*AuthenticatedUser, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	user, exists := store.users[memoryKey(scope, subjectID)]
	if !exists {
		return nil, ErrPrincipalNotFound
	}

	found := user
	return &found, nil
}
