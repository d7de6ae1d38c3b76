// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package verification

import (
	"context"
	"sync"
)

// MemoryTokenStore implements [TokenStore] with an in-process map. Used by
// tests and local development when Redis is not available.
type MemoryTokenStore struct {
	mu      sync.RWMutex
	records map[string]Record
}

// NewMemoryTokenStore creates an empty in-memory [TokenStore].
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{records: make(map[string]Record)}
}

func (store *MemoryTokenStore) key(kind Kind, token string) string {
	return string(kind) + ":" + token
}

// Set stores a token record.
func (store *MemoryTokenStore) Set(_ context.Context, kind Kind, token string, record Record) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records[store.key(kind, token)] = record
	return nil
}

// Get retrieves the record bound to a (kind, token) pair.
func (store *MemoryTokenStore) Get(_ context.Context, kind Kind, token string) (*Record, error) {
	store.mu.RLock()
	defer store.mu.RUnlock()

	record, ok := store.records[store.key(kind, token)]
	if !ok {
		return nil, ErrTokenNotFound
	}
	return &record, nil
}

// Delete removes a token after successful use.
func (store *MemoryTokenStore) Delete(_ context.Context, kind Kind, token string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	delete(store.records, store.key(kind, token))
	return nil
}
