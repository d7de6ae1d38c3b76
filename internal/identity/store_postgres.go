// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/grotaveiculos/gateway/internal/session"
)

// PostgresStore implements the Store interface using pgx.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to
// [ErrPrincipalNotFound] to avoid leaking storage details across the boundary.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgreSQL implementation of the Store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// FindBySubject retrieves an active portal user by subject ID and scope.
//
// The scope filter matters: the same person may hold accounts in more than
// one portal, and a dealer session must never resolve to an admin principal.
func (store *PostgresStore) FindBySubject(ctx context.Context, scope session.Scope, subjectID string) (*AuthenticatedUser, error) {
	const query = `
		SELECT id, email, full_name, role
		FROM portal_users
		WHERE id = $1 AND scope = $2 AND deleted_at IS NULL`

	user := &AuthenticatedUser{}
	err := store.pool.QueryRow(ctx, query, subjectID, string(scope)).Scan(
		&user.ID,
		&user.Email,
		&user.FullName,
		&user.Role,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPrincipalNotFound
		}
		return nil, fmt.Errorf("postgres_identity_store_find_failed: %w", err)
	}

	user.Capabilities = CapabilitiesForRole(user.Role)
	return user, nil
}
