// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package identity

import (
	"context"
	"errors"

	"github.com/grotaveiculos/gateway/internal/session"
)

// ErrPrincipalNotFound is returned when no active portal user exists for a
// subject. The handler maps it to NOT_AUTHENTICATED rather than NOT_FOUND:
// a session whose subject no longer exists is indistinguishable, from the
// portal's point of view, from having no session at all.
var ErrPrincipalNotFound = errors.New("identity: principal not found")

// Store retrieves principals for verified session subjects.
type Store interface {
	/*
		FindBySubject retrieves the portal user for a subject ID within a scope.

		Parameters:
		  - ctx: Context for the lookup.
		  - scope: The portal scope the session was verified for.
		  - subjectID: The subject claim of the verified session token.

		Returns:
		  - *AuthenticatedUser: The principal, with capabilities derived from role.
		  - error: ErrPrincipalNotFound if no matching active user exists.
	*/
	FindBySubject(ctx context.Context, scope session.Scope, subjectID string) (*AuthenticatedUser, error)
}
