// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package identity resolves the authenticated principal behind a verified session.

Architecture:

  - AuthenticatedUser: the principal shape shared by the portal shells.
  - Store: persistence interface with PostgreSQL and in-memory implementations.
  - Handler: the server side, GET /api/auth/me behind the route gate.
  - Resolver: the client side used by each portal shell, with in-flight
    deduplication and stale-response discarding.

The package never mints or validates session tokens; it trusts the claims the
gate has already verified and turns a subject ID into a full principal.
*/
package identity

import "strings"

// # Roles

// Role names as stored in portal_users. Capability flags for the dealer
// portal's UI are derived from these server-side so the portals never
// hard-code permission logic.
const (
	RoleAdmin    = "admin"
	RoleGerente  = "gerente"
	RoleVendedor = "vendedor"
)

// Capabilities are the coarse action flags a portal shell uses to show or
// hide controls. Enforcement still happens server-side on every call.
type Capabilities struct {
	CanView   bool `json:"can_view"`
	CanCreate bool `json:"can_create"`
	CanUpdate bool `json:"can_update"`
	CanDelete bool `json:"can_delete"`
}

// AuthenticatedUser is the resolved principal for a verified session.
type AuthenticatedUser struct {
	ID           string       `json:"id"`
	Email        string       `json:"email"`
	FullName     string       `json:"full_name"`
	Role         string       `json:"role"`
	Capabilities Capabilities `json:"capabilities"`
}

/*
CapabilitiesForRole derives the action flags for a role.

Description: admins and managers get the full set, sellers can view and
create, every other (or unknown) role is read-only. Unknown roles degrade
to read-only rather than erroring so a new role rolled out in the database
before this service is redeployed cannot lock its users out.

Parameters:
  - role: string (case-insensitive role name)

Returns:
  - Capabilities: The derived flag set
*/
func CapabilitiesForRole(role string) Capabilities {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case RoleAdmin, RoleGerente:
		return Capabilities{CanView: true, CanCreate: true, CanUpdate: true, CanDelete: true}
	case RoleVendedor:
		return Capabilities{CanView: true, CanCreate: true}
	default:
		return Capabilities{CanView: true}
	}
}
