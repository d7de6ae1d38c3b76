// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package session implements the shared session model for the Grota portals.

Every portal (administrative back-office, dealer portal, end-customer site)
carries a signed, scoped session token in a cookie. This package owns the three
pieces every portal shares:

  - Scope & Config: Which portal a session belongs to and how its cookie is shaped.
  - Resolution: Mapping process configuration onto one immutable [Config] per scope.
  - Verification: Stateless signature/expiry checking of the bearer token.

# Scope Isolation

A cookie issued for one scope must never authenticate requests gated for a
different scope. The scope tag is embedded in the signed token and checked on
every verification, so isolation holds even if two scopes were ever
misconfigured to share a secret.
*/
package session

import (
	"errors"
	"time"

	"github.com/grotaveiculos/gateway/internal/platform/constants"
)

// # Portal Scopes

// Scope identifies which portal a session or token belongs to.
type Scope string

const (
	// ScopeAdmin is the administrative back-office.
	ScopeAdmin Scope = "admin"

	// ScopeLojista is the dealer/partner portal.
	ScopeLojista Scope = "lojista"

	// ScopeCliente is the end-customer site.
	ScopeCliente Scope = "cliente"
)

// ErrUnknownScope is returned when a scope outside the defined enum is used.
var ErrUnknownScope = errors.New("session: unknown scope")

// Valid reports whether the scope is one of the defined enum values.
func (s Scope) Valid() bool {
	switch s {
	case ScopeAdmin, ScopeLojista, ScopeCliente:
		return true
	}
	return false
}

// Scopes returns all defined portal scopes.
func Scopes() []Scope {
	return []Scope{ScopeAdmin, ScopeLojista, ScopeCliente}
}

// # Per-Scope Configuration

// Config is the immutable per-scope session record: cookie parameters and the
// signing secret. Constructed once at process start by [Resolve] and treated
// as read-only by every other component.
type Config struct {
	// Scope tags which portal this configuration belongs to.
	Scope Scope

	// CookieName is the session cookie carried by this portal (e.g. "grota.admin.session").
	CookieName string

	// Secret is the HMAC signing secret used to verify session tokens.
	Secret string

	// MaxAge is the cookie and token lifetime for this scope.
	MaxAge time.Duration
}

// Configs holds the resolved configuration for every portal scope.
type Configs map[Scope]Config

// For returns the configuration for the given scope.
//
// # Returns
//   - Config: The immutable per-scope record.
//   - error: ErrUnknownScope if the scope is outside the enum or unresolved.
func (c Configs) For(scope Scope) (Config, error) {
	cfg, ok := c[scope]
	if !ok {
		return Config{}, ErrUnknownScope
	}
	return cfg, nil
}

// cookieNameFor maps a scope to its well-known cookie name.
func cookieNameFor(scope Scope) string {
	switch scope {
	case ScopeAdmin:
		return constants.AdminSessionCookie
	case ScopeLojista:
		return constants.LojistaSessionCookie
	case ScopeCliente:
		return constants.ClienteSessionCookie
	}
	return ""
}

// maxAgeFor maps a scope to its session lifetime.
func maxAgeFor(scope Scope) time.Duration {
	switch scope {
	case ScopeAdmin:
		return constants.AdminSessionMaxAge
	case ScopeLojista:
		return constants.LojistaSessionMaxAge
	case ScopeCliente:
		return constants.ClienteSessionMaxAge
	}
	return 0
}
