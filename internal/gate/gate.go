// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package gate implements request-time route protection for the Grota portals.

One shared gate module is instantiated once per portal, parameterized by scope
and a protected-path matcher — the per-portal middleware is never duplicated.

# Decision Model

Every inbound request moves through a single, terminal decision:

	Unchecked → Allowed | Denied

An unprotected path is Allowed without any token lookup. A protected path is
Allowed only when the scope's cookie carries a token that verifies for that
scope; anything else is Denied. Denied always results in a redirect to the
portal's sign-in path and carries no other side effects.
*/
package gate

import (
	"net/http"
	"path"
	"strings"

	"github.com/grotaveiculos/gateway/internal/platform/ctxutil"
	"github.com/grotaveiculos/gateway/internal/session"
)

// # Portal Definition

// Portal describes one deployed front end guarded by the gate.
type Portal struct {
	// Scope is the session scope this portal authenticates against.
	Scope session.Scope

	// Protected is the glob-style list of request paths requiring a valid
	// session. An empty list is a legitimate configuration — the portal runs
	// open and every path is allowed without a cookie read.
	Protected []string

	// SignInPath is where denied requests are redirected.
	SignInPath string
}

// Gate is the request-time decision point for one portal.
type Gate struct {
	portal Portal
	config session.Config
}

// New constructs a gate for a portal using its scope's resolved session
// configuration.
func New(portal Portal, config session.Config) *Gate {
	return &Gate{portal: portal, config: config}
}

// # Decisions

// Decision is the terminal outcome for a request.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool

	// RedirectTo is the sign-in path; set only when the request is denied.
	RedirectTo string

	// Claims holds the verified session claims for allowed protected paths.
	// Nil for unprotected paths, which never trigger a token lookup.
	Claims *session.Claims
}

/*
Decide evaluates the gate for a request path and cookie jar.

Description: Pure request-time decision. Unprotected paths are allowed with no
cookie read. Protected paths require a cookie whose token verifies for this
portal's scope; a missing cookie, invalid signature, expired token, or
foreign-scope token all deny with a redirect to the sign-in path.

Parameters:
  - request: *http.Request (only the path and cookie jar are consulted).

Returns:
  - Decision: Allowed (optionally with claims) or Denied with RedirectTo.
*/
func (gate *Gate) Decide(request *http.Request) Decision {

	// 1. Unprotected paths short-circuit with no token lookup.
	if !matchesAny(gate.portal.Protected, request.URL.Path) {
		return Decision{Allowed: true}
	}

	// 2. No session cookie means no session.
	tokenString, ok := session.ReadCookie(request, gate.config)
	if !ok {
		return gate.deny()
	}

	// 3. Verification failures (signature, expiry, scope) deny identically.
	claims, err := session.Verify(tokenString, gate.config)
	if err != nil {
		return gate.deny()
	}

	return Decision{Allowed: true, Claims: claims}
}

// deny builds the terminal Denied decision.
func (gate *Gate) deny() Decision {
	return Decision{Allowed: false, RedirectTo: gate.portal.SignInPath}
}

// Middleware applies the gate decision to the request chain.
//
// # Flow
//  1. Run [Gate.Decide] for the request.
//  2. Denied: redirect to the portal sign-in path. Nothing of the original
//     request is forwarded.
//  3. Allowed: inject the verified claims (if any) into the context and
//     forward downstream.
func (gate *Gate) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		decision := gate.Decide(request)

		if !decision.Allowed {
			http.Redirect(writer, request, decision.RedirectTo, http.StatusFound)
			return
		}

		if decision.Claims != nil {
			request = request.WithContext(ctxutil.WithClaims(request.Context(), decision.Claims))
		}

		next.ServeHTTP(writer, request)
	})
}

// # Path Matching

// matchesAny reports whether the request path matches any protected pattern.
//
// A trailing "/*" marks a subtree pattern: "/lojista/*" covers "/lojista" and
// everything below it. Any other pattern is matched with [path.Match]
// semantics against the full path.
func matchesAny(patterns []string, requestPath string) bool {
	for _, pattern := range patterns {
		if matchesOne(pattern, requestPath) {
			return true
		}
	}
	return false
}

func matchesOne(pattern, requestPath string) bool {
	if root, ok := strings.CutSuffix(pattern, "/*"); ok {
		return requestPath == root || strings.HasPrefix(requestPath, root+"/")
	}

	matched, err := path.Match(pattern, requestPath)
	return err == nil && matched
}
