// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package middleware

import (
	"net/http"

	"github.com/grotaveiculos/gateway/internal/platform/ctxutil"
	"github.com/grotaveiculos/gateway/internal/session"
)

// Identify attaches verified session claims to the context when any portal's
// session cookie on the request validates.
//
// # Behavior
//
// Best-effort and non-blocking: a request without a valid cookie proceeds
// anonymously, and handlers that require a session enforce it themselves.
// Portal scopes are tried in a fixed order; each scope's token is verified
// against that scope's own config, so a cookie smuggled across portals still
// fails the embedded-scope check.
//
// Route gating with redirects is a separate concern and lives in the gate
// package; Identify exists for the API surface shared by all portals.
func Identify(configs session.Configs) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {

			for _, scope := range session.Scopes() {
				cfg, exists := configs[scope]
				if !exists {
					continue
				}

				tokenValue, present := session.ReadCookie(request, cfg)
				if !present {
					continue
				}

				claims, err := session.Verify(tokenValue, cfg)
				if err != nil {
					// Invalid cookie for this scope; another portal's may still verify.
					continue
				}

				ctx := ctxutil.WithClaims(request.Context(), claims)
				next.ServeHTTP(writer, request.WithContext(ctx))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
