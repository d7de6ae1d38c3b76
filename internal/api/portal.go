// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package api

import (
	"net/http"

	"github.com/grotaveiculos/gateway/internal/platform/respond"
	"github.com/grotaveiculos/gateway/internal/session"
)

// newPortalUpstream returns the handler that stands in for the portal's
// upstream application once the gate has allowed the request.
//
// Page rendering belongs to the separately deployed portal front ends; the
// gateway only answers with the routing decision it made. A reverse proxy to
// the real upstreams slots in here without touching the gates.
func newPortalUpstream(scope session.Scope) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		respond.OK(writer, map[string]string{
			"portal": string(scope),
			"path":   request.URL.Path,
		})
	})
}
