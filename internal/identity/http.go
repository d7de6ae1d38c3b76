// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package identity

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/grotaveiculos/gateway/internal/platform/apperr"
	requestutil "github.com/grotaveiculos/gateway/internal/platform/request"
	"github.com/grotaveiculos/gateway/internal/platform/respond"
)

// Handler serves the authenticated-identity endpoint.
type Handler struct {
	store Store
}

// NewHandler creates the identity HTTP handler.
func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// Routes returns the router for the /api/auth mount point.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/me", handler.me)
	return router
}

/*
me handles GET /api/auth/me.

Description: Resolves the principal for the session the gate has already
verified. The subject is read from the context claims, never from the
request body or query, so a caller cannot ask about anyone else.

Returns:
  - 200 {"data": {"user": {...}}} on success
  - 401 NOT_AUTHENTICATED when no claims are present or the subject no
    longer maps to an active portal user
  - 503 UPSTREAM_UNAVAILABLE when the principal store cannot be reached
*/
func (handler *Handler) me(writer http.ResponseWriter, request *http.Request) {
	// 1. The gate injects claims; their absence means the route was mounted
	// outside a gated group, which we treat the same as no session.
	claims, err := requestutil.RequiredClaims(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	// 2. Resolve the principal.
	user, err := handler.store.FindBySubject(request.Context(), claims.Scope, claims.SubjectID)
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			respond.Error(writer, request, apperr.NotAuthenticated())
			return
		}
		respond.Error(writer, request, apperr.UpstreamUnavailable(err))
		return
	}

	respond.OK(writer, map[string]*AuthenticatedUser{"user": user})
}
