// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package api wires together the HTTP router, middleware chain, and all
gateway handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/gateway are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/grotaveiculos/gateway/internal/gate"
	"github.com/grotaveiculos/gateway/internal/identity"
	"github.com/grotaveiculos/gateway/internal/platform/config"
	"github.com/grotaveiculos/gateway/internal/platform/constants"
	"github.com/grotaveiculos/gateway/internal/platform/middleware"
	"github.com/grotaveiculos/gateway/internal/session"
	"github.com/grotaveiculos/gateway/internal/verification"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all handler sets served by the gateway.
//
// # Usage
//
// New surfaces add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Identity resolves the authenticated principal (/api/auth/me).
	Identity *identity.Handler

	// Verification handles the email-verification and password-reset flow.
	Verification *verification.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers the portal route groups.
//
// Gating order matters: the admin and dealer groups sit behind their own
// gates, the client portal runs open, and the shared API surface identifies
// the caller from whichever portal cookie validates without redirecting.
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, configs session.Configs, gates map[session.Scope]*gate.Gate, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(ctx))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Identify(configs))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Shared API
	// Identity resolution for every portal shell. Authentication is enforced
	// by the handler (401 JSON), not by a redirecting gate.
	r.Route("/api", func(api chi.Router) {
		api.Mount("/auth", h.Identity.Routes())
	})

	// # Verification Flow
	// Out-of-band email-verification / password-reset confirmation pages.
	r.Mount("/confirmacao", h.Verification.Routes())

	// # Portal Route Groups
	// Each portal's pages are forwarded upstream once its gate allows the request.
	if adminGate, exists := gates[session.ScopeAdmin]; exists {
		r.Route("/admin", func(portal chi.Router) {
			portal.Use(adminGate.Middleware)
			portal.Handle("/*", newPortalUpstream(session.ScopeAdmin))
			portal.Handle("/", newPortalUpstream(session.ScopeAdmin))
		})
	}
	if dealerGate, exists := gates[session.ScopeLojista]; exists {
		r.Route("/lojista", func(portal chi.Router) {
			portal.Use(dealerGate.Middleware)
			portal.Handle("/*", newPortalUpstream(session.ScopeLojista))
			portal.Handle("/", newPortalUpstream(session.ScopeLojista))
		})
	}
	if clientGate, exists := gates[session.ScopeCliente]; exists {
		// The client portal is the fallthrough: every path not claimed above.
		clientUpstream := clientGate.Middleware(newPortalUpstream(session.ScopeCliente))
		r.Handle("/*", clientUpstream)
		r.Handle("/", clientUpstream)
	}

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// Router exposes the composed handler, primarily for tests.
func (s *Server) Router() http.Handler { return s.router }

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
