// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

// Command gateway is the entry point for the Grota portal gateway.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Resolve per-portal session configs (fatal on missing production secret).
//  7. Wire stores, flows, gates, and HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/grotaveiculos/gateway/internal/api"
	"github.com/grotaveiculos/gateway/internal/gate"
	"github.com/grotaveiculos/gateway/internal/identity"
	"github.com/grotaveiculos/gateway/internal/platform/config"
	"github.com/grotaveiculos/gateway/internal/platform/constants"
	"github.com/grotaveiculos/gateway/internal/platform/migration"
	pgstore "github.com/grotaveiculos/gateway/internal/platform/postgres"
	redisstore "github.com/grotaveiculos/gateway/internal/platform/redis"
	"github.com/grotaveiculos/gateway/internal/session"
	"github.com/grotaveiculos/gateway/internal/verification"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", constants.AppName))
	slog.SetDefault(log)

	log.Info("[Grota] gateway_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", constants.AppName))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Session Configs ────────────────────────────────────────────────
	// A missing production secret must stop the process here, before any
	// request is ever gated with a weak key.
	configs, err := session.Resolve(session.SecretSource{
		AdminSecret:        cfg.AdminSessionSecret,
		LojistaSecret:      cfg.LojistaSessionSecret,
		ClienteSecret:      cfg.ClienteSessionSecret,
		SharedSecret:       cfg.AuthSecret,
		PublicSharedSecret: cfg.PublicAuthSecret,
		Production:         cfg.IsProduction(),
	}, log)
	must(log, err, "resolve session secrets")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	principalStore := identity.NewPostgresStore(pool)
	identityHandler := identity.NewHandler(principalStore)

	tokenStore := verification.NewRedisTokenStore(rdb)
	verificationHandler := verification.NewHandler(verification.NewFlow(tokenStore))

	gates := map[session.Scope]*gate.Gate{
		session.ScopeAdmin: gate.New(gate.Portal{
			Scope: session.ScopeAdmin,
			Protected: []string{
				"/admin/painel/*",
				"/admin/propostas/*",
				"/admin/lojistas/*",
				"/admin/usuarios/*",
				"/admin/relatorios/*",
			},
			SignInPath: "/admin/entrar",
		}, configs[session.ScopeAdmin]),
		session.ScopeLojista: gate.New(gate.Portal{
			Scope: session.ScopeLojista,
			Protected: []string{
				"/lojista/painel/*",
				"/lojista/propostas/*",
				"/lojista/estoque/*",
				"/lojista/clientes/*",
			},
			SignInPath: "/lojista/login",
		}, configs[session.ScopeLojista]),
		// The end-customer site runs open; its gate never reads a cookie.
		session.ScopeCliente: gate.New(gate.Portal{
			Scope:      session.ScopeCliente,
			SignInPath: "/entrar",
		}, configs[session.ScopeCliente]),
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Identity:     identityHandler,
		Verification: verificationHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, configs, gates, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
