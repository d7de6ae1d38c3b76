// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package api_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grotaveiculos/gateway/internal/api"
	"github.com/grotaveiculos/gateway/internal/gate"
	"github.com/grotaveiculos/gateway/internal/identity"
	"github.com/grotaveiculos/gateway/internal/platform/config"
	"github.com/grotaveiculos/gateway/internal/platform/constants"
	"github.com/grotaveiculos/gateway/internal/session"
	"github.com/grotaveiculos/gateway/internal/verification"
)

const testSecret = "server-test-secret"

func testConfigs() session.Configs {
	return session.Configs{
		session.ScopeAdmin: {
			Scope:      session.ScopeAdmin,
			CookieName: constants.AdminSessionCookie,
			Secret:     testSecret,
			MaxAge:     constants.AdminSessionMaxAge,
		},
		session.ScopeLojista: {
			Scope:      session.ScopeLojista,
			CookieName: constants.LojistaSessionCookie,
			Secret:     testSecret,
			MaxAge:     constants.LojistaSessionMaxAge,
		},
		session.ScopeCliente: {
			Scope:      session.ScopeCliente,
			CookieName: constants.ClienteSessionCookie,
			Secret:     testSecret,
			MaxAge:     constants.ClienteSessionMaxAge,
		},
	}
}

func testGates(configs session.Configs) map[session.Scope]*gate.Gate {
	return map[session.Scope]*gate.Gate{
		session.ScopeAdmin: gate.New(gate.Portal{
			Scope:      session.ScopeAdmin,
			Protected:  []string{"/admin/painel/*", "/admin/propostas/*", "/admin/usuarios/*"},
			SignInPath: "/admin/entrar",
		}, configs[session.ScopeAdmin]),
		session.ScopeLojista: gate.New(gate.Portal{
			Scope:      session.ScopeLojista,
			Protected:  []string{"/lojista/painel/*", "/lojista/propostas/*", "/lojista/estoque/*"},
			SignInPath: "/lojista/login",
		}, configs[session.ScopeLojista]),
		session.ScopeCliente: gate.New(gate.Portal{
			Scope:      session.ScopeCliente,
			SignInPath: "/entrar",
		}, configs[session.ScopeCliente]),
	}
}

func signToken(t *testing.T, scope session.Scope, subjectID string) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subjectID,
		"scp": string(scope),
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func newTestServer(t *testing.T) (http.Handler, *identity.MemoryStore) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &config.Config{ServerPort: "0", Environment: "development"}
	configs := testConfigs()

	store := identity.NewMemoryStore()
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{}, logger)

	server := api.NewServer(context.Background(), cfg, logger, configs, testGates(configs), api.Handlers{
		Liveness:     liveness,
		Readiness:    readiness,
		Identity:     identity.NewHandler(store),
		Verification: verification.NewHandler(verification.NewFlow(verification.NewMemoryTokenStore())),
	})
	return server.Router(), store
}

func TestServer_Health(t *testing.T) {
	router, _ := newTestServer(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
}

/*
TestServer_AdminGateRedirects verifies that an anonymous hit on a protected
admin page bounces to the admin sign-in path.
*/
func TestServer_AdminGateRedirects(t *testing.T) {
	router, _ := newTestServer(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin/propostas", nil))

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/admin/entrar", recorder.Header().Get("Location"))
}

/*
TestServer_DealerCookiePassesGate verifies that a valid dealer session reaches
the upstream placeholder.
*/
func TestServer_DealerCookiePassesGate(t *testing.T) {
	router, _ := newTestServer(t)

	request := httptest.NewRequest(http.MethodGet, "/lojista/painel", nil)
	request.AddCookie(&http.Cookie{
		Name:  constants.LojistaSessionCookie,
		Value: signToken(t, session.ScopeLojista, "u-7"),
	})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "lojista", envelope.Data["portal"])
}

/*
TestServer_AdminCookieRejectedOnDealerPortal verifies scope isolation across
portals at the routing layer.
*/
func TestServer_AdminCookieRejectedOnDealerPortal(t *testing.T) {
	router, _ := newTestServer(t)

	request := httptest.NewRequest(http.MethodGet, "/lojista/painel", nil)
	request.AddCookie(&http.Cookie{
		Name:  constants.LojistaSessionCookie,
		Value: signToken(t, session.ScopeAdmin, "u-7"),
	})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, "/lojista/login", recorder.Header().Get("Location"))
}

/*
TestServer_ClientPortalRunsOpen verifies that the client portal fallthrough
serves anonymous requests.
*/
func TestServer_ClientPortalRunsOpen(t *testing.T) {
	router, _ := newTestServer(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/veiculos/gol-2019", nil))

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "cliente", envelope.Data["portal"])
}

/*
TestServer_AuthMe verifies the shared identity endpoint end to end: cookie in,
principal out.
*/
func TestServer_AuthMe(t *testing.T) {
	router, store := newTestServer(t)
	store.Put(session.ScopeLojista, identity.AuthenticatedUser{
		ID:       "u-7",
		Email:    "u-7@grota.com.br",
		FullName: "Dealer Seven",
		Role:     "gerente",
	})

	request := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	request.AddCookie(&http.Cookie{
		Name:  constants.LojistaSessionCookie,
		Value: signToken(t, session.ScopeLojista, "u-7"),
	})
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusOK, recorder.Code)

	var envelope struct {
		Data struct {
			User identity.AuthenticatedUser `json:"user"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &envelope))
	assert.Equal(t, "Dealer Seven", envelope.Data.User.FullName)
}

/*
TestServer_AuthMeAnonymous verifies that the identity endpoint answers 401
JSON instead of redirecting.
*/
func TestServer_AuthMeAnonymous(t *testing.T) {
	router, _ := newTestServer(t)

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/api/auth/me", nil))

	require.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.Empty(t, recorder.Header().Get("Location"))
}
