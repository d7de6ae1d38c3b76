// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package session_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/grotaveiculos/gateway/internal/session"
)

/*
TestReadCookie_Present verifies that the codec reads the scope's named cookie.
*/
func TestReadCookie_Present(t *testing.T) {
	cfg := lojistaConfig("secret")

	request := httptest.NewRequest(http.MethodGet, "/lojista/dashboard", nil)
	request.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: "opaque-token"})

	value, ok := session.ReadCookie(request, cfg)

	assert.True(t, ok)
	assert.Equal(t, "opaque-token", value)
}

/*
TestReadCookie_AbsentAndEmpty verifies that absent and empty cookie content
are treated identically — both yield no token.
*/
func TestReadCookie_AbsentAndEmpty(t *testing.T) {
	cfg := lojistaConfig("secret")

	// 1. No cookie at all
	request := httptest.NewRequest(http.MethodGet, "/lojista/dashboard", nil)
	value, ok := session.ReadCookie(request, cfg)
	assert.False(t, ok)
	assert.Empty(t, value)

	// 2. Cookie present but empty
	request = httptest.NewRequest(http.MethodGet, "/lojista/dashboard", nil)
	request.AddCookie(&http.Cookie{Name: cfg.CookieName, Value: ""})
	value, ok = session.ReadCookie(request, cfg)
	assert.False(t, ok)
	assert.Empty(t, value)
}

/*
TestReadCookie_ForeignScopeCookie verifies that a cookie issued for another
portal is not picked up by this scope's codec.
*/
func TestReadCookie_ForeignScopeCookie(t *testing.T) {
	cfg := lojistaConfig("secret")

	request := httptest.NewRequest(http.MethodGet, "/lojista/dashboard", nil)
	request.AddCookie(&http.Cookie{Name: "grota.admin.session", Value: "admin-token"})

	_, ok := session.ReadCookie(request, cfg)
	assert.False(t, ok)
}

/*
TestNewCookie_Spec verifies the cookie shape: configured name, max-age, and
the hardened transport attributes.
*/
func TestNewCookie_Spec(t *testing.T) {
	cfg := session.Config{
		Scope:      session.ScopeAdmin,
		CookieName: "grota.admin.session",
		Secret:     "secret",
		MaxAge:     7 * 24 * time.Hour,
	}

	cookie := session.NewCookie(cfg, "opaque-token")

	assert.Equal(t, "grota.admin.session", cookie.Name)
	assert.Equal(t, "opaque-token", cookie.Value)
	assert.Equal(t, 604800, cookie.MaxAge)
	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
}

/*
TestClearCookie verifies that the clearing cookie expires immediately.
*/
func TestClearCookie(t *testing.T) {
	cookie := session.ClearCookie(lojistaConfig("secret"))

	assert.Empty(t, cookie.Value)
	assert.Negative(t, cookie.MaxAge)
}
