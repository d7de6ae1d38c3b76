// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package session_test

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grotaveiculos/gateway/internal/session"
)

// signToken mints a test token the way the upstream issuer does: HS256 with
// the scope riding in the "scp" claim.
func signToken(t *testing.T, secret, subject string, scope session.Scope, issuedAt, expiresAt time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": subject,
		"scp": string(scope),
		"iat": issuedAt.Unix(),
		"exp": expiresAt.Unix(),
	})

	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func lojistaConfig(secret string) session.Config {
	return session.Config{
		Scope:      session.ScopeLojista,
		CookieName: "grota.lojista.session",
		Secret:     secret,
		MaxAge:     7 * 24 * time.Hour,
	}
}

/*
TestVerify_ValidToken verifies that a well-formed, unexpired token signed with
the scope's secret yields matching claims.
*/
func TestVerify_ValidToken(t *testing.T) {
	cfg := lojistaConfig("lojista-secret")
	issuedAt := time.Now().Add(-time.Minute).Truncate(time.Second)
	expiresAt := time.Now().Add(time.Hour).Truncate(time.Second)

	tokenString := signToken(t, cfg.Secret, "seller-42", session.ScopeLojista, issuedAt, expiresAt)

	claims, err := session.Verify(tokenString, cfg)

	require.NoError(t, err)
	assert.Equal(t, "seller-42", claims.SubjectID)
	assert.Equal(t, session.ScopeLojista, claims.Scope)
	assert.Equal(t, issuedAt.Unix(), claims.IssuedAt.Unix())
	assert.Equal(t, expiresAt.Unix(), claims.ExpiresAt.Unix())
}

/*
TestVerify_ExpiredToken verifies that expiry is judged against verification
time: a correctly signed token past its exp is invalid.
*/
func TestVerify_ExpiredToken(t *testing.T) {
	cfg := lojistaConfig("lojista-secret")
	tokenString := signToken(t, cfg.Secret, "seller-42", session.ScopeLojista,
		time.Now().Add(-2*time.Hour), time.Now().Add(-time.Hour))

	claims, err := session.Verify(tokenString, cfg)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

/*
TestVerify_WrongSecret verifies that a signature produced with a different
secret is rejected.
*/
func TestVerify_WrongSecret(t *testing.T) {
	cfg := lojistaConfig("lojista-secret")
	tokenString := signToken(t, "another-secret", "seller-42", session.ScopeLojista,
		time.Now(), time.Now().Add(time.Hour))

	claims, err := session.Verify(tokenString, cfg)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

/*
TestVerify_ScopeMismatch verifies scope isolation: a token minted for the
dealer portal never authenticates against the admin scope, even when both
scopes share a secret.
*/
func TestVerify_ScopeMismatch(t *testing.T) {
	adminCfg := session.Config{
		Scope:      session.ScopeAdmin,
		CookieName: "grota.admin.session",
		Secret:     "shared-secret",
		MaxAge:     7 * 24 * time.Hour,
	}

	// Signed with the SAME secret but tagged for the lojista scope.
	tokenString := signToken(t, adminCfg.Secret, "seller-42", session.ScopeLojista,
		time.Now(), time.Now().Add(time.Hour))

	claims, err := session.Verify(tokenString, adminCfg)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

/*
TestVerify_MalformedToken verifies that garbage input maps to ErrInvalidToken
rather than panicking or leaking parser errors.
*/
func TestVerify_MalformedToken(t *testing.T) {
	cfg := lojistaConfig("lojista-secret")

	for _, tokenString := range []string{"", "not-a-jwt", "a.b.c", "?????"} {
		claims, err := session.Verify(tokenString, cfg)
		assert.Nil(t, claims)
		assert.ErrorIs(t, err, session.ErrInvalidToken)
	}
}

/*
TestVerify_MissingSubject verifies that a signed token without a subject claim
authenticates nobody.
*/
func TestVerify_MissingSubject(t *testing.T) {
	cfg := lojistaConfig("lojista-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"scp": string(session.ScopeLojista),
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	claims, err := session.Verify(signed, cfg)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}

/*
TestVerify_MissingExpiry verifies that tokens without an exp claim are
rejected — sessions must always have a bounded lifetime.
*/
func TestVerify_MissingExpiry(t *testing.T) {
	cfg := lojistaConfig("lojista-secret")

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "seller-42",
		"scp": string(session.ScopeLojista),
	})
	signed, err := token.SignedString([]byte(cfg.Secret))
	require.NoError(t, err)

	claims, err := session.Verify(signed, cfg)

	assert.Nil(t, claims)
	assert.ErrorIs(t, err, session.ErrInvalidToken)
}
