// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// # Token Verification

// ErrInvalidToken is the single failure value for token verification. Every
// malformed token, bad signature, expired timestamp, or scope mismatch maps to
// it; callers branch on validity, never on the underlying jwt error.
var ErrInvalidToken = errors.New("session: invalid token")

// Claims is the verified payload of a session token.
//
// The gateway only ever consumes session tokens — they are minted upstream at
// login and handed back in the cookie. See cmd/tokengen for the development
// issuer used in local environments.
type Claims struct {
	// SubjectID identifies the authenticated subject.
	SubjectID string

	// Scope is the portal the token was issued for.
	Scope Scope

	// IssuedAt is when the external issuer signed the token.
	IssuedAt time.Time

	// ExpiresAt is when the token stops authenticating requests.
	ExpiresAt time.Time
}

// wireClaims is the on-the-wire JWT shape. The scope tag rides in a short
// custom claim next to the registered set.
type wireClaims struct {
	jwt.RegisteredClaims

	Scope string `json:"scp"`
}

/*
Verify checks the signature, expiry, and scope of a session token.

Description: Stateless and total — it never panics and surfaces every failure
mode as [ErrInvalidToken]. Expiry is evaluated against verification time, not
any token-embedded clock. Only HMAC-SHA256 signatures are accepted; tokens
claiming any other algorithm are rejected to prevent algorithm confusion.

The token's embedded scope must equal cfg.Scope. This enforces scope isolation
even if two portals were ever misconfigured to share a signing secret.

Parameters:
  - tokenString: The opaque signed token read from the session cookie.
  - cfg: The scope's resolved configuration (secret + expected scope).

Returns:
  - *Claims: Verified claims on success.
  - error: ErrInvalidToken (wrapped) on any verification failure.
*/
func Verify(tokenString string, cfg Config) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("%w: empty token", ErrInvalidToken)
	}

	parsed, err := jwt.ParseWithClaims(
		tokenString,
		&wireClaims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return []byte(cfg.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err.Error())
	}

	wire, ok := parsed.Claims.(*wireClaims)
	if !ok || !parsed.Valid {
		return nil, fmt.Errorf("%w: malformed claims", ErrInvalidToken)
	}

	// A token without a subject authenticates nobody.
	if wire.Subject == "" {
		return nil, fmt.Errorf("%w: missing subject", ErrInvalidToken)
	}

	// Scope isolation: reject tokens minted for a different portal.
	if Scope(wire.Scope) != cfg.Scope {
		return nil, fmt.Errorf("%w: scope mismatch", ErrInvalidToken)
	}

	claims := &Claims{
		SubjectID: wire.Subject,
		Scope:     Scope(wire.Scope),
		ExpiresAt: wire.ExpiresAt.Time,
	}
	if wire.IssuedAt != nil {
		claims.IssuedAt = wire.IssuedAt.Time
	}

	return claims, nil
}
