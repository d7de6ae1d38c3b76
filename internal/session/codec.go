// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package session

import "net/http"

// # Cookie Codec

/*
ReadCookie extracts the session token for a scope from the request's cookie jar.

Description: Reads the cookie named by cfg.CookieName. Absent and malformed
cookie content are treated identically — both yield ("", false). Judging the
validity of the token itself is deferred to [Verify].

Parameters:
  - request: *http.Request carrying the inbound cookie jar.
  - cfg: The scope's resolved configuration.

Returns:
  - string: The opaque session token.
  - bool: false when the cookie is absent or empty.
*/
func ReadCookie(request *http.Request, cfg Config) (string, bool) {
	cookie, err := request.Cookie(cfg.CookieName)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// NewCookie builds the session cookie for a scope with its configured name and
// max-age. The value is the opaque signed token handed back by the upstream
// issuer at login.
func NewCookie(cfg Config, value string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cfg.MaxAge.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// ClearCookie builds an expired cookie that removes the scope's session from
// the client.
func ClearCookie(cfg Config) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}
