// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package session

import (
	"fmt"
	"log/slog"
)

// # Secret Resolution

// insecureDevSecret is the fixed fallback used when no secret is configured
// outside production. It is intentionally recognizable in logs and tokens so
// a misconfigured staging box is obvious on inspection.
const insecureDevSecret = "grota-insecure-dev-secret"

// SecretSource carries the raw secret candidates read from process
// configuration. main builds it from the parsed environment; no component
// below this point reads ambient configuration directly.
type SecretSource struct {
	// AdminSecret, LojistaSecret, ClienteSecret are the scope-specific secrets.
	AdminSecret   string
	LojistaSecret string
	ClienteSecret string

	// SharedSecret is the cross-portal fallback (GROTA_AUTH_SECRET).
	SharedSecret string

	// PublicSharedSecret is the public-prefixed variant historically exposed to
	// browser bundles. It is honored only outside production.
	PublicSharedSecret string

	// Production gates the hard-failure and fallback behavior below.
	Production bool
}

/*
Resolve builds one immutable [Config] per portal scope from the secret source.

Description: Applies the documented fallback order per scope — scope-specific
secret, then the shared secret, then (outside production only) the
public-prefixed variant, then the fixed insecure development fallback.

Failure semantics: a missing secret in production is a configuration error and
resolution fails outright. A missing production secret must never silently
downgrade to an insecure fallback.

Parameters:
  - source: SecretSource with the raw candidates and environment flag.
  - logger: Structured logger; emits a warning whenever the insecure fallback is used.

Returns:
  - Configs: One resolved Config per scope; identical for the process lifetime.
  - error: Configuration failure (production scope without any secret).
*/
func Resolve(source SecretSource, logger *slog.Logger) (Configs, error) {
	perScope := map[Scope]string{
		ScopeAdmin:   source.AdminSecret,
		ScopeLojista: source.LojistaSecret,
		ScopeCliente: source.ClienteSecret,
	}

	configs := make(Configs, len(perScope))

	for _, scope := range Scopes() {
		secret, err := resolveSecret(scope, perScope[scope], source, logger)
		if err != nil {
			return nil, err
		}

		configs[scope] = Config{
			Scope:      scope,
			CookieName: cookieNameFor(scope),
			Secret:     secret,
			MaxAge:     maxAgeFor(scope),
		}
	}

	return configs, nil
}

// resolveSecret applies the fallback chain for a single scope.
func resolveSecret(scope Scope, scopeSecret string, source SecretSource, logger *slog.Logger) (string, error) {

	// 1. Scope-specific secret always wins.
	if scopeSecret != "" {
		return scopeSecret, nil
	}

	// 2. Shared cross-portal secret.
	if source.SharedSecret != "" {
		return source.SharedSecret, nil
	}

	// 3. Public-prefixed variant. Browser-exposed, so never trusted in production.
	if !source.Production && source.PublicSharedSecret != "" {
		logger.Warn("session_secret_public_variant_in_use",
			slog.String("scope", string(scope)),
		)
		return source.PublicSharedSecret, nil
	}

	// 4. In production an unresolved secret is fatal for the caller.
	if source.Production {
		return "", fmt.Errorf("session: no signing secret configured for scope %q in production", scope)
	}

	// 5. Development fallback, loudly announced.
	logger.Warn("session_secret_insecure_fallback_in_use",
		slog.String("scope", string(scope)),
	)
	return insecureDevSecret, nil
}
