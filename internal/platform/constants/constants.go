// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package constants provides centralized, immutable values for the portal gateway.

It defines default timeouts, rate limits, and cross-cutting keys that are shared
between the different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Sessions: Cookie names and lifetimes per portal scope.
  - Verification: Token lifetimes for the out-of-band confirmation flow.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "grota-gateway"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # Session Cookies

const (
	// AdminSessionCookie is the session cookie name for the administrative back-office.
	AdminSessionCookie = "grota.admin.session"

	// LojistaSessionCookie is the session cookie name for the dealer portal.
	LojistaSessionCookie = "grota.lojista.session"

	// ClienteSessionCookie is the session cookie name for the end-customer site.
	ClienteSessionCookie = "grota.cliente.session"

	// AdminSessionMaxAge is the administrative session lifetime (7 days).
	AdminSessionMaxAge = 7 * 24 * time.Hour

	// LojistaSessionMaxAge is the dealer portal session lifetime (7 days).
	LojistaSessionMaxAge = 7 * 24 * time.Hour

	// ClienteSessionMaxAge is the end-customer session lifetime (30 days).
	// Longer-lived because customers revisit sporadically during a proposal.
	ClienteSessionMaxAge = 30 * 24 * time.Hour
)

// # Verification Tokens

const (
	// EmailVerificationTTL is how long an email confirmation token remains valid.
	// Long-lived (24 hours) as users might not check email immediately.
	EmailVerificationTTL = 24 * time.Hour

	// PasswordResetTTL is how long a password reset token remains valid.
	// Short-lived (1 hour) for security.
	PasswordResetTTL = 1 * time.Hour

	// VerificationRecordGrace is how much longer than its logical expiry a
	// verification record is retained in Redis. The grace window lets the flow
	// report "expired" instead of "invalid" for recently lapsed tokens.
	VerificationRecordGrace = 24 * time.Hour
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldMessage = "message"
	FieldStatus  = "status"
	FieldUser    = "user"
	FieldResult  = "result"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	RedisPrefixVerifyToken = "auth:verify_token:"
	RedisPrefixResetToken  = "auth:reset_token:"
)
