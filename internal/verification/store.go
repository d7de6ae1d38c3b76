// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package verification

import (
	"context"
	"errors"
	"time"
)

// ErrTokenNotFound is returned by stores when no record exists for a
// (kind, token) pair — unknown and already-consumed tokens look identical.
var ErrTokenNotFound = errors.New("verification: token not found")

// Record is the stored binding between a token and the email it was issued
// for. ExpiresAt is the logical expiry; retention in the store outlasts it by
// a grace window so lapsed tokens can still report "expired".
type Record struct {
	// Email is the address the verification link was sent to.
	Email string `json:"email"`

	// ExpiresAt is when the token stops being redeemable.
	ExpiresAt time.Time `json:"expires_at"`
}

// # Volatile Data Access

// TokenStore defines the contract for storing volatile verification tokens.
//
// Tokens are issued by the external issuer (or the dev tokengen tool) and
// consumed exactly once by [Flow.Exchange].
type TokenStore interface {

	/*
		Set stores a token record for a limited retention window.

		Parameters:
		  - ctx: context.Context
		  - kind: Kind
		  - token: string
		  - record: Record

		Returns:
		  - error: Persistence failures
	*/
	Set(ctx context.Context, kind Kind, token string, record Record) error

	/*
		Get retrieves the record bound to a (kind, token) pair.

		Parameters:
		  - ctx: context.Context
		  - kind: Kind
		  - token: string

		Returns:
		  - *Record: Hydrated record
		  - error: ErrTokenNotFound or connectivity failures
	*/
	Get(ctx context.Context, kind Kind, token string) (*Record, error)

	/*
		Delete removes a token after successful use.

		Parameters:
		  - ctx: context.Context
		  - kind: Kind
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(ctx context.Context, kind Kind, token string) error
}
