// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package verification_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grotaveiculos/gateway/internal/verification"
)

func seedToken(t *testing.T, store *verification.MemoryTokenStore, kind verification.Kind, token, email string, ttl time.Duration) {
	t.Helper()
	err := store.Set(context.Background(), kind, token, verification.Record{
		Email:     email,
		ExpiresAt: time.Now().Add(ttl),
	})
	require.NoError(t, err)
}

/*
TestExchange_Accepted verifies the happy path: a correct
password-reset token for the bound email is accepted.
*/
func TestExchange_Accepted(t *testing.T) {
	store := verification.NewMemoryTokenStore()
	flow := verification.NewFlow(store)
	seedToken(t, store, verification.KindPasswordReset, "tok-1", "user@example.com", time.Hour)

	outcome, err := flow.Exchange(context.Background(), verification.KindPasswordReset, "user@example.com", "tok-1")

	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeAccepted, outcome)
}

/*
TestExchange_ConsumedExactlyOnce verifies single use: the
same link with an already-used token is no longer accepted.
*/
func TestExchange_ConsumedExactlyOnce(t *testing.T) {
	store := verification.NewMemoryTokenStore()
	flow := verification.NewFlow(store)
	seedToken(t, store, verification.KindPasswordReset, "tok-1", "user@example.com", time.Hour)

	// 1. First redemption succeeds
	outcome, err := flow.Exchange(context.Background(), verification.KindPasswordReset, "user@example.com", "tok-1")
	require.NoError(t, err)
	require.Equal(t, verification.OutcomeAccepted, outcome)

	// 2. Replaying the same token is invalid
	outcome, err = flow.Exchange(context.Background(), verification.KindPasswordReset, "user@example.com", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeInvalid, outcome)
}

/*
TestExchange_Expired verifies that a token past its logical expiry reports
expired — recoverable by requesting a new one.
*/
func TestExchange_Expired(t *testing.T) {
	store := verification.NewMemoryTokenStore()
	flow := verification.NewFlow(store)
	seedToken(t, store, verification.KindEmailVerification, "tok-old", "user@example.com", -time.Minute)

	outcome, err := flow.Exchange(context.Background(), verification.KindEmailVerification, "user@example.com", "tok-old")

	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeExpired, outcome)
}

/*
TestExchange_MismatchedEmail verifies the email binding: a valid token
presented with a different address is rejected without being consumed.
*/
func TestExchange_MismatchedEmail(t *testing.T) {
	store := verification.NewMemoryTokenStore()
	flow := verification.NewFlow(store)
	seedToken(t, store, verification.KindEmailVerification, "tok-1", "owner@example.com", time.Hour)

	outcome, err := flow.Exchange(context.Background(), verification.KindEmailVerification, "intruder@example.com", "tok-1")

	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeMismatchedEmail, outcome)

	// The rightful owner can still redeem it afterwards.
	outcome, err = flow.Exchange(context.Background(), verification.KindEmailVerification, "owner@example.com", "tok-1")
	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeAccepted, outcome)
}

/*
TestExchange_KindsNotInterchangeable verifies that the kind tag partitions the
token space: a reset token cannot be redeemed as an email verification.
*/
func TestExchange_KindsNotInterchangeable(t *testing.T) {
	store := verification.NewMemoryTokenStore()
	flow := verification.NewFlow(store)
	seedToken(t, store, verification.KindPasswordReset, "tok-1", "user@example.com", time.Hour)

	outcome, err := flow.Exchange(context.Background(), verification.KindEmailVerification, "user@example.com", "tok-1")

	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeInvalid, outcome)
}

/*
TestExchange_CaseInsensitiveEmail verifies that the email comparison tolerates
case and whitespace differences from the link.
*/
func TestExchange_CaseInsensitiveEmail(t *testing.T) {
	store := verification.NewMemoryTokenStore()
	flow := verification.NewFlow(store)
	seedToken(t, store, verification.KindEmailVerification, "tok-1", "User@Example.com", time.Hour)

	outcome, err := flow.Exchange(context.Background(), verification.KindEmailVerification, " user@example.com ", "tok-1")

	require.NoError(t, err)
	assert.Equal(t, verification.OutcomeAccepted, outcome)
}

/*
TestKindFromQuery verifies the link-parameter mapping and the explicit default
policy: known values map to their kinds, everything else (including absence)
defaults to email verification.
*/
func TestKindFromQuery(t *testing.T) {
	assert.Equal(t, verification.KindEmailVerification, verification.KindFromQuery("verificacao"))
	assert.Equal(t, verification.KindPasswordReset, verification.KindFromQuery("redefinicao-senha"))

	// Default policy: absent or unrecognized kinds resolve to email verification.
	assert.Equal(t, verification.KindEmailVerification, verification.KindFromQuery(""))
	assert.Equal(t, verification.KindEmailVerification, verification.KindFromQuery("algo-desconhecido"))
}
