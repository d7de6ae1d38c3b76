// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

/*
Package verification implements the out-of-band token flow shared by the
portals: email confirmation and password reset.

A verification token is a short-lived, single-purpose credential bound to a
specific email address. It travels in a link (query parameters), never in a
cookie, and is entirely independent of session tokens — the two credential
kinds are not interchangeable.

# Token Kinds

The kind tag is carried end-to-end explicitly and is never inferred from the
token shape. The portal links use Portuguese query values ("verificacao",
"redefinicao-senha") which map onto the two kinds here.
*/
package verification

import (
	"context"
	"errors"
	"strings"
	"time"
)

// # Token Kinds

// Kind distinguishes the two verification token flavors.
type Kind string

const (
	// KindEmailVerification confirms ownership of an email address.
	KindEmailVerification Kind = "email-verification"

	// KindPasswordReset authorizes a password reset for the bound email.
	KindPasswordReset Kind = "password-reset"
)

// Query parameter values used by the portal links.
const (
	QueryKindVerification  = "verificacao"
	QueryKindPasswordReset = "redefinicao-senha"
)

// KindFromQuery maps the link's "tipo" query parameter onto a [Kind].
//
// # Default Policy
//
// An absent or unrecognized value deliberately defaults to
// [KindEmailVerification] instead of failing closed. This mirrors the
// portals' observed behavior; rejecting would break existing verification
// links that omit the parameter. The policy is explicit here rather than an
// accident of optional-field handling.
func KindFromQuery(tipo string) Kind {
	if tipo == QueryKindPasswordReset {
		return KindPasswordReset
	}
	return KindEmailVerification
}

// QueryValue returns the link's "tipo" representation of the kind.
func (k Kind) QueryValue() string {
	if k == KindPasswordReset {
		return QueryKindPasswordReset
	}
	return QueryKindVerification
}

// # Outcomes

// Outcome is the discriminated result of a token exchange. Token problems are
// values, not errors — only infrastructure failures surface as errors.
type Outcome string

const (
	// OutcomeAccepted means the token was valid and has now been consumed.
	OutcomeAccepted Outcome = "accepted"

	// OutcomeExpired means the token existed but lapsed before use.
	OutcomeExpired Outcome = "expired"

	// OutcomeMismatchedEmail means the token is not bound to the given email.
	OutcomeMismatchedEmail Outcome = "mismatched-email"

	// OutcomeInvalid means the token is unknown or already consumed.
	OutcomeInvalid Outcome = "invalid"
)

// # Flow Service

// Flow drives the token exchange against the backing store.
type Flow struct {
	store TokenStore
	now   func() time.Time
}

// NewFlow constructs a [Flow]. The clock is injectable for tests.
func NewFlow(store TokenStore) *Flow {
	return &Flow{store: store, now: time.Now}
}

/*
Exchange redeems a verification token for the given kind and email.

Description: Looks up the (kind, token) record, checks logical expiry and the
email binding, and consumes the record on acceptance — a token is valid at
most once. No retries happen here; the caller may resubmit.

Parameters:
  - ctx: context.Context
  - kind: Kind (explicit, never inferred)
  - email: The address the link was sent to.
  - token: The out-of-band secret from the link.

Returns:
  - Outcome: Accepted, Expired, MismatchedEmail, or Invalid.
  - error: Infrastructure failures only (store unreachable).
*/
func (flow *Flow) Exchange(ctx context.Context, kind Kind, email, token string) (Outcome, error) {

	// 1. Unknown or already-consumed tokens are indistinguishable by design.
	record, err := flow.store.Get(ctx, kind, token)
	if err != nil {
		if errors.Is(err, ErrTokenNotFound) {
			return OutcomeInvalid, nil
		}
		return "", err
	}

	// 2. Logical expiry is judged here, not by the store's retention TTL.
	if flow.now().After(record.ExpiresAt) {
		return OutcomeExpired, nil
	}

	// 3. The token authorizes exactly the email it was issued for.
	if !sameEmail(record.Email, email) {
		return OutcomeMismatchedEmail, nil
	}

	// 4. Consume exactly once.
	if err := flow.store.Delete(ctx, kind, token); err != nil {
		return "", err
	}

	return OutcomeAccepted, nil
}

// sameEmail compares addresses case-insensitively, ignoring surrounding space.
func sameEmail(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
