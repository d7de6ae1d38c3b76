// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/grotaveiculos/gateway/internal/platform/apperr"
)

const defaultResolverTimeout = 10 * time.Second

// Resolver is the client side of identity resolution, used by each portal
// shell to answer "who is signed in right now".
//
// # Concurrency
//
// Overlapping Load calls are collapsed into a single HTTP request via
// singleflight. Every cache invalidation bumps a generation counter; a fetch
// that started under an older generation returns its result to its own
// caller but is never written into the cache, so a slow stale response can
// not overwrite the state a later Refetch established.
type Resolver struct {
	endpoint string
	client   *http.Client

	group singleflight.Group

	mu         sync.Mutex
	generation uint64
	cached     *AuthenticatedUser
}

/*
NewResolver creates a Resolver for a gateway base URL.

Parameters:
  - baseURL: Gateway origin, e.g. "https://gateway.grota.com.br".
  - client: HTTP client carrying the portal's session cookie. Pass nil for a
    default client with a sane timeout.
*/
func NewResolver(baseURL string, client *http.Client) *Resolver {
	if client == nil {
		client = &http.Client{Timeout: defaultResolverTimeout}
	}
	return &Resolver{
		endpoint: baseURL + "/api/auth/me",
		client:   client,
	}
}

/*
Load returns the authenticated principal, fetching it on first use.

Description: Subsequent calls return the cached principal without touching
the network. Concurrent first calls share one request.

Returns:
  - *AuthenticatedUser: The signed-in principal.
  - error: apperr NOT_AUTHENTICATED for a missing/rejected session,
    apperr UPSTREAM_UNAVAILABLE for a transport failure. The two are
    deliberately distinct so callers never render a sign-in prompt for a
    connectivity blip.
*/
func (resolver *Resolver) Load(ctx context.Context) (*AuthenticatedUser, error) {
	resolver.mu.Lock()
	if resolver.cached != nil {
		user := resolver.cached
		resolver.mu.Unlock()
		return user, nil
	}
	generation := resolver.generation
	resolver.mu.Unlock()

	value, err, _ := resolver.group.Do("me", func() (interface{}, error) {
		user, fetchErr := resolver.fetch(ctx)
		if fetchErr != nil {
			return nil, fetchErr
		}

		// Only the generation that started this fetch may populate the cache.
		resolver.mu.Lock()
		if resolver.generation == generation {
			resolver.cached = user
		}
		resolver.mu.Unlock()

		return user, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*AuthenticatedUser), nil
}

/*
Refetch discards any cached or in-flight result and loads the principal again.

Description: Called after a sign-in or sign-out so the shell reflects the new
session immediately. A fetch that was already in flight when Refetch was
called completes for its original callers but cannot repopulate the cache.
*/
func (resolver *Resolver) Refetch(ctx context.Context) (*AuthenticatedUser, error) {
	resolver.mu.Lock()
	resolver.generation++
	resolver.cached = nil
	resolver.mu.Unlock()

	// Detach the in-flight call (if any) so the next Do starts a fresh request.
	resolver.group.Forget("me")

	return resolver.Load(ctx)
}

// Invalidate clears the cached principal without fetching a new one.
func (resolver *Resolver) Invalidate() {
	resolver.mu.Lock()
	resolver.generation++
	resolver.cached = nil
	resolver.mu.Unlock()

	resolver.group.Forget("me")
}

// fetch performs the HTTP round trip and maps failures to the error taxonomy.
func (resolver *Resolver) fetch(ctx context.Context) (*AuthenticatedUser, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, resolver.endpoint, nil)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	response, err := resolver.client.Do(request)
	if err != nil {
		// Transport failure: the session may still be valid.
		return nil, apperr.UpstreamUnavailable(err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.NotAuthenticated()
	}

	var envelope struct {
		Data struct {
			User *AuthenticatedUser `json:"user"`
		} `json:"data"`
	}
	if err := json.NewDecoder(response.Body).Decode(&envelope); err != nil {
		return nil, apperr.UpstreamUnavailable(fmt.Errorf("identity: malformed response: %w", err))
	}
	if envelope.Data.User == nil {
		return nil, apperr.NotAuthenticated()
	}

	return envelope.Data.User, nil
}
