// Copyright (c) 2026 Grota. All rights reserved.
// Author: plataforma@grota.com.br

package identity_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grotaveiculos/gateway/internal/identity"
	"github.com/grotaveiculos/gateway/internal/platform/apperr"
)

func meResponse(id string) string {
	return `{"data":{"user":{"id":"` + id + `","email":"` + id + `@grota.com.br","full_name":"Portal User","role":"vendedor","capabilities":{"can_view":true,"can_create":true,"can_update":false,"can_delete":false}}}}`
}

/*
TestResolver_LoadCaches verifies that the principal is fetched once and served
from cache afterwards.
*/
func TestResolver_LoadCaches(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		hits.Add(1)
		writer.Header().Set("Content-Type", "application/json")
		_, _ = writer.Write([]byte(meResponse("u-1")))
	}))
	defer server.Close()

	resolver := identity.NewResolver(server.URL, server.Client())

	first, err := resolver.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", first.ID)

	second, err := resolver.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), hits.Load())
}

/*
TestResolver_RejectedSessionIsNotAuthenticated verifies the non-2xx mapping.
*/
func TestResolver_RejectedSessionIsNotAuthenticated(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		http.Error(writer, `{"error":"No authenticated session","code":"NOT_AUTHENTICATED"}`, http.StatusUnauthorized)
	}))
	defer server.Close()

	resolver := identity.NewResolver(server.URL, server.Client())

	_, err := resolver.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsNotAuthenticated(err))
	assert.False(t, apperr.IsUpstreamUnavailable(err))
}

/*
TestResolver_TransportFailureIsUpstreamUnavailable verifies that a dead
gateway is reported as a connectivity problem, never as a sign-in problem.
*/
func TestResolver_TransportFailureIsUpstreamUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {}))
	serverURL := server.URL
	server.Close()

	resolver := identity.NewResolver(serverURL, nil)

	_, err := resolver.Load(context.Background())
	require.Error(t, err)
	assert.True(t, apperr.IsUpstreamUnavailable(err))
	assert.False(t, apperr.IsNotAuthenticated(err))
}

/*
TestResolver_RefetchReloads verifies that Refetch bypasses the cache.
*/
func TestResolver_RefetchReloads(t *testing.T) {
	var hits atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		count := hits.Add(1)
		id := "u-1"
		if count > 1 {
			id = "u-2"
		}
		_, _ = writer.Write([]byte(meResponse(id)))
	}))
	defer server.Close()

	resolver := identity.NewResolver(server.URL, server.Client())

	first, err := resolver.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-1", first.ID)

	refreshed, err := resolver.Refetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-2", refreshed.ID)

	cached, err := resolver.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "u-2", cached.ID)
	assert.Equal(t, int64(2), hits.Load())
}

/*
TestResolver_StaleResponseDiscarded verifies the generation sequencing: a load
that was in flight when the cache was invalidated cannot repopulate it.

 1. A first Load starts and blocks inside the server handler.
 2. Invalidate bumps the generation while that response is still pending.
 3. The blocked response is released; its caller gets the stale principal,
    but the cache stays empty.
 4. The next Load fetches fresh data.
*/
func TestResolver_StaleResponseDiscarded(t *testing.T) {
	var hits atomic.Int64
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		count := hits.Add(1)
		if count == 1 {
			<-release
			_, _ = writer.Write([]byte(meResponse("stale")))
			return
		}
		_, _ = writer.Write([]byte(meResponse("fresh")))
	}))
	defer server.Close()

	resolver := identity.NewResolver(server.URL, server.Client())

	staleResult := make(chan *identity.AuthenticatedUser, 1)
	go func() {
		user, err := resolver.Load(context.Background())
		if err == nil {
			staleResult <- user
		} else {
			staleResult <- nil
		}
	}()

	// Wait until the first request is parked inside the handler.
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	resolver.Invalidate()
	close(release)

	staleUser := <-staleResult
	require.NotNil(t, staleUser)
	assert.Equal(t, "stale", staleUser.ID)

	current, err := resolver.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "fresh", current.ID)
}
