package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timePtr(t time.Time) *time.Time { return &t }

func linkHistoryServer(t *testing.T, links []ShareLink) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(links)
	}))
}

func TestManagerLoadAdoptsNewestLiveLink(t *testing.T) {
	now := time.Now()
	links := []ShareLink{
		{ID: 4, Token: "ddd", ShareType: "dashboard", CreatedAt: now.Add(-1 * time.Hour), RevokedAt: timePtr(now.Add(-30 * time.Minute))},
		{ID: 3, Token: "ccc", ShareType: "dashboard", CreatedAt: now.Add(-2 * time.Hour)},
		{ID: 2, Token: "bbb", ShareType: "pipeline", CreatedAt: now.Add(-1 * time.Hour)},
		{ID: 1, Token: "aaa", ShareType: "dashboard", CreatedAt: now.Add(-5 * time.Hour), ExpiresAt: timePtr(now.Add(-1 * time.Hour))},
	}
	srv := linkHistoryServer(t, links)
	defer srv.Close()

	m := NewShareLinkManager(New(srv.URL), "dashboard")
	require.NoError(t, m.Load(context.Background()))

	// Revoked (4), wrong type (2), and expired (1) are all skipped.
	require.Equal(t, StateHasLink, m.State())
	assert.Equal(t, "ccc", m.Current().Token)
}

func TestManagerLoadWithNoLiveLinks(t *testing.T) {
	now := time.Now()
	srv := linkHistoryServer(t, []ShareLink{
		{ID: 1, Token: "aaa", ShareType: "dashboard", CreatedAt: now, RevokedAt: timePtr(now)},
	})
	defer srv.Close()

	m := NewShareLinkManager(New(srv.URL), "dashboard")
	require.NoError(t, m.Load(context.Background()))

	assert.Equal(t, StateNoLink, m.State())
	assert.Nil(t, m.Current())
}

func TestManagerDropsExpiredLinkBetweenLoads(t *testing.T) {
	base := time.Date(2026, 8, 23, 10, 0, 0, 0, time.UTC)
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode([]ShareLink{
			{ID: 1, Token: "tok", ShareType: "dashboard", CreatedAt: base, ExpiresAt: timePtr(base.Add(time.Minute))},
		})
	}))
	defer srv.Close()

	clock := base
	m := NewShareLinkManager(New(srv.URL), "dashboard")
	m.now = func() time.Time { return clock }

	require.NoError(t, m.Load(context.Background()))
	require.Equal(t, StateHasLink, m.State())

	// Once expires_at passes, reads must report the link gone without
	// waiting for another load.
	clock = base.Add(2 * time.Minute)
	assert.Equal(t, StateNoLink, m.State())
	assert.Nil(t, m.Current())

	// Revoking an expired link is the same no-op as revoking no link.
	listCalls := requests.Load()
	require.NoError(t, m.Revoke(context.Background()))
	assert.Equal(t, listCalls, requests.Load())
}

func TestManagerCreateLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "dashboard", body["share_type"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":7,"token":"newtoken","url":"https://hotmatch.io/s/newtoken","created_at":"2026-08-23T10:00:00Z","expires_at":null}`)
	}))
	defer srv.Close()

	m := NewShareLinkManager(New(srv.URL), "dashboard")
	require.Equal(t, StateNoLink, m.State())

	link, err := m.Create(context.Background(), CreateShareLinkParams{
		Payload: map[string]interface{}{"startup_name": "Acme"},
	})
	require.NoError(t, err)

	assert.Equal(t, StateHasLink, m.State())
	assert.Equal(t, "newtoken", link.Token)
	assert.Equal(t, "https://hotmatch.io/s/newtoken", m.Current().URL)
	assert.Nil(t, link.ExpiresAt) // no expiry unless requested
}

func TestManagerCreateFailureRestoresState(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"internal_server_error","message":"boom"}`)
	}))
	defer srv.Close()

	m := NewShareLinkManager(New(srv.URL), "dashboard")
	existing := &ShareLink{Token: "old", ShareType: "dashboard"}
	m.mu.Lock()
	m.current = existing
	m.state = StateHasLink
	m.mu.Unlock()

	_, err := m.Create(context.Background(), CreateShareLinkParams{Payload: map[string]string{}})
	require.Error(t, err)

	// The existing link survives the failed replacement.
	assert.Equal(t, StateHasLink, m.State())
	assert.Equal(t, "old", m.Current().Token)
}

func TestManagerRevokeIsPessimistic(t *testing.T) {
	var failing atomic.Bool
	var revokes atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		revokes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
			fmt.Fprint(w, `{"error":"internal_server_error","message":"boom"}`)
			return
		}
		fmt.Fprint(w, `{"ok":true}`)
	}))
	defer srv.Close()

	m := NewShareLinkManager(New(srv.URL), "dashboard")
	m.mu.Lock()
	m.current = &ShareLink{Token: "tok", ShareType: "dashboard"}
	m.state = StateHasLink
	m.mu.Unlock()

	// Failed revoke: the link must stay visible, not optimistically vanish.
	failing.Store(true)
	require.Error(t, m.Revoke(context.Background()))
	assert.Equal(t, StateHasLink, m.State())
	assert.NotNil(t, m.Current())

	// Successful revoke clears it.
	failing.Store(false)
	require.NoError(t, m.Revoke(context.Background()))
	assert.Equal(t, StateNoLink, m.State())
	assert.Nil(t, m.Current())

	// Revoking again is a no-op without a network call.
	require.NoError(t, m.Revoke(context.Background()))
	assert.Equal(t, int32(2), revokes.Load())
}

func TestManagerRejectsDoubleSubmit(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		<-release
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":1,"token":"tok","url":"","created_at":"2026-08-23T10:00:00Z"}`)
	}))
	defer srv.Close()

	m := NewShareLinkManager(New(srv.URL), "dashboard")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := m.Create(context.Background(), CreateShareLinkParams{Payload: map[string]string{}})
		assert.NoError(t, err)
	}()
	<-started

	// Second submit while the first is still creating.
	_, err := m.Create(context.Background(), CreateShareLinkParams{Payload: map[string]string{}})
	assert.ErrorIs(t, err, ErrOperationInFlight)
	assert.ErrorIs(t, m.Revoke(context.Background()), ErrOperationInFlight)

	close(release)
	<-done
	assert.Equal(t, StateHasLink, m.State())
}
