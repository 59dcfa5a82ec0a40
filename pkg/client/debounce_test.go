package client

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collectResults() (func(SearchResult), func() []SearchResult) {
	var mu sync.Mutex
	var results []SearchResult
	notify := func(r SearchResult) {
		mu.Lock()
		defer mu.Unlock()
		results = append(results, r)
	}
	snapshot := func() []SearchResult {
		mu.Lock()
		defer mu.Unlock()
		out := make([]SearchResult, len(results))
		copy(out, results)
		return out
	}
	return notify, snapshot
}

func TestDebouncerCoalescesRapidInput(t *testing.T) {
	var calls atomic.Int32
	search := func(ctx context.Context, query string) (*PairingFeedResponse, error) {
		calls.Add(1)
		return &PairingFeedResponse{Tier: "free"}, nil
	}

	notify, snapshot := collectResults()
	d := NewDebouncer(search, notify)
	d.SetDelay(20 * time.Millisecond)
	defer d.Stop()

	// Typing "acme" one keystroke at a time.
	d.Update("ac")
	d.Update("acm")
	d.Update("acme")

	require.Eventually(t, func() bool {
		return len(snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	assert.Equal(t, int32(1), calls.Load())
	assert.Equal(t, "acme", snapshot()[0].Query)
}

func TestDebouncerShortQuerySkipsServer(t *testing.T) {
	var calls atomic.Int32
	search := func(ctx context.Context, query string) (*PairingFeedResponse, error) {
		calls.Add(1)
		return nil, nil
	}

	notify, snapshot := collectResults()
	d := NewDebouncer(search, notify)
	d.SetDelay(time.Millisecond)
	defer d.Stop()

	d.Update("a")

	// Short input clears the result immediately without a request.
	require.Len(t, snapshot(), 1)
	assert.Nil(t, snapshot()[0].Feed)
	assert.Empty(t, snapshot()[0].Err)

	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}

func TestDebouncerNewestQueryWins(t *testing.T) {
	firstStarted := make(chan struct{})
	releaseFirst := make(chan struct{})
	var calls atomic.Int32

	search := func(ctx context.Context, query string) (*PairingFeedResponse, error) {
		if calls.Add(1) == 1 {
			close(firstStarted)
			<-releaseFirst
		}
		return &PairingFeedResponse{Tier: "free"}, nil
	}

	notify, snapshot := collectResults()
	d := NewDebouncer(search, notify)
	d.SetDelay(time.Millisecond)
	defer d.Stop()

	d.Update("first query")
	<-firstStarted

	// A newer query arrives while the first request is in flight.
	d.Update("second query")
	close(releaseFirst)

	require.Eventually(t, func() bool {
		results := snapshot()
		return len(results) == 1 && results[0].Query == "second query"
	}, time.Second, 5*time.Millisecond)

	// The stale completion never surfaced.
	for _, r := range snapshot() {
		assert.NotEqual(t, "first query", r.Query)
	}
}

func TestDebouncerReleasesContextAfterCompletion(t *testing.T) {
	var reqCtx atomic.Value
	search := func(ctx context.Context, query string) (*PairingFeedResponse, error) {
		reqCtx.Store(ctx)
		return &PairingFeedResponse{Tier: "free"}, nil
	}

	notify, snapshot := collectResults()
	d := NewDebouncer(search, notify)
	d.SetDelay(time.Millisecond)
	defer d.Stop()

	d.Update("acme robotics")
	require.Eventually(t, func() bool {
		return len(snapshot()) == 1
	}, time.Second, 5*time.Millisecond)

	// The request context must not stay live after its search completed.
	ctx := reqCtx.Load().(context.Context)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestDebouncerStopCancelsPending(t *testing.T) {
	var calls atomic.Int32
	search := func(ctx context.Context, query string) (*PairingFeedResponse, error) {
		calls.Add(1)
		return nil, nil
	}

	d := NewDebouncer(search, nil)
	d.SetDelay(20 * time.Millisecond)

	d.Update("pending query")
	d.Stop()

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(0), calls.Load())
}
