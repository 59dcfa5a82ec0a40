package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pythh/hotmatch/internal/pkg/plans"
)

func feedServer(t *testing.T, rows func() []MaskedPairing, status func() int) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := http.StatusOK
		if status != nil {
			code = status()
		}
		w.Header().Set("Content-Type", "application/json")
		if code != http.StatusOK {
			w.WriteHeader(code)
			fmt.Fprint(w, `{"error":"internal_server_error","message":"boom"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(PairingFeedResponse{
			Tier:     "free",
			RowLimit: 3,
			Pairings: rows(),
		})
	}))
}

func makeRows(n int) []MaskedPairing {
	rows := make([]MaskedPairing, n)
	for i := range rows {
		rows[i] = MaskedPairing{StartupID: fmt.Sprintf("s-%d", i), StartupName: fmt.Sprintf("Startup %d", i)}
	}
	return rows
}

func TestFeedCapsRowsToTierLimit(t *testing.T) {
	// Server over-delivers; the client must not trust it.
	srv := feedServer(t, func() []MaskedPairing { return makeRows(50) }, nil)
	defer srv.Close()

	feed := NewPairingsFeed(New(srv.URL), plans.TierFree)
	require.NoError(t, feed.Refresh(context.Background()))

	assert.Len(t, feed.Snapshot(), 3)
}

func TestFeedKeepsRowsOnFailedRefresh(t *testing.T) {
	var failing atomic.Bool
	srv := feedServer(t,
		func() []MaskedPairing { return makeRows(2) },
		func() int {
			if failing.Load() {
				return http.StatusInternalServerError
			}
			return http.StatusOK
		},
	)
	defer srv.Close()

	feed := NewPairingsFeed(New(srv.URL), plans.TierFree)
	require.NoError(t, feed.Refresh(context.Background()))
	require.Len(t, feed.Snapshot(), 2)

	failing.Store(true)
	err := feed.Refresh(context.Background())
	assert.Error(t, err)

	// The previous rows survive the failure.
	assert.Len(t, feed.Snapshot(), 2)
	assert.Error(t, feed.LastError())
}

func TestFeedSnapshotIsACopy(t *testing.T) {
	srv := feedServer(t, func() []MaskedPairing { return makeRows(2) }, nil)
	defer srv.Close()

	feed := NewPairingsFeed(New(srv.URL), plans.TierFree)
	require.NoError(t, feed.Refresh(context.Background()))

	snap := feed.Snapshot()
	snap[0].StartupName = "mutated"

	assert.Equal(t, "Startup 0", feed.Snapshot()[0].StartupName)
}

func TestFeedLastRequestWins(t *testing.T) {
	firstArrived := make(chan struct{})
	releaseFirst := make(chan struct{})
	var requests atomic.Int32

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := requests.Add(1)
		rows := makeRows(1)
		if n == 1 {
			// Stale response: slow, and carrying different data.
			close(firstArrived)
			<-releaseFirst
			rows = makeRows(5)
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PairingFeedResponse{Tier: "pro", Pairings: rows})
	}))
	defer srv.Close()

	feed := NewPairingsFeed(New(srv.URL), plans.TierPro)

	staleDone := make(chan error, 1)
	go func() {
		staleDone <- feed.Refresh(context.Background())
	}()
	<-firstArrived

	// Newer refresh starts and finishes while the first is still in flight.
	require.NoError(t, feed.Refresh(context.Background()))
	require.Len(t, feed.Snapshot(), 1)

	close(releaseFirst)
	require.NoError(t, <-staleDone)

	// The stale response must not overwrite the newer one.
	assert.Len(t, feed.Snapshot(), 1)
}

func TestSearchPairingsLimitReached(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"error":"limit_reached","message":"Free search limit reached","upgrade_url":"/get-matched"}`)
	}))
	defer srv.Close()

	_, err := New(srv.URL).SearchPairings(context.Background(), "acme")
	require.Error(t, err)

	apiErr, ok := err.(*APIError)
	require.True(t, ok)
	assert.True(t, apiErr.IsLimitReached())
	assert.Equal(t, "/get-matched", apiErr.UpgradeURL)
}
