package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUsageCounterSpendsUpToLimit(t *testing.T) {
	uc := NewMemoryUsageCounter()

	assert.Equal(t, FreeSearchLimit, uc.Remaining())
	require.NoError(t, uc.Spend())
	require.NoError(t, uc.Spend())

	// Third attempt refuses and never increments.
	assert.ErrorIs(t, uc.Spend(), ErrFreeLimitReached)
	assert.Equal(t, FreeSearchLimit, uc.Count())
	assert.Equal(t, 0, uc.Remaining())
}

func TestUsageCounterPersistsAcrossReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")

	uc, err := NewUsageCounter(path)
	require.NoError(t, err)
	require.NoError(t, uc.Spend())

	reloaded, err := NewUsageCounter(path)
	require.NoError(t, err)
	assert.Equal(t, 1, reloaded.Count())
}

func TestUsageCounterRecoversFromCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "usage.json")
	require.NoError(t, writeFile(path, "{not json"))

	uc, err := NewUsageCounter(path)
	require.NoError(t, err)
	assert.Equal(t, 0, uc.Count())
}

func TestUsageCounterReset(t *testing.T) {
	uc := NewMemoryUsageCounter()
	require.NoError(t, uc.Spend())
	require.NoError(t, uc.Spend())
	require.NoError(t, uc.Reset())
	assert.Equal(t, 0, uc.Count())
}

func TestGatedSearchRefusesLocallyBeforeNetwork(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(PairingFeedResponse{Tier: "free"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	uc := NewMemoryUsageCounter()

	_, err := c.GatedSearch(context.Background(), uc, "acme")
	require.NoError(t, err)
	_, err = c.GatedSearch(context.Background(), uc, "globex")
	require.NoError(t, err)

	// Allowance spent: refusal happens without a request.
	_, err = c.GatedSearch(context.Background(), uc, "initech")
	assert.ErrorIs(t, err, ErrFreeLimitReached)
	assert.Equal(t, int32(2), requests.Load())
}

func TestGatedSearchAdoptsServerRefusal(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		fmt.Fprint(w, `{"error":"limit_reached","message":"Free search limit reached","upgrade_url":"/get-matched"}`)
	}))
	defer srv.Close()

	c := New(srv.URL)
	uc := NewMemoryUsageCounter()

	// Server says the allowance is gone even though the local counter is
	// fresh (another device, cleared state).
	_, err := c.GatedSearch(context.Background(), uc, "acme")
	assert.ErrorIs(t, err, ErrFreeLimitReached)

	// The local counter pins to the limit so the next call refuses locally.
	_, err = c.GatedSearch(context.Background(), uc, "acme")
	assert.ErrorIs(t, err, ErrFreeLimitReached)
	assert.Equal(t, int32(1), requests.Load())
}

func writeFile(path, content string) error {
	return os.WriteFile(path, []byte(content), 0o600)
}
