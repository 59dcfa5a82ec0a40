package client

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// FreeSearchLimit mirrors the server-side allowance for anonymous searches.
const FreeSearchLimit = 2

// UpgradePath is where a refused client should be sent.
const UpgradePath = "/get-matched"

// ErrFreeLimitReached is returned by GatedSearch before any network call once
// the local allowance is spent, and after a server-side limit_reached refusal.
var ErrFreeLimitReached = errors.New("free search limit reached")

// UsageCounter tracks how many free searches this client has used. The file
// backing keeps the count across process restarts; the server enforces its
// own count regardless, this only saves a doomed round trip.
type UsageCounter struct {
	mu    sync.Mutex
	path  string // empty means memory-only
	count int
}

type usageFile struct {
	SearchCount int `json:"search_count"`
}

// NewUsageCounter loads (or initializes) a counter persisted at path.
func NewUsageCounter(path string) (*UsageCounter, error) {
	uc := &UsageCounter{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return uc, nil
		}
		return nil, err
	}
	var state usageFile
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt state file: start over rather than lock the user out.
		return uc, nil
	}
	uc.count = state.SearchCount
	return uc, nil
}

// NewMemoryUsageCounter returns a counter without persistence.
func NewMemoryUsageCounter() *UsageCounter {
	return &UsageCounter{}
}

// Count returns the number of searches used so far.
func (uc *UsageCounter) Count() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.count
}

// Remaining returns how many free searches are left.
func (uc *UsageCounter) Remaining() int {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.count >= FreeSearchLimit {
		return 0
	}
	return FreeSearchLimit - uc.count
}

// Spend consumes one unit of the allowance. Refusal never increments.
func (uc *UsageCounter) Spend() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.count >= FreeSearchLimit {
		return ErrFreeLimitReached
	}
	uc.count++
	return uc.persistLocked()
}

// Reset clears the counter (after sign-up, for example).
func (uc *UsageCounter) Reset() error {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	uc.count = 0
	return uc.persistLocked()
}

func (uc *UsageCounter) persistLocked() error {
	if uc.path == "" {
		return nil
	}
	data, err := json.Marshal(usageFile{SearchCount: uc.count})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(uc.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(uc.path, data, 0o600)
}

// GatedSearch runs an anonymous search through the local allowance first: an
// exhausted counter refuses before any network call. A server-side
// limit_reached response is mapped to ErrFreeLimitReached and the local count
// is pinned to the limit so later calls refuse locally.
func (c *Client) GatedSearch(ctx context.Context, uc *UsageCounter, query string) (*PairingFeedResponse, error) {
	if err := uc.Spend(); err != nil {
		return nil, err
	}

	feed, err := c.SearchPairings(ctx, query)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && apiErr.IsLimitReached() {
			uc.mu.Lock()
			uc.count = FreeSearchLimit
			_ = uc.persistLocked()
			uc.mu.Unlock()
			return nil, ErrFreeLimitReached
		}
		return nil, err
	}
	return feed, nil
}
