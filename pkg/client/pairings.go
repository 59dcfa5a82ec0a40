package client

import (
	"context"
	"net/url"
	"sync"

	"github.com/pythh/hotmatch/internal/pkg/plans"
)

// LockedFields mirrors the server's redaction flags.
type LockedFields struct {
	InvestorName bool `json:"investor_name"`
	Reason       bool `json:"reason"`
	Confidence   bool `json:"confidence"`
}

// MaskedPairing is one row of the projected feed as served by the API.
type MaskedPairing struct {
	StartupID    string       `json:"startup_id"`
	StartupName  string       `json:"startup_name"`
	InvestorID   string       `json:"investor_id"`
	InvestorName string       `json:"investor_name"`
	Reason       string       `json:"reason"`
	Confidence   string       `json:"confidence"`
	Locked       LockedFields `json:"locked"`
	ShowUpgrade  bool         `json:"show_upgrade"`
}

// PairingFeedResponse is the GET /api/v1/pairings body.
type PairingFeedResponse struct {
	Tier       string          `json:"tier"`
	RowLimit   int             `json:"row_limit"`
	UpgradeCTA string          `json:"upgrade_cta"`
	Pairings   []MaskedPairing `json:"pairings"`
}

// GetPairings fetches the live feed projected for the caller's tier.
func (c *Client) GetPairings(ctx context.Context) (*PairingFeedResponse, error) {
	var out PairingFeedResponse
	if err := c.do(ctx, "GET", "/api/v1/pairings", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SearchPairings searches the feed by startup name. For anonymous clients the
// server may refuse with a limit_reached APIError carrying the upgrade URL.
func (c *Client) SearchPairings(ctx context.Context, query string) (*PairingFeedResponse, error) {
	var out PairingFeedResponse
	path := "/api/v1/pairings/search?q=" + url.QueryEscape(query)
	if err := c.do(ctx, "GET", path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// PairingsFeed maintains the live feed for a UI. Refreshes are
// last-request-wins: a response that arrives after a newer refresh started is
// discarded, and a failed refresh keeps the previous rows on screen.
type PairingsFeed struct {
	client *Client
	tier   plans.Tier

	mu         sync.Mutex
	generation uint64
	rows       []MaskedPairing
	lastErr    error
}

// NewPairingsFeed creates a feed for the given tier. The tier is used to
// defensively cap rows client-side even if the server over-delivers.
func NewPairingsFeed(c *Client, tier plans.Tier) *PairingsFeed {
	return &PairingsFeed{client: c, tier: plans.ResolveTier(string(tier))}
}

// Refresh fetches the feed. Concurrent refreshes race safely: only the most
// recently started one may publish its result.
func (f *PairingsFeed) Refresh(ctx context.Context) error {
	f.mu.Lock()
	f.generation++
	gen := f.generation
	f.mu.Unlock()

	resp, err := f.client.GetPairings(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if gen != f.generation {
		// A newer refresh started while this one was in flight.
		return nil
	}
	if err != nil {
		// Keep showing the previous rows.
		f.lastErr = err
		return err
	}

	f.lastErr = nil
	f.rows = capRows(resp.Pairings, f.tier)
	return nil
}

// Snapshot returns a copy of the current rows, already capped to the tier's
// row limit. Mutating the returned slice never affects the feed.
func (f *PairingsFeed) Snapshot() []MaskedPairing {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make([]MaskedPairing, len(f.rows))
	copy(out, f.rows)
	return out
}

// LastError returns the error of the most recent completed refresh, or nil.
func (f *PairingsFeed) LastError() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// ApplySearchResults replaces the rows with search output. Search shares the
// feed surface in the UI, so results get the same tier cap and copy
// semantics as a refresh.
func (f *PairingsFeed) ApplySearchResults(rows []MaskedPairing) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++ // invalidate any in-flight refresh
	f.rows = capRows(rows, f.tier)
	f.lastErr = nil
}

func capRows(rows []MaskedPairing, tier plans.Tier) []MaskedPairing {
	limit := plans.Config(tier).VisibleRowLimit
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]MaskedPairing, len(rows))
	copy(out, rows)
	return out
}
