package usagegate

import (
	"context"
	"errors"
)

// FreeSearchLimit is how many gated searches an anonymous client gets before
// the upgrade prompt. This is a soft product gate, not a security boundary;
// clearing client state resets it.
const FreeSearchLimit = 2

// UpgradeURL is where exhausted callers are pointed.
const UpgradeURL = "/get-matched"

// ErrLimitReached marks gate exhaustion. It is an expected terminal state,
// not a failure: callers render the upgrade affordance and must not log it
// as an error.
var ErrLimitReached = errors.New("free usage limit reached")

// Store persists per-client usage counts. Counters are monotonically
// non-decreasing except through an explicit Reset.
type Store interface {
	Get(ctx context.Context, clientID string) (int, error)
	Increment(ctx context.Context, clientID string) (int, error)
	Reset(ctx context.Context, clientID string) error
}

// Gate wraps a Store with the check-then-increment rule: the check happens
// before any gated work, and a refused action never increments the counter.
type Gate struct {
	store Store
	limit int
}

// New builds a gate with the default free limit.
func New(store Store) *Gate {
	return &Gate{store: store, limit: FreeSearchLimit}
}

// NewWithLimit builds a gate with a custom limit, for tests and staged
// rollouts of different free allowances.
func NewWithLimit(store Store, limit int) *Gate {
	return &Gate{store: store, limit: limit}
}

// Remaining reports how many gated actions the client has left.
func (g *Gate) Remaining(ctx context.Context, clientID string) (int, error) {
	count, err := g.store.Get(ctx, clientID)
	if err != nil {
		return 0, err
	}
	remaining := g.limit - count
	if remaining < 0 {
		remaining = 0
	}
	return remaining, nil
}

// Consume spends one gated action. Returns ErrLimitReached without touching
// the counter when the client is already at the limit.
func (g *Gate) Consume(ctx context.Context, clientID string) error {
	count, err := g.store.Get(ctx, clientID)
	if err != nil {
		return err
	}
	if count >= g.limit {
		return ErrLimitReached
	}
	if _, err := g.store.Increment(ctx, clientID); err != nil {
		return err
	}
	return nil
}
