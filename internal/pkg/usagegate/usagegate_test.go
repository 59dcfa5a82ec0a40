package usagegate

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGateConsumesUpToLimit(t *testing.T) {
	gate := New(NewMemoryStore())
	ctx := context.Background()

	for i := 0; i < FreeSearchLimit; i++ {
		assert.NoError(t, gate.Consume(ctx, "client-a"))
	}

	err := gate.Consume(ctx, "client-a")
	assert.True(t, errors.Is(err, ErrLimitReached))
}

func TestGateRefusalDoesNotIncrement(t *testing.T) {
	store := NewMemoryStore()
	gate := NewWithLimit(store, 1)
	ctx := context.Background()

	assert.NoError(t, gate.Consume(ctx, "client-b"))
	assert.Error(t, gate.Consume(ctx, "client-b"))
	assert.Error(t, gate.Consume(ctx, "client-b"))

	count, err := store.Get(ctx, "client-b")
	assert.NoError(t, err)
	assert.Equal(t, 1, count, "refused actions must not advance the counter")
}

func TestGateClientsAreIndependent(t *testing.T) {
	gate := NewWithLimit(NewMemoryStore(), 1)
	ctx := context.Background()

	assert.NoError(t, gate.Consume(ctx, "client-c"))
	assert.NoError(t, gate.Consume(ctx, "client-d"))
}

func TestRemaining(t *testing.T) {
	gate := NewWithLimit(NewMemoryStore(), 2)
	ctx := context.Background()

	remaining, err := gate.Remaining(ctx, "client-e")
	assert.NoError(t, err)
	assert.Equal(t, 2, remaining)

	assert.NoError(t, gate.Consume(ctx, "client-e"))
	assert.NoError(t, gate.Consume(ctx, "client-e"))

	remaining, err = gate.Remaining(ctx, "client-e")
	assert.NoError(t, err)
	assert.Equal(t, 0, remaining)
}

func TestResetClearsCounter(t *testing.T) {
	store := NewMemoryStore()
	gate := NewWithLimit(store, 1)
	ctx := context.Background()

	assert.NoError(t, gate.Consume(ctx, "client-f"))
	assert.Error(t, gate.Consume(ctx, "client-f"))

	assert.NoError(t, store.Reset(ctx, "client-f"))
	assert.NoError(t, gate.Consume(ctx, "client-f"))
}
