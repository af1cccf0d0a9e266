package registry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemory_PutGet(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	status := Status{
		RunID:         "0b5c5aae-3fb1-4fbe-9f07-56a64a39c2e3",
		State:         StateRunning,
		Files:         3,
		RowsProcessed: 42,
		StartedAt:     time.Now().UTC(),
	}
	require.NoError(t, m.Put(ctx, status))

	got, err := m.Get(ctx, status.RunID)
	require.NoError(t, err)
	assert.Equal(t, status, got)
}

func TestMemory_GetUnknownRun(t *testing.T) {
	m := NewMemory(0)

	_, err := m.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemory_PutOverwrites(t *testing.T) {
	m := NewMemory(0)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, Status{RunID: "run", State: StateRunning}))
	require.NoError(t, m.Put(ctx, Status{RunID: "run", State: StateCompleted, FilesDone: 2}))

	got, err := m.Get(ctx, "run")
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, got.State)
	assert.Equal(t, 2, got.FilesDone)
}

func TestMemory_TTLExpiry(t *testing.T) {
	m := NewMemory(time.Nanosecond)
	ctx := context.Background()

	require.NoError(t, m.Put(ctx, Status{RunID: "run", State: StateCompleted}))
	time.Sleep(time.Millisecond)

	_, err := m.Get(ctx, "run")
	assert.ErrorIs(t, err, ErrNotFound)
}
