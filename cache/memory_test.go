package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCodeStorePutGet(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "verify:a@b.c", "123456", time.Minute))

	value, ok, err := store.Get(ctx, "verify:a@b.c")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "123456", value)

	_, ok, err = store.Get(ctx, "verify:missing")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCodeStoreExpiry(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", "value", 10*time.Millisecond))
	time.Sleep(30 * time.Millisecond)

	_, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCodeStoreConsume(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", "value", time.Minute))

	value, ok, err := store.Consume(ctx, "key")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "value", value)

	// Consumed values are gone.
	_, ok, err = store.Consume(ctx, "key")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryCodeStoreOverwrite(t *testing.T) {
	store := NewMemoryCodeStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "key", "old", time.Minute))
	require.NoError(t, store.Put(ctx, "key", "new", time.Minute))

	value, ok, err := store.Get(ctx, "key")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "new", value)
}
