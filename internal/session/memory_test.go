package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBackendExpiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	b := NewMemory()
	b.now = func() time.Time { return now }

	require.NoError(t, b.Save(ctx, "s1", []byte("a"), now.Add(time.Minute)))
	require.NoError(t, b.Save(ctx, "s2", []byte("b"), now.Add(time.Hour)))

	got, ok, err := b.Load(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("a"), got)

	now = now.Add(2 * time.Minute)
	_, ok, err = b.Load(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 1, b.Len(), "expired entry is evicted on access")

	n, err := b.Purge(ctx, now.Add(2*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, b.Len())
}

func TestMemoryBackendCopiesData(t *testing.T) {
	ctx := context.Background()
	b := NewMemory()
	in := []byte("abc")
	require.NoError(t, b.Save(ctx, "s", in, time.Now().Add(time.Hour)))
	in[0] = 'x'

	got, ok, err := b.Load(ctx, "s")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "abc", string(got))

	require.NoError(t, b.Delete(ctx, "s"))
	require.NoError(t, b.Delete(ctx, "s"))
	_, ok, _ = b.Load(ctx, "s")
	assert.False(t, ok)
}
