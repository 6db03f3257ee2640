package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCacheRoundTrip(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	_, ok, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	data, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []byte("v"), data)

	require.NoError(t, c.Delete(ctx, "k"))
	_, ok, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)

	// Deleting a missing key is fine.
	assert.NoError(t, c.Delete(ctx, "k"))
}

func TestFileCacheExpiry(t *testing.T) {
	c, err := NewFileCache(t.TempDir())
	require.NoError(t, err)
	defer c.Close()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Nanosecond))
	time.Sleep(5 * time.Millisecond)
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNullCacheNeverStores(t *testing.T) {
	c := NewNullCache()
	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	_, ok, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestKeyerDeterminism(t *testing.T) {
	k := NewDefaultKeyer()
	opts := AnalysisKeyOpts{CommunityMethod: "louvain", Transform: "reciprocal", Seed: 1}

	a := k.AnalysisKey("abc", opts)
	b := k.AnalysisKey("abc", opts)
	assert.Equal(t, a, b)

	opts.Seed = 2
	assert.NotEqual(t, a, k.AnalysisKey("abc", opts))
	assert.NotEqual(t, a, k.AnalysisKey("abd", AnalysisKeyOpts{CommunityMethod: "louvain", Transform: "reciprocal", Seed: 1}))

	assert.NotEqual(t, k.ArtifactKey("h", "svg"), k.ArtifactKey("h", "dot"))
}

func TestScopedKeyer(t *testing.T) {
	base := NewDefaultKeyer()
	scoped := NewScopedKeyer(base, "study42:")
	opts := AnalysisKeyOpts{CommunityMethod: "louvain"}
	assert.Equal(t, "study42:"+base.AnalysisKey("h", opts), scoped.AnalysisKey("h", opts))
}

func TestRetryWithBackoff(t *testing.T) {
	calls := 0
	err := RetryWithBackoff(context.Background(), func() error {
		calls++
		return assert.AnError
	})
	assert.Error(t, err)
	assert.Equal(t, 1, calls, "non-retryable errors do not retry")

	assert.True(t, IsRetryable(Retryable(assert.AnError)))
	assert.False(t, IsRetryable(assert.AnError))
	assert.NoError(t, Retryable(nil))
}
