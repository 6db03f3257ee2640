package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cverad/connectome/pkg/errors"
)

func TestMemoryStoreRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	r := New("sub-01", "hash1")
	r.Method = "louvain"
	require.NotEmpty(t, r.ID)
	require.NoError(t, s.Put(ctx, r))

	got, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, r.ID, got.ID)
	assert.Equal(t, "sub-01", got.Name)

	// Mutating the returned copy must not affect the stored result.
	got.Name = "mutated"
	again, err := s.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, "sub-01", again.Name)

	require.NoError(t, s.Delete(ctx, r.ID))
	_, err = s.Get(ctx, r.ID)
	assert.True(t, errors.Is(err, errors.ErrCodeResultNotFound))
	assert.NoError(t, s.Delete(ctx, r.ID))
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	old := New("old", "h1")
	old.CreatedAt = time.Now().Add(-time.Hour)
	recent := New("recent", "h2")
	require.NoError(t, s.Put(ctx, old))
	require.NoError(t, s.Put(ctx, recent))

	list, err := s.List(ctx, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "recent", list[0].Name)
	assert.Equal(t, "old", list[1].Name)

	list, err = s.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "recent", list[0].Name)
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, b := New("x", "h"), New("x", "h")
	assert.NotEqual(t, a.ID, b.ID)
	assert.False(t, a.CreatedAt.IsZero())
}
