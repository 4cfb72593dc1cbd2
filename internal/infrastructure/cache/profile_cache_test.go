package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilProfileCache(t *testing.T) {
	c := NewProfileCache(nil, 0)
	require.Nil(t, c)

	ctx := context.Background()
	_, ok, err := c.Get(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.NoError(t, c.Set(ctx, Profile{ID: "u1"}))
	assert.NoError(t, c.Invalidate(ctx, "u1"))
}

func TestProfileKey(t *testing.T) {
	assert.Equal(t, "user:profile:abc", profileKey("abc"))
}
