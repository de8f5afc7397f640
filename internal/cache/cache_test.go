package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledCacheAlwaysLoads(t *testing.T) {
	c := New(nil)
	assert.False(t, c.Enabled())

	calls := 0
	load := func() ([]string, error) {
		calls++
		return []string{"a"}, nil
	}

	for i := 0; i < 3; i++ {
		v, err := Remember(context.Background(), c, KeyCatalogAssessments, time.Minute, load)
		require.NoError(t, err)
		assert.Equal(t, []string{"a"}, v)
	}
	assert.Equal(t, 3, calls)

	// 空操作不应 panic
	c.Set(context.Background(), "k", 1, time.Minute)
	c.Invalidate(context.Background(), "k")
}

func TestRememberPropagatesError(t *testing.T) {
	boom := errors.New("boom")
	_, err := Remember(context.Background(), New(nil), "k", time.Minute, func() (int, error) {
		return 0, boom
	})
	assert.ErrorIs(t, err, boom)
}

func TestNilCacheIsDisabled(t *testing.T) {
	var c *Cache
	assert.False(t, c.Enabled())
	var out int
	assert.False(t, c.Get(context.Background(), "k", &out))
}
