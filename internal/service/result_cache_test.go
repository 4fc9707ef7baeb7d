package service

import (
	"context"
	"okr_backend/internal/progress"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalResultCache(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	c := NewLocalResultCache(2)
	c.now = func() time.Time { return now }

	value := progress.ObjectiveRollup{ActualPercent: 40, IdealPercent: 50}
	require.NoError(t, c.Set(ctx, "a", value, time.Minute))

	// 缓存保存的是副本
	value.ActualPercent = 99

	var got progress.ObjectiveRollup
	hit, err := c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 40.0, got.ActualPercent)

	now = now.Add(time.Minute)
	hit, err = c.Get(ctx, "a", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestLocalResultCacheEvictsAndDeletes(t *testing.T) {
	ctx := context.Background()
	c := NewLocalResultCache(2)

	require.NoError(t, c.Set(ctx, "a", 1, time.Hour))
	require.NoError(t, c.Set(ctx, "b", 2, time.Hour))
	require.NoError(t, c.Set(ctx, "c", 3, time.Hour))

	var v int
	hit, _ := c.Get(ctx, "a", &v)
	assert.False(t, hit, "least recently used entry is evicted")

	hit, _ = c.Get(ctx, "c", &v)
	assert.True(t, hit)
	assert.Equal(t, 3, v)

	require.NoError(t, c.Delete(ctx, "b", "c", "missing"))
	hit, _ = c.Get(ctx, "b", &v)
	assert.False(t, hit)
}

func TestNewLocalResultCacheDefaultsSize(t *testing.T) {
	c := NewLocalResultCache(0)
	assert.NotNil(t, c.cache)
}
