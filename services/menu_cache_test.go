package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cityfare/cityfare/models"
)

// The server must run without redis: a nil cache (or a cache with no
// client) degrades to cache misses and no-op writes.
func TestMenuCacheNilSafety(t *testing.T) {
	ctx := context.Background()

	var nilCache *MenuCache
	items, ok := nilCache.Get(ctx, "Delhi")
	assert.False(t, ok)
	assert.Nil(t, items)
	nilCache.Set(ctx, "Delhi", []models.MenuItem{{ID: "l1"}})
	nilCache.Invalidate(ctx)

	noClient := NewMenuCache(nil, time.Minute)
	items, ok = noClient.Get(ctx, "Delhi")
	assert.False(t, ok)
	assert.Nil(t, items)
	noClient.Set(ctx, "Delhi", []models.MenuItem{{ID: "l1"}})
	noClient.Invalidate(ctx)
}

func TestMenuCacheKeySpacing(t *testing.T) {
	mc := NewMenuCache(nil, time.Minute)
	// the unfiltered listing gets its own slot
	assert.NotEqual(t, mc.key(""), mc.key("All"))
	assert.Equal(t, "menu:Delhi", mc.key("Delhi"))
}
