package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/cityfare/cityfare/models"
)

// MenuCache is a TTL cache over the public menu read path. A nil cache
// (or nil client) is a valid no-op, so the server runs without redis.
type MenuCache struct {
	Client *redis.Client
	TTL    time.Duration
}

func NewMenuCache(client *redis.Client, ttl time.Duration) *MenuCache {
	return &MenuCache{Client: client, TTL: ttl}
}

func (mc *MenuCache) key(city string) string {
	if city == "" {
		// unfiltered listing; "#" cannot appear in a city query value
		// that reaches the store, so this never collides
		return "menu:#unfiltered"
	}
	return "menu:" + city
}

// Get returns the cached item list for a city filter, if present.
func (mc *MenuCache) Get(ctx context.Context, city string) ([]models.MenuItem, bool) {
	if mc == nil || mc.Client == nil {
		return nil, false
	}

	raw, err := mc.Client.Get(ctx, mc.key(city)).Bytes()
	if err != nil {
		return nil, false
	}

	var items []models.MenuItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, false
	}
	return items, true
}

func (mc *MenuCache) Set(ctx context.Context, city string, items []models.MenuItem) {
	if mc == nil || mc.Client == nil {
		return
	}

	raw, err := json.Marshal(items)
	if err != nil {
		return
	}
	mc.Client.Set(ctx, mc.key(city), raw, mc.TTL)
}

// Invalidate drops every cached menu listing. Admin menu writes are rare
// enough that a full flush beats tracking per-city keys.
func (mc *MenuCache) Invalidate(ctx context.Context) {
	if mc == nil || mc.Client == nil {
		return
	}

	keys, err := mc.Client.Keys(ctx, "menu:*").Result()
	if err != nil || len(keys) == 0 {
		return
	}
	mc.Client.Del(ctx, keys...)
}
