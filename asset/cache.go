// SPDX-License-Identifier: EPL-2.0

package asset

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// Cache keeps fetched bytes in memory for a TTL. Failed fetches are not
// cached.
type Cache struct {
	next  Fetcher
	items *cache.Cache
}

// NewCache wraps next. A non-positive ttl keeps entries until Invalidate.
func NewCache(next Fetcher, ttl time.Duration) *Cache {
	cleanup := ttl * 2
	if ttl <= 0 {
		ttl, cleanup = cache.NoExpiration, 0
	}
	return &Cache{
		next:  next,
		items: cache.New(ttl, cleanup),
	}
}

func (c *Cache) Fetch(ctx context.Context, ref string) ([]byte, error) {
	if v, ok := c.items.Get(ref); ok {
		return v.([]byte), nil
	}

	data, err := c.next.Fetch(ctx, ref)
	if err != nil {
		return nil, err
	}
	c.items.SetDefault(ref, data)
	return data, nil
}

// Invalidate drops ref, or everything when ref is empty.
func (c *Cache) Invalidate(ref string) {
	if ref == "" {
		c.items.Flush()
		return
	}
	c.items.Delete(ref)
}

// Len counts cached entries, expired ones included until cleanup runs.
func (c *Cache) Len() int {
	return c.items.ItemCount()
}
