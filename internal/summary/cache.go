package summary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"asset-dashboard/internal/model"
)

// Cache memoises summaries. Keys embed the dataset fingerprint, so a changed
// dataset never reads entries computed from another one.
type Cache interface {
	Get(ctx context.Context, key string) (*Result, bool)
	Set(ctx context.Context, key string, res *Result)
}

type cacheEntry struct {
	res       *Result
	expiresAt time.Time
}

// MemoryCache is an in-process Cache with a fixed TTL.
type MemoryCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MemoryCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
	}
}

// Get retrieves a cached summary if available and not expired.
func (c *MemoryCache) Get(_ context.Context, key string) (*Result, bool) {
	if c == nil {
		return nil, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.store[key]
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false
	}
	return entry.res, true
}

func (c *MemoryCache) Set(_ context.Context, key string, res *Result) {
	if c == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &cacheEntry{res: res, expiresAt: time.Now().Add(c.ttl)}
}

// Invalidate drops every entry. Registered as a store reload hook.
func (c *MemoryCache) Invalidate(_ uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Cleanup periodically removes expired entries until ctx is done.
func (c *MemoryCache) Cleanup(ctx context.Context, every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.mu.Lock()
			now := time.Now()
			for key, entry := range c.store {
				if now.After(entry.expiresAt) {
					delete(c.store, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// CacheKey builds a deterministic key from the dataset fingerprint, the peak
// window and the selection.
func CacheKey(dataset string, peaks PeakWindow, sel model.Selection) string {
	keyStr := fmt.Sprintf("%s:%s:%s:%s:%s", dataset, peaks, sel.AssetType, sel.AssetName, sel.Date)
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
