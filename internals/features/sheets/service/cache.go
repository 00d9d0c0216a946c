package service

import (
	"log"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// =======================
// 🗃️ Cache hasil fetch (TTL 1 jam)
// =======================

type cacheEntry struct {
	value     any
	expiresAt time.Time
}

// Cache in-memory ber-TTL, key = parameter request persis (sheet, gid,
// kolom). Invalidasi hanya lewat kedaluwarsa atau InvalidatePrefix
// setelah ada penulisan ke sheet.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func CacheKey(parts ...string) string {
	return strings.Join(parts, "|")
}

func (c *Cache) Get(key string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

func (c *Cache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = cacheEntry{value: value, expiresAt: time.Now().Add(c.ttl)}
}

// InvalidatePrefix buang semua entri milik satu sheet (prefix key-nya).
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if strings.HasPrefix(k, prefix) {
			delete(c.entries, k)
		}
	}
}

func (c *Cache) sweep() {
	now := time.Now()
	c.mu.Lock()
	defer c.mu.Unlock()
	removed := 0
	for k, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		log.Printf("[CLEANUP] %d entri cache fetch kadaluarsa dihapus", removed)
	}
}

// StartSweeper jalankan pembersihan entri kadaluarsa berkala via cron.
func (c *Cache) StartSweeper() {
	cr := cron.New()
	if _, err := cr.AddFunc("@every 10m", c.sweep); err != nil {
		log.Printf("[CLEANUP ERROR] Gagal daftar sweeper cache: %v", err)
		return
	}
	cr.Start()
	log.Println("✅ Sweeper cache fetch aktif (@every 10m)")
}
