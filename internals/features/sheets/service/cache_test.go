package service

import (
	"testing"
	"time"
)

func TestCacheGetSet(t *testing.T) {
	c := NewCache(time.Hour)
	key := CacheKey("table", "sheet-a", "0")

	if _, ok := c.Get(key); ok {
		t.Fatal("cache kosong tidak boleh hit")
	}
	c.Set(key, "value")
	v, ok := c.Get(key)
	if !ok || v.(string) != "value" {
		t.Fatalf("get setelah set: %v, %v", v, ok)
	}
}

func TestCacheTTLExpiry(t *testing.T) {
	c := NewCache(10 * time.Millisecond)
	c.Set("k", 1)
	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("k"); ok {
		t.Fatal("entri kadaluarsa masih hit")
	}
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := NewCache(time.Hour)
	c.Set(CacheKey("header", "sheet-a", "0"), 1)
	c.Set(CacheKey("table", "sheet-a", "0", "IDPEL"), 2)
	c.Set(CacheKey("header", "sheet-b", "0"), 3)

	c.InvalidatePrefix(CacheKey("header", "sheet-a"))
	c.InvalidatePrefix(CacheKey("table", "sheet-a"))

	if _, ok := c.Get(CacheKey("header", "sheet-a", "0")); ok {
		t.Error("header sheet-a harus terhapus")
	}
	if _, ok := c.Get(CacheKey("table", "sheet-a", "0", "IDPEL")); ok {
		t.Error("table sheet-a harus terhapus")
	}
	if _, ok := c.Get(CacheKey("header", "sheet-b", "0")); !ok {
		t.Error("sheet-b tidak boleh ikut terhapus")
	}
}
