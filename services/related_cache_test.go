package services

import (
	"testing"
	"time"

	"template_directory/models"
)

func TestCacheKeyTagOrderIndependent(t *testing.T) {
	a := CacheKey(models.RelatedQuery{SourceID: "s1", Category: "marketing", Tags: []string{"crm", "email"}, Limit: 6})
	b := CacheKey(models.RelatedQuery{SourceID: "s1", Category: "marketing", Tags: []string{"email", "crm"}, Limit: 6})

	if a != b {
		t.Errorf("tag order must not change the key: %q vs %q", a, b)
	}
}

func TestCacheKeyDistinguishesQueries(t *testing.T) {
	base := models.RelatedQuery{SourceID: "s1", Category: "marketing", Tags: []string{"crm"}, Limit: 6}

	variants := []models.RelatedQuery{
		{SourceID: "s2", Category: "marketing", Tags: []string{"crm"}, Limit: 6},
		{SourceID: "s1", Category: "devops", Tags: []string{"crm"}, Limit: 6},
		{SourceID: "s1", Category: "marketing", Tags: []string{"slack"}, Limit: 6},
		{SourceID: "s1", Category: "marketing", Tags: []string{"crm"}, Limit: 8},
		{SourceID: "s1", Category: "", Tags: []string{"crm"}, Limit: 6},
	}

	baseKey := CacheKey(base)
	for _, v := range variants {
		if CacheKey(v) == baseKey {
			t.Errorf("query %+v must have a different key from base", v)
		}
	}
}

func TestCacheGetSetAndExpiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewRelatedCache(30 * time.Minute)
	cache.now = func() time.Time { return now }

	items := []models.Template{{ID: "a"}, {ID: "b"}}
	cache.Set("k", items)

	got, ok := cache.Get("k")
	if !ok || len(got) != 2 {
		t.Fatalf("expected cache hit with 2 items, got ok=%v len=%d", ok, len(got))
	}

	// still inside the TTL window
	now = now.Add(29 * time.Minute)
	if _, ok := cache.Get("k"); !ok {
		t.Error("entry expired too early")
	}

	// past the TTL
	now = now.Add(2 * time.Minute)
	if _, ok := cache.Get("k"); ok {
		t.Error("entry should have expired")
	}
}

func TestCacheReturnsCopy(t *testing.T) {
	cache := NewRelatedCache(time.Hour)
	cache.Set("k", []models.Template{{ID: "a"}})

	got, _ := cache.Get("k")
	got[0].ID = "mutated"

	again, _ := cache.Get("k")
	if again[0].ID != "a" {
		t.Error("cache entry was mutated through a returned slice")
	}
}

func TestCacheOverwrite(t *testing.T) {
	cache := NewRelatedCache(time.Hour)
	cache.Set("k", []models.Template{{ID: "old"}})
	cache.Set("k", []models.Template{{ID: "new"}})

	got, _ := cache.Get("k")
	if len(got) != 1 || got[0].ID != "new" {
		t.Errorf("expected overwritten entry, got %+v", got)
	}
}

func TestCacheSweep(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cache := NewRelatedCache(10 * time.Minute)
	cache.now = func() time.Time { return now }

	cache.Set("a", []models.Template{{ID: "1"}})
	cache.Set("b", []models.Template{{ID: "2"}})

	now = now.Add(11 * time.Minute)
	cache.Set("c", []models.Template{{ID: "3"}})

	removed := cache.Sweep()
	if removed != 2 {
		t.Errorf("expected 2 swept entries, got %d", removed)
	}
	if cache.Len() != 1 {
		t.Errorf("expected 1 remaining entry, got %d", cache.Len())
	}
}

func TestCacheZeroTTLDisablesStorage(t *testing.T) {
	cache := NewRelatedCache(0)
	cache.Set("k", []models.Template{{ID: "a"}})
	if _, ok := cache.Get("k"); ok {
		t.Error("zero TTL cache should not store entries")
	}
}
