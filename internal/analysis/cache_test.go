package analysis

import (
	"sync"
	"testing"
	"time"

	"scanax/internal/models"
)

func TestCacheGetFresh(t *testing.T) {
	c := NewCache(time.Hour)
	findings := []models.Finding{{Line: 3, Message: "Hardcoded secret", Recommendation: "Use an env var"}}

	c.Put("abc", findings)

	got, ok := c.Get("abc")
	if !ok {
		t.Fatal("expected a cache hit")
	}
	if len(got) != 1 || got[0].Message != "Hardcoded secret" {
		t.Errorf("unexpected cached result: %+v", got)
	}
}

func TestCacheMissUnknownKey(t *testing.T) {
	c := NewCache(time.Hour)
	if _, ok := c.Get("nope"); ok {
		t.Error("expected a miss for an unknown key")
	}
}

func TestCacheStaleEntryEvictedLazily(t *testing.T) {
	c := NewCache(time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Put("abc", []models.Finding{{Line: 1, Message: "m", Recommendation: "r"}})

	// Just past the TTL: the lookup must miss and remove the entry.
	c.now = func() time.Time { return base.Add(time.Hour + time.Second) }
	if _, ok := c.Get("abc"); ok {
		t.Fatal("expected a miss after the TTL elapsed")
	}
	if c.Len() != 0 {
		t.Errorf("stale entry was not evicted, %d entries remain", c.Len())
	}

	// Even with the clock rolled back the entry is gone for good.
	c.now = func() time.Time { return base }
	if _, ok := c.Get("abc"); ok {
		t.Error("evicted entry came back")
	}
}

func TestCacheEntryFreshAtExactTTL(t *testing.T) {
	c := NewCache(time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Put("abc", []models.Finding{})

	c.now = func() time.Time { return base.Add(time.Hour) }
	if _, ok := c.Get("abc"); !ok {
		t.Error("entry exactly at the TTL boundary should still be fresh")
	}
}

func TestCachePutOverwrites(t *testing.T) {
	c := NewCache(time.Hour)
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Put("abc", []models.Finding{{Line: 1, Message: "old", Recommendation: "r"}})

	// Re-insert near the end of the first entry's life; the TTL must
	// restart from the overwrite.
	c.now = func() time.Time { return base.Add(59 * time.Minute) }
	c.Put("abc", []models.Finding{{Line: 2, Message: "new", Recommendation: "r"}})

	c.now = func() time.Time { return base.Add(90 * time.Minute) }
	got, ok := c.Get("abc")
	if !ok {
		t.Fatal("expected the overwritten entry to still be fresh")
	}
	if got[0].Message != "new" {
		t.Errorf("expected the overwriting result, got %+v", got)
	}
}

func TestCacheConcurrentAccess(t *testing.T) {
	c := NewCache(time.Hour)
	var wg sync.WaitGroup

	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				c.Put("shared", []models.Finding{{Line: 1, Message: "m", Recommendation: "r"}})
				c.Get("shared")
			}
		}()
	}
	wg.Wait()

	if _, ok := c.Get("shared"); !ok {
		t.Error("expected the shared entry to survive concurrent access")
	}
}
