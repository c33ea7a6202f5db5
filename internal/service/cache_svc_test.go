package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestDisabledCache_NoOpsAndCountsNothing(t *testing.T) {
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_cache_hits"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_cache_misses"})

	cache := &CacheService{}
	cache.Instrument(hits, misses)
	ctx := context.Background()

	data, err := cache.GetFeedPage(ctx, "created_at", "desc", 10, 0)
	if err != nil || data != nil {
		t.Fatalf("GetFeedPage on disabled cache = (%v, %v), want (nil, nil)", data, err)
	}
	data, err = cache.GetVideo(ctx, "v1")
	if err != nil || data != nil {
		t.Fatalf("GetVideo on disabled cache = (%v, %v), want (nil, nil)", data, err)
	}

	// Disabled is not a miss: every read goes to the database regardless.
	if n := testutil.ToFloat64(hits); n != 0 {
		t.Errorf("hits = %v, want 0", n)
	}
	if n := testutil.ToFloat64(misses); n != 0 {
		t.Errorf("misses = %v, want 0", n)
	}
}

func TestUninstrumentedCache_DoesNotPanic(t *testing.T) {
	cache := &CacheService{}
	cache.countHit()
	cache.countMiss()
}

func TestCacheKeys(t *testing.T) {
	if got := feedKey("created_at", "desc", 10, 20); got != "feed:created_at:desc:10:20" {
		t.Errorf("feedKey = %q", got)
	}
	if got := videoKey("abc"); got != "video:abc" {
		t.Errorf("videoKey = %q", got)
	}
}
