package cache

import (
	"testing"
	"time"

	"github.com/smallbiznis/boardinghouse/internal/clock"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
)

func TestTTLCacheExpires(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](clk)

	c.Set("a", 1, time.Minute)
	if v, ok := c.Get("a"); !ok || v != 1 {
		t.Fatalf("expected hit, got %v %v", v, ok)
	}

	clk.Advance(2 * time.Minute)
	if _, ok := c.Get("a"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestCatalogCacheInvalidate(t *testing.T) {
	c := NewCatalogCache(clock.NewFakeClock(time.Now()))
	if _, ok := c.GetActive(); ok {
		t.Fatalf("expected empty cache")
	}

	c.SetActive([]servicetypedomain.ServiceType{{Name: "Electricity"}})
	items, ok := c.GetActive()
	if !ok || len(items) != 1 {
		t.Fatalf("expected 1 cached item, got %d", len(items))
	}

	c.Invalidate()
	if _, ok := c.GetActive(); ok {
		t.Fatalf("expected cache miss after invalidate")
	}
}
