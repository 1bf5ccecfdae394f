package cache

import (
	"time"

	"github.com/smallbiznis/boardinghouse/internal/clock"
	servicetypedomain "github.com/smallbiznis/boardinghouse/internal/servicetype/domain"
)

const (
	defaultCatalogTTL = 5 * time.Minute
	activeCatalogKey  = "active"
)

// CatalogCache holds the active service type list. Writers invalidate it on
// every catalog mutation.
type CatalogCache interface {
	GetActive() ([]servicetypedomain.ServiceType, bool)
	SetActive(items []servicetypedomain.ServiceType)
	Invalidate()
}

type catalogCache struct {
	active Cache[string, []servicetypedomain.ServiceType]
	ttl    time.Duration
}

func NewCatalogCache(clk clock.Clock) CatalogCache {
	return &catalogCache{
		active: NewTTLCache[string, []servicetypedomain.ServiceType](clk),
		ttl:    defaultCatalogTTL,
	}
}

func (c *catalogCache) GetActive() ([]servicetypedomain.ServiceType, bool) {
	items, ok := c.active.Get(activeCatalogKey)
	if !ok {
		return nil, false
	}
	return append([]servicetypedomain.ServiceType(nil), items...), true
}

func (c *catalogCache) SetActive(items []servicetypedomain.ServiceType) {
	c.active.Set(activeCatalogKey, append([]servicetypedomain.ServiceType(nil), items...), c.ttl)
}

func (c *catalogCache) Invalidate() {
	c.active.Purge()
}
