package memory

import (
	"context"
	"sync"
	"time"

	"staysia/internal/app/dto"
	"staysia/internal/app/policies"
)

// DetailsCache is a TTL map of rendered property details.
type DetailsCache struct {
	ttl time.Duration
	now func() time.Time

	mu    sync.RWMutex
	items map[int64]cachedDetails
}

type cachedDetails struct {
	details dto.PropertyDetails
	expires time.Time
}

func NewDetailsCache(ttl time.Duration) *DetailsCache {
	return &DetailsCache{ttl: ttl, now: time.Now, items: make(map[int64]cachedDetails)}
}

func (c *DetailsCache) Get(_ context.Context, propertyID int64) (dto.PropertyDetails, bool, error) {
	c.mu.RLock()
	item, ok := c.items[propertyID]
	c.mu.RUnlock()
	if !ok || (!item.expires.IsZero() && c.now().After(item.expires)) {
		return dto.PropertyDetails{}, false, nil
	}
	return item.details, true, nil
}

func (c *DetailsCache) Set(_ context.Context, propertyID int64, details dto.PropertyDetails) error {
	var expires time.Time
	if c.ttl > 0 {
		expires = c.now().Add(c.ttl)
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[propertyID] = cachedDetails{details: details, expires: expires}
	return nil
}

func (c *DetailsCache) Invalidate(_ context.Context, propertyID int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.items, propertyID)
	return nil
}

var _ policies.DetailsCache = (*DetailsCache)(nil)

// Inbox remembers consumed event ids in process.
type Inbox struct {
	mu   sync.Mutex
	seen map[string]struct{}
}

func NewInbox() *Inbox {
	return &Inbox{seen: make(map[string]struct{})}
}

func (i *Inbox) Seen(_ context.Context, eventID string) (bool, error) {
	i.mu.Lock()
	defer i.mu.Unlock()
	if _, ok := i.seen[eventID]; ok {
		return true, nil
	}
	i.seen[eventID] = struct{}{}
	return false, nil
}
