// Package directory serves driver directory snapshots from memory and refreshes them from
// the backing directory, collapsing concurrent refreshes into one load.
package directory

import (
	"context"
	"slices"
	"sync"
	"time"

	"dispatch/internal/core/domain/model/driver"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"

	"golang.org/x/sync/singleflight"
)

const (
	listKey    = "list"
	refreshKey = "refresh"
)

// CachedDirectory is a ports.DriverDirectory whose ListAvailable answers from a snapshot
// no older than maxAge. Get always reads through to the source so assignment sees the
// driver's current availability.
type CachedDirectory struct {
	source      ports.DriverDirectory
	maxAge      time.Duration
	loadTimeout time.Duration
	now         func() time.Time

	group singleflight.Group

	mu       sync.RWMutex
	snapshot []*driver.Driver
	loadedAt time.Time
}

var _ ports.DriverDirectory = (*CachedDirectory)(nil)

func NewCachedDirectory(source ports.DriverDirectory, maxAge, loadTimeout time.Duration) *CachedDirectory {
	return &CachedDirectory{
		source:      source,
		maxAge:      maxAge,
		loadTimeout: loadTimeout,
		now:         time.Now,
	}
}

// ListAvailable returns the cached snapshot while it is fresh and reloads it otherwise.
// The returned slice is the caller's own; the drivers in it are shared immutable values.
func (c *CachedDirectory) ListAvailable(ctx context.Context) ([]*driver.Driver, error) {
	if snapshot, ok := c.fresh(); ok {
		return snapshot, nil
	}
	return c.load(ctx, listKey)
}

func (c *CachedDirectory) Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error) {
	return c.source.Get(ctx, id)
}

// Refresh reloads the snapshot regardless of its age.
func (c *CachedDirectory) Refresh(ctx context.Context) (int, error) {
	snapshot, err := c.load(ctx, refreshKey)
	return len(snapshot), err
}

// Age reports how old the current snapshot is, or false before the first load.
func (c *CachedDirectory) Age() (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loadedAt.IsZero() {
		return 0, false
	}
	return c.now().Sub(c.loadedAt), true
}

func (c *CachedDirectory) fresh() ([]*driver.Driver, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.loadedAt.IsZero() || c.now().Sub(c.loadedAt) >= c.maxAge {
		return nil, false
	}
	return slices.Clone(c.snapshot), true
}

// load runs at most one source read per key at a time. A list load first re-checks the
// snapshot, which a load that finished a moment ago may have refreshed. The read is
// detached from the caller's cancellation so one impatient caller does not fail the
// others waiting on it.
func (c *CachedDirectory) load(ctx context.Context, key string) ([]*driver.Driver, error) {
	ch := c.group.DoChan(key, func() (any, error) {
		if key == listKey {
			if snapshot, ok := c.fresh(); ok {
				return snapshot, nil
			}
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		snapshot, err := c.source.ListAvailable(loadCtx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.snapshot = snapshot
		c.loadedAt = c.now()
		c.mu.Unlock()
		return snapshot, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		snapshot, _ := res.Val.([]*driver.Driver)
		return slices.Clone(snapshot), nil
	}
}
