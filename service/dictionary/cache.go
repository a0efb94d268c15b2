package dictionary

import (
	"context"
	"sync/atomic"
)

// Cache is the single dictionary slot shared by conversion tasks. The slot is
// either empty (nil) or holds the most recently preloaded Future.
//
// Preload must only be called from the dispatch loop; Snapshot is safe from
// any goroutine.
type Cache struct {
	slot   atomic.Pointer[Future]
	loader Loader
}

// Preload replaces the slot. An absent ref empties it without starting any
// work. Otherwise a background load is started and its future installed
// before Preload returns. A superseded load is never cancelled; it keeps
// running for the tasks that already captured it.
func (c *Cache) Preload(ctx context.Context, ref *string) *Future {
	if ref == nil || *ref == "" {
		c.slot.Store(nil)
		return nil
	}
	future := newFuture(*ref)
	c.slot.Store(future)
	loadCtx := context.WithoutCancel(ctx)
	go func() {
		text, err := c.loader.Load(loadCtx, future.URL)
		future.settle(text, err)
	}()
	return future
}

// Snapshot returns the current slot value; nil means no dictionary.
func (c *Cache) Snapshot() *Future {
	return c.slot.Load()
}

// NewCache creates an empty cache backed by loader
func NewCache(loader Loader) *Cache {
	return &Cache{loader: loader}
}
