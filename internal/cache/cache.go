// Package cache holds the in-memory post collection shared by every view.
// The collection is loaded lazily on first use and replaced wholesale on
// refresh; readers always see a complete collection.
package cache

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/dgallion1/inkpost/internal/metrics"
	"github.com/dgallion1/inkpost/internal/post"
)

const populateKey = "populate"

// Loader produces a full, sorted post collection.
type Loader interface {
	Load(ctx context.Context) ([]post.Post, error)
}

// LoaderFunc adapts a function to Loader.
type LoaderFunc func(ctx context.Context) ([]post.Post, error)

func (f LoaderFunc) Load(ctx context.Context) ([]post.Post, error) { return f(ctx) }

// Recorder observes loader runs.
type Recorder interface {
	ObserveScan(trigger string, d time.Duration, size int, err error)
}

// Option configures a Cache.
type Option func(*Cache)

// WithLogger sets the logger used for load events.
func WithLogger(log *slog.Logger) Option {
	return func(c *Cache) { c.log = log }
}

// WithRecorder sets the scan observer.
func WithRecorder(r Recorder) Option {
	return func(c *Cache) { c.rec = r }
}

// Cache is safe for concurrent use.
type Cache struct {
	loader Loader
	log    *slog.Logger
	rec    Recorder

	mu     sync.RWMutex
	posts  []post.Post
	loaded bool

	group singleflight.Group
}

// New creates an empty cache backed by loader.
func New(loader Loader, opts ...Option) *Cache {
	c := &Cache{
		loader: loader,
		log:    slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// All returns a copy of the collection, populating it on first use.
// Concurrent first callers share a single load. A failed load is returned
// to every waiter and leaves the cache empty so the next call retries.
func (c *Cache) All(ctx context.Context) ([]post.Post, error) {
	if posts, ok := c.snapshot(); ok {
		return posts, nil
	}

	ch := c.group.DoChan(populateKey, func() (any, error) {
		if posts, ok := c.snapshot(); ok {
			return posts, nil
		}
		posts, err := c.load(context.WithoutCancel(ctx), metrics.TriggerPopulate)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		if !c.loaded {
			c.posts = posts
			c.loaded = true
		}
		installed := c.posts
		c.mu.Unlock()
		return installed, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]post.Post)), nil
	}
}

// Refresh reloads the collection and swaps it in. On failure the previous
// collection stays in place. Once started the load runs to completion.
func (c *Cache) Refresh(ctx context.Context) error {
	posts, err := c.load(context.WithoutCancel(ctx), metrics.TriggerRefresh)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.posts = posts
	c.loaded = true
	c.mu.Unlock()
	return nil
}

// Loaded reports whether a collection is installed.
func (c *Cache) Loaded() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loaded
}

// Len returns the size of the installed collection.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.posts)
}

func (c *Cache) snapshot() ([]post.Post, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.loaded {
		return nil, false
	}
	return slices.Clone(c.posts), true
}

func (c *Cache) load(ctx context.Context, trigger string) ([]post.Post, error) {
	start := time.Now()
	posts, err := c.loader.Load(ctx)
	elapsed := time.Since(start)

	if c.rec != nil {
		c.rec.ObserveScan(trigger, elapsed, len(posts), err)
	}
	if err != nil {
		c.log.Error("content load failed", "trigger", trigger, "error", err)
		return nil, err
	}
	c.log.Info("content loaded", "trigger", trigger, "posts", len(posts), "duration_ms", elapsed.Milliseconds())
	return posts, nil
}
