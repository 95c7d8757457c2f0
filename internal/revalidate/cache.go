package revalidate

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/syms-residuos/backoffice/internal/logging"
)

// Backend stores rendered pages by key.
type Backend interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes key and reports whether it was present.
	Delete(ctx context.Context, key string) (bool, error)
}

// Observer is notified after every cache decision.
type Observer interface {
	PageServed(path string, hit bool)
	Revalidated(path string, stale bool)
}

// Cache keeps rendered listing pages until their path is revalidated or
// their TTL expires.
type Cache struct {
	backend  Backend
	ttl      time.Duration
	prefix   string
	logger   *logging.Logger
	observer Observer
}

type Option func(*Cache)

// WithTTL bounds how long a page may be served without revalidation. Zero
// keeps entries until revalidated.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl >= 0 {
			c.ttl = ttl
		}
	}
}

// WithPrefix namespaces keys, which matters when the backend is shared.
func WithPrefix(prefix string) Option {
	return func(c *Cache) {
		c.prefix = prefix
	}
}

func WithLogger(logger *logging.Logger) Option {
	return func(c *Cache) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithObserver(observer Observer) Option {
	return func(c *Cache) {
		c.observer = observer
	}
}

// New returns a cache over backend. A nil backend uses an in-memory one.
func New(backend Backend, opts ...Option) *Cache {
	if backend == nil {
		backend = NewMemory()
	}
	c := &Cache{
		backend: backend,
		prefix:  "page:",
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Page returns the cached page for path, calling build and storing its
// output on a miss. Backend failures degrade to building the page.
func (c *Cache) Page(ctx context.Context, path string, build func(context.Context) ([]byte, error)) ([]byte, error) {
	if build == nil {
		return nil, errors.New("revalidate: build function is nil")
	}
	key := c.key(path)
	logger := c.logger.With(logging.String("path", path))

	cached, ok, err := c.backend.Get(ctx, key)
	if err != nil {
		logger.Warn("cache read failed", logging.Error(err))
	}
	if ok {
		c.served(path, true)
		return cached, nil
	}

	page, err := build(ctx)
	if err != nil {
		return nil, err
	}
	if err := c.backend.Set(ctx, key, page, c.ttl); err != nil {
		logger.Warn("cache write failed", logging.Error(err))
	}
	c.served(path, false)
	return page, nil
}

// Revalidate marks the page at path stale. Revalidating a path that is
// already stale, or was never cached, succeeds without effect.
func (c *Cache) Revalidate(ctx context.Context, path string) error {
	stale, err := c.backend.Delete(ctx, c.key(path))
	if err != nil {
		return err
	}
	c.logger.Debug("path revalidated", logging.String("path", path), logging.Bool("cached", stale))
	if c.observer != nil {
		c.observer.Revalidated(path, stale)
	}
	return nil
}

func (c *Cache) served(path string, hit bool) {
	if c.observer != nil {
		c.observer.PageServed(path, hit)
	}
}

func (c *Cache) key(path string) string {
	path = strings.TrimSpace(path)
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	return c.prefix + path
}
