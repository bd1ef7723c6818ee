package assets

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/midgard-gallery/internal/engine/texture"
	"github.com/Faultbox/midgard-gallery/internal/logger"
)

// Uploader turns decoded pixels into a GPU texture, setting Texture.ID.
// It is called from the goroutine that called Load.
type Uploader interface {
	Upload(tex *texture.Texture) error
}

// Loader decodes asset files concurrently and uploads them serially.
type Loader struct {
	uploader       Uploader
	cache          *Cache
	maxTextureSize int
	workers        int
}

// NewLoader creates a loader. maxTextureSize <= 0 keeps images at their
// natural size.
func NewLoader(u Uploader, maxTextureSize int) *Loader {
	return &Loader{
		uploader:       u,
		cache:          NewCache(),
		maxTextureSize: maxTextureSize,
		workers:        runtime.GOMAXPROCS(0),
	}
}

// Load resolves every asset in a. It returns once all files are decoded and
// uploaded, or on the first failure, in which case no asset is modified.
func (l *Loader) Load(ctx context.Context, a Assets) error {
	keys := a.Keys()
	decoded := make([]*texture.Texture, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.workers)
	for i, key := range keys {
		i, key := i, key
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			tex, err := l.decode(a[key].Path)
			if err != nil {
				return fmt.Errorf("asset %s: %w", key, err)
			}
			decoded[i] = tex
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for i, tex := range decoded {
		if tex.Uploaded() {
			continue // shared through the cache
		}
		if err := l.uploader.Upload(tex); err != nil {
			return fmt.Errorf("uploading %s: %w", keys[i], err)
		}
	}

	for i, key := range keys {
		a[key].Data = decoded[i]
	}

	hits, misses := l.cache.Stats()
	logger.Info("assets loaded",
		zap.Int("count", len(keys)),
		zap.Int("decoded", misses),
		zap.Int("shared", hits),
	)
	return nil
}

// decode loads path once; repeated paths share the same texture.
func (l *Loader) decode(path string) (*texture.Texture, error) {
	return l.cache.GetOrLoad(path, func() (*texture.Texture, error) {
		start := time.Now()
		tex, err := texture.Load(path, l.maxTextureSize)
		if err != nil {
			return nil, err
		}
		logger.Debug("image decoded",
			zap.String("path", path),
			zap.Int("width", tex.Width),
			zap.Int("height", tex.Height),
			zap.Duration("took", time.Since(start)),
		)
		return tex, nil
	})
}

// Cache shares decoded textures by path.
type Cache struct {
	mu      sync.Mutex
	entries map[string]*cacheEntry

	// Stats
	hits   int
	misses int
}

type cacheEntry struct {
	once sync.Once
	tex  *texture.Texture
	err  error
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		entries: make(map[string]*cacheEntry),
	}
}

// GetOrLoad returns the cached texture for path, calling load at most once
// per path even under concurrent callers. Failures are cached too.
func (c *Cache) GetOrLoad(path string, load func() (*texture.Texture, error)) (*texture.Texture, error) {
	c.mu.Lock()
	e, ok := c.entries[path]
	if ok {
		c.hits++
	} else {
		c.misses++
		e = &cacheEntry{}
		c.entries[path] = e
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.tex, e.err = load()
	})
	return e.tex, e.err
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
