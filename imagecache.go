package fbui

import (
	"fmt"
	"sync"
	"time"

	"github.com/phanxgames/fbui/container"
)

type cacheEntry struct {
	img       *Image
	refs      int
	idleSince time.Time
}

// ImageCache shares decoded or rendered images between items. Each Checkout
// takes a reference that is returned by ReleaseImage; images nobody holds
// stay cached until Sweep drops them. Register it with
// Display.SetImageReleaser so destroyed items give their reference back.
type ImageCache struct {
	mu      sync.Mutex
	entries container.StrMap[*cacheEntry]

	// Now is the clock used for idle tracking. Defaults to time.Now.
	Now func() time.Time
}

// NewImageCache returns an empty cache.
func NewImageCache() *ImageCache {
	return &ImageCache{Now: time.Now}
}

// CacheKey builds the conventional key for rendered text: the size and the
// content.
func CacheKey(size int, content string) string {
	return fmt.Sprintf("%d:%s", size, content)
}

func (c *ImageCache) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Checkout returns the image cached under key, calling load to create it on
// a miss. Every successful call must be matched by one ReleaseImage.
func (c *ImageCache) Checkout(key string, load func() (*Image, error)) (*Image, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.entries.Get(key); ok {
		e.refs++
		return e.img, nil
	}
	img, err := load()
	if err != nil {
		return nil, fmt.Errorf("image cache: load %q: %w", key, err)
	}
	if img == nil {
		return nil, fmt.Errorf("image cache: load %q returned no image", key)
	}
	c.entries.Add(key, &cacheEntry{img: img, refs: 1}, nil)
	return img, nil
}

// ReleaseImage gives back one reference to img. Releasing an image the cache
// does not know, or one with no references left, is reported and ignored.
func (c *ImageCache) ReleaseImage(img *Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, k := range c.entries.Keys() {
		e, _ := c.entries.Get(k)
		if e.img != img {
			continue
		}
		if e.refs == 0 {
			logf("warning: image cache: %q released more often than checked out", k)
			return
		}
		e.refs--
		if e.refs == 0 {
			e.idleSince = c.now()
		}
		return
	}
	logf("warning: image cache: release of unknown image %p", img)
}

// Refs returns the number of outstanding references under key, or -1 when
// the key is not cached.
func (c *ImageCache) Refs(key string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries.Get(key)
	if !ok {
		return -1
	}
	return e.refs
}

// Sweep drops every unreferenced image idle for at least maxIdle and returns
// how many were dropped.
func (c *ImageCache) Sweep(maxIdle time.Duration) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	var stale []string
	for _, k := range c.entries.Keys() {
		e, _ := c.entries.Get(k)
		if e.refs == 0 && now.Sub(e.idleSince) >= maxIdle {
			stale = append(stale, k)
		}
	}
	for _, k := range stale {
		c.entries.Remove(k, nil)
	}
	return len(stale)
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.entries.Len()
}
