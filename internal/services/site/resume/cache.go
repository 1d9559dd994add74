package resume

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/platform/timeouts"
)

// Rendered is a built document with its markdown rendering.
type Rendered struct {
	Document Document
	Markdown string
	BuiltAt  time.Time
}

// Loader builds a fresh document.
type Loader func(ctx context.Context) (Document, error)

// LoaderFor builds documents from a workspace scan. A nil source or a failed
// scan yields the sample document instead of an error.
func LoaderFor(source content.Source, now func() time.Time) Loader {
	if now == nil {
		now = time.Now
	}
	return func(ctx context.Context) (Document, error) {
		if source == nil {
			return Build(content.SampleRoomContent(), now(), SourceSample), nil
		}
		rc, err := source.Scan(ctx)
		if err != nil {
			log.Printf("resume: workspace scan failed, using samples: %v", err)
			return Build(content.SampleRoomContent(), now(), SourceSample), nil
		}
		return Build(rc, now(), SourceLive), nil
	}
}

// Cache keeps the last rendered resume in memory for a fixed TTL. Nothing is
// persisted across restarts.
type Cache struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entry   Rendered
	present bool
}

// NewCache builds a cache. Non-positive ttl uses the default content TTL.
func NewCache(ttl time.Duration, now func() time.Time) *Cache {
	if ttl <= 0 {
		ttl = timeouts.ContentCache
	}
	if now == nil {
		now = time.Now
	}
	return &Cache{ttl: ttl, now: now}
}

// Get returns the cached rendering when fresh, otherwise builds, renders,
// and stores a new one. The second result reports a cache hit.
func (c *Cache) Get(ctx context.Context, load Loader) (Rendered, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.present && c.now().Sub(c.entry.BuiltAt) < c.ttl {
		return c.entry, true, nil
	}
	// Detached from the caller so a cancelled request cannot poison the entry.
	loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.ContentScan)
	defer cancel()
	doc, err := load(loadCtx)
	if err != nil {
		return Rendered{}, false, err
	}
	c.entry = Rendered{Document: doc, Markdown: Markdown(doc), BuiltAt: c.now()}
	c.present = true
	return c.entry, false, nil
}

// Reset drops the cached rendering.
func (c *Cache) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.present = false
}
