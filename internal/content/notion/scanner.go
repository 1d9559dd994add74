package notion

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/platform/timeouts"
	"go.opentelemetry.io/otel/attribute"
)

// Scanner is the live content source. Successful scans are cached for the
// configured TTL; failures are returned and never cached.
type Scanner struct {
	client *Client
	ttl    time.Duration
	now    func() time.Time

	mu       sync.Mutex
	cached   content.RoomContent
	cachedAt time.Time
	hasCache bool
}

// ScannerOption configures a Scanner.
type ScannerOption func(*Scanner)

// WithTTL overrides the cache lifetime. Non-positive values disable caching.
func WithTTL(ttl time.Duration) ScannerOption {
	return func(s *Scanner) { s.ttl = ttl }
}

// WithClock overrides the scanner clock.
func WithClock(now func() time.Time) ScannerOption {
	return func(s *Scanner) {
		if now != nil {
			s.now = now
		}
	}
}

// NewScanner builds a scanner over client.
func NewScanner(client *Client, opts ...ScannerOption) *Scanner {
	s := &Scanner{client: client, ttl: timeouts.ContentCache, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Scan searches the workspace and organizes its pages into rooms.
func (s *Scanner) Scan(ctx context.Context) (content.RoomContent, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.hasCache && s.ttl > 0 && s.now().Sub(s.cachedAt) < s.ttl {
		return s.cached, nil
	}

	ctx, span := s.client.tracer.Start(ctx, "notion.scan")
	defer span.End()

	pages, err := s.client.SearchPages(ctx)
	if err != nil {
		recordError(span, err)
		return content.RoomContent{}, err
	}
	summaries := make([]content.PageSummary, 0, len(pages))
	for _, p := range pages {
		summaries = append(summaries, content.PageSummary{ID: p.ID, Title: p.Title(), URL: p.URL})
	}
	rc := content.Organize(summaries)
	span.SetAttributes(attribute.Int("content.entries", rc.Total()))
	log.Printf("notion scan organized %d of %d pages", rc.Total(), len(pages))

	s.cached = rc
	s.cachedAt = s.now()
	s.hasCache = true
	return rc, nil
}

// Invalidate drops the cached scan.
func (s *Scanner) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hasCache = false
}

// FetchPage loads a page and its blocks, flattened for display.
func (c *Client) FetchPage(ctx context.Context, pageID string) (content.Page, error) {
	page, err := c.RetrievePage(ctx, pageID)
	if err != nil {
		return content.Page{}, err
	}
	blocks, err := c.BlockChildren(ctx, pageID)
	if err != nil {
		return content.Page{}, err
	}
	out := content.Page{
		ID:         page.ID,
		Title:      page.Title(),
		Icon:       page.IconText(),
		Cover:      iconText(page.Cover),
		Properties: map[string]any{},
		Blocks:     make([]content.Block, 0, len(blocks)),
	}
	if page.URL != "" {
		out.Properties["url"] = page.URL
	}
	for _, b := range blocks {
		if cb, ok := flattenBlock(b); ok {
			out.Blocks = append(out.Blocks, cb)
		}
	}
	processed := content.Process(out.Title, out.Blocks)
	out.Processed = &processed
	return out, nil
}

func flattenBlock(b Block) (content.Block, bool) {
	out := content.Block{ID: b.ID, Type: b.Type}
	switch b.Type {
	case "paragraph":
		out.Content = textOf(b.Paragraph)
	case "heading_1":
		out.Content = textOf(b.Heading1)
	case "heading_2":
		out.Content = textOf(b.Heading2)
	case "heading_3":
		out.Content = textOf(b.Heading3)
	case "image":
		if b.Image == nil {
			return out, false
		}
		switch {
		case b.Image.External != nil:
			out.ImageURL = b.Image.External.URL
		case b.Image.File != nil:
			out.ImageURL = b.Image.File.URL
		}
	case "link_to_page":
		if b.LinkToPage == nil {
			return out, false
		}
		out.Content = b.LinkToPage.PageID
	case "child_page":
		if b.ChildPage == nil {
			return out, false
		}
		out.Content = b.ChildPage.Title
	default:
		return out, false
	}
	return out, true
}

func textOf(t *TextBlock) string {
	if t == nil {
		return ""
	}
	return plainText(t.RichText)
}

var (
	_ content.Source      = (*Scanner)(nil)
	_ content.PageFetcher = (*Client)(nil)
)
