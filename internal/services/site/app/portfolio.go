package server

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
	"github.com/atelierfolio/atelier/internal/platform/timeouts"
)

type portfolioResponse struct {
	Items       []content.Item     `json:"items"`
	Total       int                `json:"total"`
	Categories  []content.Category `json:"categories"`
	LastUpdated time.Time          `json:"lastUpdated"`
	Source      string             `json:"source"`
}

// portfolioCategoryResponse is the portfolio shape narrowed to one category.
type portfolioCategoryResponse struct {
	portfolioResponse
	Category string `json:"category"`
}

// portfolioCache holds the last portfolio response, sample fallbacks
// included, for ttl.
type portfolioCache struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	response portfolioResponse
	present  bool
}

func newPortfolioCache(ttl time.Duration, now func() time.Time) *portfolioCache {
	return &portfolioCache{ttl: ttl, now: now}
}

func (c *portfolioCache) get(ctx context.Context, source content.Source) portfolioResponse {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.present && c.now().Sub(c.response.LastUpdated) < c.ttl {
		return c.response
	}
	// The scan outlives the request that triggered it: a client hanging up
	// must not leave samples cached for everyone else.
	scanCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), timeouts.ContentScan)
	defer cancel()
	items := content.LoadItems(scanCtx, source)
	c.response = portfolioResponse{
		Items:       items,
		Total:       len(items),
		Categories:  content.Categories(),
		LastUpdated: c.now().UTC(),
		Source:      content.ItemsSource(items),
	}
	c.present = true
	return c.response
}

func (h handlers) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.portfolio.get(r.Context(), h.services.Content))
}

func (h handlers) handlePortfolioCategory(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.PathValue("category"))
	response := h.portfolio.get(r.Context(), h.services.Content)
	response.Items = content.FilterByCategory(response.Items, category)
	response.Total = len(response.Items)
	writeJSON(w, http.StatusOK, portfolioCategoryResponse{
		portfolioResponse: response,
		Category:          content.TitleCase(category),
	})
}
