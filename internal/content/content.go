// Package content holds portfolio content shapes and the rules that turn
// workspace pages into room-organized entries and portfolio items.
package content

import (
	"context"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Category groups portfolio items for display.
type Category string

const (
	CategoryProjects  Category = "Projects"
	CategoryThinking  Category = "Thinking"
	CategoryPractices Category = "Practices"
	CategoryJourney   Category = "Journey"
)

// Categories returns the categories in display order.
func Categories() []Category {
	return []Category{CategoryProjects, CategoryThinking, CategoryPractices, CategoryJourney}
}

// ParseCategory matches a category name regardless of case.
func ParseCategory(raw string) (Category, bool) {
	// A Caser holds state, so each call folds with its own.
	fold := cases.Fold()
	folded := fold.String(strings.TrimSpace(raw))
	for _, c := range Categories() {
		if fold.String(string(c)) == folded {
			return c, true
		}
	}
	return "", false
}

// TitleCase renders a raw category value the way clients expect to see it.
func TitleCase(raw string) string {
	return cases.Title(language.English).String(strings.TrimSpace(raw))
}

// Item is one portfolio card.
type Item struct {
	ID          string            `json:"id"`
	Emoji       string            `json:"emoji"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Content     string            `json:"content"`
	Category    Category          `json:"category"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// Entry is one workspace page assigned to a room.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url,omitempty"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

// RoomContent is workspace content grouped by the rooms that display it.
type RoomContent struct {
	Statement   string  `json:"statement"`
	Practices   []Entry `json:"practices"`
	Cases       []Entry `json:"cases"`
	Journey     []Entry `json:"journey"`
	Connections []Entry `json:"connections"`
}

// Total counts every entry across rooms.
func (rc RoomContent) Total() int {
	return len(rc.Practices) + len(rc.Cases) + len(rc.Journey) + len(rc.Connections)
}

// Source scans an upstream workspace for room content.
type Source interface {
	Scan(ctx context.Context) (RoomContent, error)
}

// PageFetcher loads a single workspace page with its blocks.
type PageFetcher interface {
	FetchPage(ctx context.Context, pageID string) (Page, error)
}
