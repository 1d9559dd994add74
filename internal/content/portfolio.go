package content

import (
	"context"
	"fmt"
	"log"
	"sort"
)

// SourceSample marks items served from the built-in sample set.
const SourceSample = "sample"

const (
	emojiPractice   = "🔧"
	emojiCase       = "📋"
	emojiJourney    = "🌱"
	emojiConnection = "🕸️"
)

// ToPortfolioItems flattens room content into portfolio cards. Ids are
// positional within each room so they stay stable for an unchanged scan.
func ToPortfolioItems(rc RoomContent) []Item {
	items := make([]Item, 0, rc.Total())
	for i, e := range rc.Practices {
		items = append(items, entryItem(e, fmt.Sprintf("practice-%d", i), emojiPractice,
			"Untitled Practice", "Core methodology and approach", CategoryPractices, "practice"))
	}
	for i, e := range rc.Cases {
		items = append(items, entryItem(e, fmt.Sprintf("case-%d", i), emojiCase,
			"Untitled Project", "Project case study and systems thinking breakdown", CategoryProjects, "case"))
	}
	for i, e := range rc.Journey {
		items = append(items, entryItem(e, fmt.Sprintf("journey-%d", i), emojiJourney,
			"Untitled Entry", "Personal essay and reflection", CategoryJourney, "journal"))
	}
	for i, e := range rc.Connections {
		items = append(items, entryItem(e, fmt.Sprintf("connection-%d", i), emojiConnection,
			"Untitled Connection", "Networked idea and system thinking", CategoryThinking, "connection"))
	}
	return items
}

func entryItem(e Entry, id, emoji, untitled, description string, category Category, kind string) Item {
	title := e.Title
	if title == "" {
		title = untitled
	}
	return Item{
		ID:          id,
		Emoji:       emoji,
		Title:       title,
		Description: description,
		Content:     e.Description,
		Category:    category,
		Metadata:    map[string]string{"type": kind, "url": e.URL},
	}
}

// SampleItems returns the fallback portfolio used when the workspace is empty
// or unreachable.
func SampleItems() []Item {
	return []Item{
		sample("sample-1", emojiPractice, "Systems Thinking Practice",
			"Core methodology for interconnected design",
			"A framework for understanding how brands exist as living systems of relationships, touchpoints, and experiences that evolve together. This practice emphasizes seeing the whole system, not just isolated elements.",
			CategoryPractices, "practice"),
		sample("sample-2", emojiCase, "Brand Redesign Case Study",
			"Systems thinking applied to brand strategy",
			"How a comprehensive brand system was designed to unify visual identity, voice, and customer experience across all touchpoints. Measurable impact on brand recognition and customer trust.",
			CategoryProjects, "case"),
		sample("sample-3", emojiJourney, "Embodied Learning Journey",
			"Personal essay on vulnerability and growth",
			"Reflections on identity shifts, community connection, and the messy process of becoming. Real mastery comes not from reading alone, but from doing, iterating, and learning through embodied practice.",
			CategoryJourney, "journal"),
		sample("sample-4", emojiConnection, "Rhizomatic Thinking Network",
			"How ideas interconnect across domains",
			"A visual and conceptual map showing how practices, principles, and projects link unexpectedly. Networks over hierarchies: nothing stands alone.",
			CategoryThinking, "connection"),
		sample("sample-5", emojiPractice, "Community Weaving Ritual",
			"Intentional practice for gathering people",
			"How to create spaces where people with shared intention gather to think together, not just consume. Process-driven, authentic, co-creative.",
			CategoryPractices, "practice"),
		sample("sample-6", emojiCase, "Design System Architecture",
			"Building systems that scale intentionally",
			"Creating comprehensive design systems that maintain consistency while allowing for flexibility and evolution. How constraints enable creativity.",
			CategoryProjects, "case"),
	}
}

func sample(id, emoji, title, description, body string, category Category, kind string) Item {
	return Item{
		ID:          id,
		Emoji:       emoji,
		Title:       title,
		Description: description,
		Content:     body,
		Category:    category,
		Metadata:    map[string]string{"type": kind, "source": SourceSample},
	}
}

// SortByCategory orders items alphabetically by category, keeping the
// relative order of items within a category.
func SortByCategory(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Category < items[j].Category
	})
}

// FilterByCategory keeps items whose category matches raw ignoring case.
func FilterByCategory(items []Item, raw string) []Item {
	filtered := []Item{}
	category, ok := ParseCategory(raw)
	if !ok {
		return filtered
	}
	for _, item := range items {
		if item.Category == category {
			filtered = append(filtered, item)
		}
	}
	return filtered
}

// ItemsSource reports where a set of items came from.
func ItemsSource(items []Item) string {
	if len(items) > 0 && items[0].Metadata["source"] == SourceSample {
		return SourceSample
	}
	return "notion"
}

// SampleRoomContent groups the sample items back into rooms so documents
// built from room content can fall back to the same sample set.
func SampleRoomContent() RoomContent {
	rc := RoomContent{
		Statement:   DefaultStatement,
		Practices:   []Entry{},
		Cases:       []Entry{},
		Journey:     []Entry{},
		Connections: []Entry{},
	}
	for _, item := range SampleItems() {
		entry := Entry{ID: item.ID, Title: item.Title, Type: item.Metadata["type"], Description: item.Content}
		switch item.Category {
		case CategoryPractices:
			rc.Practices = append(rc.Practices, entry)
		case CategoryProjects:
			rc.Cases = append(rc.Cases, entry)
		case CategoryJourney:
			rc.Journey = append(rc.Journey, entry)
		default:
			rc.Connections = append(rc.Connections, entry)
		}
	}
	return rc
}

// LoadItems scans source into sorted portfolio items. A nil source, a failed
// scan, or an empty workspace yields the sample set; the error is logged and
// never returned.
func LoadItems(ctx context.Context, source Source) []Item {
	items := loadItems(ctx, source)
	SortByCategory(items)
	return items
}

func loadItems(ctx context.Context, source Source) []Item {
	if source == nil {
		return SampleItems()
	}
	rc, err := source.Scan(ctx)
	if err != nil {
		log.Printf("portfolio: workspace scan failed, using samples: %v", err)
		return SampleItems()
	}
	items := ToPortfolioItems(rc)
	if len(items) == 0 {
		log.Printf("portfolio: workspace has no portfolio pages, using samples")
		return SampleItems()
	}
	return items
}
