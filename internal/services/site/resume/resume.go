// Package resume builds the living resume from workspace room content and
// renders it as JSON, markdown, or an HTML page.
package resume

import (
	"fmt"
	"time"

	"github.com/atelierfolio/atelier/internal/content"
)

const (
	// SourceLive marks documents built from a successful workspace scan.
	SourceLive = "notion-live"
	// SourceSample marks documents built from the sample content.
	SourceSample = "sample"
)

// Format selects a resume rendering.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
)

// ParseFormat resolves a query value. Empty means markdown.
func ParseFormat(raw string) (Format, bool) {
	switch Format(raw) {
	case "", FormatMarkdown:
		return FormatMarkdown, true
	case FormatJSON:
		return FormatJSON, true
	default:
		return "", false
	}
}

// Entry is one item in a resume section.
type Entry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Type        string `json:"type"`
}

// Document is the structured resume.
type Document struct {
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Location    string    `json:"location"`
	Philosophy  string    `json:"philosophy"`
	Practices   []Entry   `json:"practices"`
	CaseStudies []Entry   `json:"caseStudies"`
	Journey     []Entry   `json:"journey"`
	Connections []Entry   `json:"connections"`
	Values      []string  `json:"values"`
	LastUpdated time.Time `json:"lastUpdated"`
	Source      string    `json:"source"`
}

var values = []string{
	"Process over polish",
	"Vulnerability as strength",
	"Agency over capture",
	"Systems over surfaces",
	"Collaboration as thinking",
}

// Build assembles a document from room content.
func Build(rc content.RoomContent, now time.Time, source string) Document {
	return Document{
		Name:        "Haley Bird",
		Title:       "Brand & Systems Architect",
		Location:    "Portland, Oregon",
		Philosophy:  "I design systems that expand human agency instead of constraining it. Combining systems thinking with radical transparency and embodied learning.",
		Practices:   section(rc.Practices, "practice", "Practice", "methodology"),
		CaseStudies: section(rc.Cases, "case", "Project", "project"),
		Journey:     section(rc.Journey, "journey", "Reflection", "thinking"),
		Connections: section(rc.Connections, "connection", "Connection", "system-thinking"),
		Values:      append([]string(nil), values...),
		LastUpdated: now.UTC(),
		Source:      source,
	}
}

func section(entries []content.Entry, idPrefix, untitled, kind string) []Entry {
	out := make([]Entry, 0, len(entries))
	for i, e := range entries {
		title := e.Title
		if title == "" {
			title = fmt.Sprintf("%s %d", untitled, i+1)
		}
		out = append(out, Entry{
			ID:          fmt.Sprintf("%s-%d", idPrefix, i),
			Title:       title,
			Description: e.Description,
			Type:        kind,
		})
	}
	return out
}
