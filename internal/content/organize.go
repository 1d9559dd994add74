package content

import "strings"

// DefaultStatement is shown in the statement room when the workspace has none.
const DefaultStatement = "Welcome to my thinking practice."

// PageSummary is the minimal page shape needed for room organization.
type PageSummary struct {
	ID    string
	Title string
	URL   string
}

var (
	practiceKeywords = []string{"practice", "ritual", "method"}
	caseKeywords     = []string{"case", "project", "work", "study"}
	journeyKeywords  = []string{"journey", "personal", "essay", "reflection"}
)

// Organize assigns pages to rooms by title keywords. Pages without a title
// are skipped.
func Organize(pages []PageSummary) RoomContent {
	rc := RoomContent{
		Statement:   DefaultStatement,
		Practices:   []Entry{},
		Cases:       []Entry{},
		Journey:     []Entry{},
		Connections: []Entry{},
	}
	for _, page := range pages {
		title := strings.TrimSpace(page.Title)
		if title == "" {
			continue
		}
		entry := Entry{ID: page.ID, Title: title, URL: page.URL}
		lower := strings.ToLower(title)
		switch {
		case containsAny(lower, practiceKeywords):
			entry.Type = "practice"
			rc.Practices = append(rc.Practices, entry)
		case containsAny(lower, caseKeywords):
			entry.Type = "case"
			rc.Cases = append(rc.Cases, entry)
		case containsAny(lower, journeyKeywords):
			entry.Type = "entry"
			rc.Journey = append(rc.Journey, entry)
		default:
			entry.Type = "connection"
			rc.Connections = append(rc.Connections, entry)
		}
	}
	return rc
}

func containsAny(s string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(s, k) {
			return true
		}
	}
	return false
}
