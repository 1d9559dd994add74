package room

import "regexp"

// Parent returns the breadcrumb parent of id.
func Parent(id ID) (ID, bool) {
	switch id {
	case Statement, Rooms:
		return Hero, true
	case Portals, Garden, Practices:
		return Statement, true
	case Journey:
		return Portals, true
	case Connections:
		return Garden, true
	case Process:
		return Connections, true
	case Cases:
		return Practices, true
	default:
		return "", false
	}
}

// Related returns the rooms reachable forward from id.
func Related(id ID) []ID {
	switch id {
	case Statement:
		return []ID{Portals, Practices}
	case Portals:
		return []ID{Journey, Garden}
	case Journey:
		return []ID{Connections}
	case Garden:
		return []ID{Practices, Connections}
	case Practices:
		return []ID{Cases, Connections}
	case Connections:
		return []ID{Process, Cases}
	case Process:
		return []ID{Cases}
	default:
		return nil
	}
}

// BreadcrumbLabel is the short label used in breadcrumb trails.
func BreadcrumbLabel(id ID) string {
	switch id {
	case Statement:
		return "Philosophy"
	case Portals:
		return "Perspectives"
	default:
		return MetadataFor(id).Label
	}
}

// Trail returns the breadcrumb path from the root down to id.
func Trail(id ID) []ID {
	if !id.Valid() {
		return nil
	}
	trail := []ID{id}
	current := id
	// The parent graph is a tree rooted at hero; bound the walk anyway.
	for range len(All()) {
		parent, ok := Parent(current)
		if !ok {
			break
		}
		trail = append([]ID{parent}, trail...)
		current = parent
	}
	return trail
}

// Link is a room reference found in free text.
type Link struct {
	Target ID
	Label  string
}

var (
	bracketLinkPattern = regexp.MustCompile(`\[\[([^\]]+)\]\]`)
	hashLinkPattern    = regexp.MustCompile(`#([a-z-]+)`)
)

// ExtractLinks finds [[room]] and #room references in text. Bracket links
// come first; hash links are skipped when their target is already linked.
func ExtractLinks(text string) []Link {
	var links []Link
	for _, m := range bracketLinkPattern.FindAllStringSubmatch(text, -1) {
		if target, ok := Resolve(m[1]); ok {
			links = append(links, Link{Target: target, Label: m[1]})
		}
	}
	for _, m := range hashLinkPattern.FindAllStringSubmatch(text, -1) {
		target, ok := Resolve(m[1])
		if !ok || linked(links, target) {
			continue
		}
		links = append(links, Link{Target: target, Label: m[1]})
	}
	return links
}

func linked(links []Link, target ID) bool {
	for _, l := range links {
		if l.Target == target {
			return true
		}
	}
	return false
}
