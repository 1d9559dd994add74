package room

// DisplayType is how a room lays out its content.
type DisplayType string

const (
	DisplayText    DisplayType = "text"
	DisplayGallery DisplayType = "gallery"
	DisplayHybrid  DisplayType = "hybrid"
)

// ContentSource says where a room's content comes from.
type ContentSource string

const (
	SourceInternal ContentSource = "internal"
	SourceNotion   ContentSource = "notion"
	SourceBoth     ContentSource = "both"
)

// Metadata describes a room for navigation chrome.
type Metadata struct {
	ID            ID
	Label         string
	Description   string
	Emoji         string
	DisplayType   DisplayType
	ContentSource ContentSource
	// NotionPageKey names the workspace page backing the room, if any.
	NotionPageKey string
}

// MetadataFor returns the navigation metadata of id, falling back to the
// entry room.
func MetadataFor(id ID) Metadata {
	switch id {
	case Hero:
		return Metadata{ID: Hero, Label: "Home", Description: "Entry point", Emoji: "🏠", DisplayType: DisplayText, ContentSource: SourceInternal}
	case Statement:
		return Metadata{ID: Statement, Label: "Statement", Description: "Brand philosophy and approach", Emoji: "✨", DisplayType: DisplayText, ContentSource: SourceInternal, NotionPageKey: "statement"}
	case Portals:
		return Metadata{ID: Portals, Label: "Portals", Description: "Audience-specific views", Emoji: "🔮", DisplayType: DisplayHybrid, ContentSource: SourceInternal}
	case Journey:
		return Metadata{ID: Journey, Label: "Personal Journey", Description: "Vulnerable thinking and learning", Emoji: "🌱", DisplayType: DisplayText, ContentSource: SourceBoth}
	case Garden:
		return Metadata{ID: Garden, Label: "Digital Garden", Description: "Seeds, Saplings, Fruits network", Emoji: "🌿", DisplayType: DisplayGallery, ContentSource: SourceNotion, NotionPageKey: "garden"}
	case Practices:
		return Metadata{ID: Practices, Label: "Practices", Description: "Core rituals and methodologies", Emoji: "🔧", DisplayType: DisplayText, ContentSource: SourceInternal}
	case Connections:
		return Metadata{ID: Connections, Label: "Connections", Description: "Networked ideas visualization", Emoji: "🕸️", DisplayType: DisplayHybrid, ContentSource: SourceInternal}
	case Process:
		return Metadata{ID: Process, Label: "Process", Description: "Behind-the-scenes thinking", Emoji: "📝", DisplayType: DisplayText, ContentSource: SourceNotion, NotionPageKey: "process"}
	case Cases:
		return Metadata{ID: Cases, Label: "Case Studies", Description: "Projects and systems thinking", Emoji: "📋", DisplayType: DisplayGallery, ContentSource: SourceBoth}
	case Rooms:
		return Metadata{ID: Rooms, Label: "Rooms", Description: "Immersive zones", Emoji: "🏛️", DisplayType: DisplayText, ContentSource: SourceInternal}
	case Footer:
		return Metadata{ID: Footer, Label: "Footer", Description: "Closing thoughts", Emoji: "👋", DisplayType: DisplayText, ContentSource: SourceInternal}
	default:
		return MetadataFor(Entry)
	}
}

// Order is the sequence rooms are visited in when stepping through the
// environment, and the keyframe order for scroll-driven moods.
func Order() []ID {
	return []ID{Statement, Portals, Journey, Garden, Practices, Connections, Process, Cases}
}

func orderIndex(id ID) int {
	for i, candidate := range Order() {
		if candidate == id {
			return i
		}
	}
	return -1
}

// Next returns the room after id in Order. Rooms outside the order and the
// last room have no successor.
func Next(id ID) (ID, bool) {
	order := Order()
	i := orderIndex(id)
	if i < 0 || i >= len(order)-1 {
		return "", false
	}
	return order[i+1], true
}

// Previous returns the room before id in Order.
func Previous(id ID) (ID, bool) {
	i := orderIndex(id)
	if i <= 0 {
		return "", false
	}
	return Order()[i-1], true
}
