package content

import "strconv"

// PageKind names a page the site publishes on request.
type PageKind string

const (
	PageHiring        PageKind = "hiring"
	PageProjects      PageKind = "projects"
	PageCollaborators PageKind = "collaborators"
)

// PageKinds lists the published page kinds.
func PageKinds() []PageKind {
	return []PageKind{PageHiring, PageProjects, PageCollaborators}
}

// ParsePageKind resolves a raw kind. Unknown kinds fall back to hiring and
// report false.
func ParsePageKind(raw string) (PageKind, bool) {
	switch PageKind(raw) {
	case PageHiring, PageProjects, PageCollaborators:
		return PageKind(raw), true
	default:
		return PageHiring, false
	}
}

// Block is one rendered unit of page content.
type Block struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Content  string `json:"content"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Page is a workspace page flattened for display.
type Page struct {
	ID         string         `json:"id"`
	Title      string         `json:"title"`
	Icon       string         `json:"icon,omitempty"`
	Cover      string         `json:"cover,omitempty"`
	Properties map[string]any `json:"properties"`
	Blocks     []Block        `json:"blocks"`
	Processed  *Processed     `json:"processed,omitempty"`
}

// MockPage returns the built-in page for kind.
func MockPage(kind PageKind) Page {
	switch kind {
	case PageProjects:
		return mockPage("projects-page", "Selected Work", "📐",
			"heading_1", "Brand Systems",
			"heading_2", "TechCorp Identity Redesign",
			"paragraph", "Complete brand transformation for a B2B technology company, creating a modular visual system that flexes across digital and physical touchpoints.",
			"heading_2", "Startup Accelerator Brand Architecture",
			"paragraph", "Developed a parent-child brand architecture for a multi-program accelerator, establishing clear relationships between sub-brands while maintaining cohesive identity.",
			"heading_1", "Design Systems",
			"heading_2", "Enterprise Design Language",
			"paragraph", "Built a comprehensive design language serving 12 product teams, including component libraries, documentation, and governance processes.",
		)
	case PageCollaborators:
		return mockPage("collaborators-page", "Collaboration Approach", "🤝",
			"heading_1", "How I Work",
			"paragraph", "Collaboration is at the heart of systems thinking. I approach every project as a partnership, bringing together diverse perspectives to create something greater than any individual contribution.",
			"heading_2", "Discovery & Alignment",
			"paragraph", "Every engagement begins with deep listening - understanding not just what you need, but why you need it and how it connects to your larger vision.",
			"heading_2", "Iterative Creation",
			"paragraph", "I work in cycles of creation and refinement, sharing work early and often to ensure alignment and incorporate feedback meaningfully.",
			"heading_2", "Knowledge Transfer",
			"paragraph", "My goal is not just to deliver work, but to leave you with the understanding and tools to evolve the system over time.",
		)
	default:
		return mockPage("resume-page", "Haley Bird - Resume", "✨",
			"heading_1", "Experience",
			"paragraph", "Brand & Systems Architect with 8+ years of experience crafting strategic brand identities and design systems for forward-thinking organizations.",
			"heading_2", "Senior Brand Strategist",
			"paragraph", "Led brand strategy initiatives for Fortune 500 clients, developing comprehensive brand systems that unified visual identity, voice, and customer experience across all touchpoints.",
			"heading_2", "Design Systems Lead",
			"paragraph", "Architected scalable design systems serving 50+ product teams, reducing design-to-development time by 40% while maintaining brand consistency.",
			"heading_1", "Philosophy",
			"paragraph", "I believe that great brands are living systems - interconnected networks of meaning that grow and adapt with their communities. My approach combines analytical rigor with creative intuition.",
		)
	}
}

// mockPage builds a page from alternating block type and content pairs.
func mockPage(id, title, icon string, pairs ...string) Page {
	blocks := make([]Block, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		blocks = append(blocks, Block{
			ID:      strconv.Itoa(len(blocks) + 1),
			Type:    pairs[i],
			Content: pairs[i+1],
		})
	}
	return Page{ID: id, Title: title, Icon: icon, Properties: map[string]any{}, Blocks: blocks}
}
