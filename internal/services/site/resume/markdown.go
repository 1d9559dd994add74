package resume

import (
	"fmt"
	"strings"
)

// DisplayDate renders dates the way the resume footer shows them.
const DisplayDate = "January 2, 2006"

var beliefs = []string{
	"Process over polish—the work matters more than performance",
	"Vulnerability as strength—show your thinking, failures, learning",
	"Agency over capture—design for human possibility",
	"Systems over surfaces—change structures, not aesthetics",
	"Collaboration as thinking—best ideas emerge from genuine partnership",
}

var refusals = []string{
	"False polish hiding actual problems",
	"Design that serves capture over liberation",
	"Vulnerability as performance",
	"Hierarchical thinking masked as collaboration",
}

var skills = []string{
	"Systems thinking and complex problem mapping",
	"Brand strategy and identity systems",
	"Information architecture (hierarchical and rhizomatic)",
	"Experience design for accessibility and agency",
	"Notion integration and knowledge management",
	"Collaborative facilitation and stakeholder alignment",
}

const philosophyMarkdown = `I design systems—not surfaces. Everything I make refuses the separation between *what* gets made and *how* it gets made. Brands and organizations are living systems that either expand or constrain human possibility. I build the former.

**Core practice:** Combining systems thinking with radical transparency, embodied learning, and vulnerable authenticity. I don't hide the thinking; I make it navigable.`

// Markdown renders the document as a downloadable markdown resume.
func Markdown(doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n", strings.ToUpper(doc.Name))
	fmt.Fprintf(&b, "## %s | Design Practice Philosopher\n\n", doc.Title)
	fmt.Fprintf(&b, "**%s** | haley@example.com | [Living Portfolio](/)\n\n", doc.Location)

	heading(&b, "PHILOSOPHY")
	b.WriteString(philosophyMarkdown + "\n\n")

	heading(&b, "CORE METHODOLOGIES")
	for _, e := range doc.Practices {
		fmt.Fprintf(&b, "### %s\n%s\n\n", e.Title, orDefault(e.Description, "A core methodology and approach."))
	}

	heading(&b, "CASE STUDIES & PROJECTS")
	for _, e := range doc.CaseStudies {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", e.Title, orDefault(e.Description, "Project case study and systems thinking breakdown."))
	}

	heading(&b, "THINKING & JOURNEY")
	for _, e := range doc.Journey {
		fmt.Fprintf(&b, "### %s\n\n%s\n\n", e.Title, orDefault(e.Description, "Personal essay and reflection."))
	}

	heading(&b, "CONNECTIONS & SYSTEMS THINKING")
	b.WriteString("How ideas interconnect across domains:\n\n")
	for _, e := range doc.Connections {
		fmt.Fprintf(&b, "- **%s**: %s\n", e.Title, orDefault(e.Description, "Networked idea and system thinking"))
	}
	b.WriteString("\n")

	heading(&b, "VALUES & APPROACH")
	b.WriteString("### What I Believe\n")
	for i, belief := range beliefs {
		fmt.Fprintf(&b, "%d. %s\n", i+1, belief)
	}
	b.WriteString("\n### What I Refuse\n")
	for _, refusal := range refusals {
		fmt.Fprintf(&b, "- %s\n", refusal)
	}
	b.WriteString("\n")

	heading(&b, "TECHNICAL & STRATEGIC SKILLS")
	for _, skill := range skills {
		fmt.Fprintf(&b, "- %s\n", skill)
	}
	b.WriteString("\n---\n\n")

	fmt.Fprintf(&b, "**Last updated:** %s\n", doc.LastUpdated.Format(DisplayDate))
	b.WriteString("*This is a living document. My thinking evolves in real-time, and so does this résumé.*\n")
	b.WriteString("*Generated from live Notion workspace—always current, never archived.*\n")
	return b.String()
}

// heading opens a new section preceded by a rule.
func heading(b *strings.Builder, title string) {
	fmt.Fprintf(b, "---\n\n## %s\n\n", title)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
