package content

import (
	"regexp"
	"strings"
)

// ContentType classifies a page for presentation.
type ContentType string

const (
	TypeEssay      ContentType = "essay"
	TypeBook       ContentType = "book"
	TypePractice   ContentType = "practice"
	TypeCaseStudy  ContentType = "case-study"
	TypeReflection ContentType = "reflection"
	TypeNetwork    ContentType = "network"
)

// DisplayFormat is the layout a client should use for a page.
type DisplayFormat string

const (
	FormatLongForm           DisplayFormat = "long-form"
	FormatPaginated          DisplayFormat = "paginated"
	FormatInteractiveNetwork DisplayFormat = "interactive-network"
	FormatFlipbook           DisplayFormat = "flipbook"
	FormatCard               DisplayFormat = "card"
	FormatTimeline           DisplayFormat = "timeline"
)

const (
	// DefaultExcerptLength bounds excerpts built by Excerpt.
	DefaultExcerptLength = 200
	paginateThreshold    = 5000
)

// Processed is the presentation summary of a page.
type Processed struct {
	Type          ContentType   `json:"type"`
	Body          string        `json:"body"`
	Excerpt       string        `json:"excerpt"`
	Images        []string      `json:"images"`
	LinkedPages   []string      `json:"linkedPages"`
	DisplayFormat DisplayFormat `json:"displayFormat"`
}

// DetectType classifies a page by keywords in its title.
func DetectType(title string) ContentType {
	lower := strings.ToLower(title)
	switch {
	case containsAny(lower, []string{"book", "transmission"}):
		return TypeBook
	case containsAny(lower, practiceKeywords):
		return TypePractice
	case containsAny(lower, []string{"case", "project", "study", "work"}):
		return TypeCaseStudy
	case containsAny(lower, []string{"journey", "personal", "essay", "reflection", "thinking"}):
		return TypeReflection
	case containsAny(lower, []string{"connection", "system", "network"}):
		return TypeNetwork
	default:
		return TypeEssay
	}
}

// ExtractBody joins paragraph and heading text into a markdown-ish body and
// collects image urls and linked page ids.
func ExtractBody(blocks []Block) (body string, images, linked []string) {
	var b strings.Builder
	images = []string{}
	linked = []string{}
	for _, block := range blocks {
		switch block.Type {
		case "paragraph":
			if block.Content != "" {
				b.WriteString(block.Content)
				b.WriteString("\n")
			}
		case "heading_1":
			if block.Content != "" {
				b.WriteString("\n# " + block.Content + "\n")
			}
		case "heading_2":
			if block.Content != "" {
				b.WriteString("\n## " + block.Content + "\n")
			}
		case "image":
			if block.ImageURL != "" {
				images = append(images, block.ImageURL)
			}
		case "link_to_page":
			if block.Content != "" {
				linked = append(linked, block.Content)
			}
		case "child_page":
			linked = append(linked, block.ID)
		}
	}
	return strings.TrimSpace(b.String()), images, linked
}

// ChooseFormat picks a display format from the content type and shape.
func ChooseFormat(t ContentType, body string, images, linked []string) DisplayFormat {
	switch {
	case t == TypeBook:
		return FormatFlipbook
	case t == TypeNetwork:
		return FormatInteractiveNetwork
	case t == TypePractice:
		return FormatCard
	case t == TypeCaseStudy:
		return FormatTimeline
	case len(images) > 0:
		return FormatCard
	case len(body) > paginateThreshold:
		return FormatPaginated
	case len(linked) > 2:
		return FormatInteractiveNetwork
	default:
		return FormatLongForm
	}
}

var sentenceBreak = regexp.MustCompile(`[.!?]+`)

// Excerpt returns the first sentence, extended by the second when short,
// truncated to max runes and terminated with an ellipsis. An empty body
// yields an empty excerpt.
func Excerpt(body string, max int) string {
	if body == "" {
		return ""
	}
	if max <= 0 {
		max = DefaultExcerptLength
	}
	sentences := sentenceBreak.Split(body, -1)
	excerpt := strings.TrimSpace(sentences[0])
	if len([]rune(excerpt)) < max && len(sentences) > 1 && sentences[1] != "" {
		excerpt = truncate(excerpt+". "+strings.TrimSpace(sentences[1]), max)
	}
	if excerpt == "" {
		return truncate(body, max) + "…"
	}
	return excerpt + "…"
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Process summarizes a page for presentation.
func Process(title string, blocks []Block) Processed {
	t := DetectType(title)
	body, images, linked := ExtractBody(blocks)
	return Processed{
		Type:          t,
		Body:          body,
		Excerpt:       Excerpt(body, DefaultExcerptLength),
		Images:        images,
		LinkedPages:   linked,
		DisplayFormat: ChooseFormat(t, body, images, linked),
	}
}
