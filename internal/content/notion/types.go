package notion

import "strings"

// RichText is one styled run of text.
type RichText struct {
	PlainText string `json:"plain_text"`
}

func plainText(runs []RichText) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.PlainText)
	}
	return b.String()
}

// Property is a page property. Only title properties are decoded.
type Property struct {
	Type  string     `json:"type"`
	Title []RichText `json:"title,omitempty"`
}

// Icon is a page icon.
type Icon struct {
	Type     string `json:"type"`
	Emoji    string `json:"emoji,omitempty"`
	External *File  `json:"external,omitempty"`
	File     *File  `json:"file,omitempty"`
}

// File references a hosted or external asset.
type File struct {
	URL string `json:"url"`
}

// Page is a workspace page as returned by search and page retrieval.
type Page struct {
	Object     string              `json:"object"`
	ID         string              `json:"id"`
	URL        string              `json:"url"`
	Icon       *Icon               `json:"icon,omitempty"`
	Cover      *Icon               `json:"cover,omitempty"`
	Properties map[string]Property `json:"properties"`
}

var titleProperties = []string{"title", "Name", "Title"}

// Title returns the first non-empty title property.
func (p Page) Title() string {
	for _, key := range titleProperties {
		prop, ok := p.Properties[key]
		if !ok {
			continue
		}
		if title := strings.TrimSpace(plainText(prop.Title)); title != "" {
			return title
		}
	}
	return ""
}

// IconText returns the icon emoji or url.
func (p Page) IconText() string {
	return iconText(p.Icon)
}

func iconText(icon *Icon) string {
	if icon == nil {
		return ""
	}
	switch {
	case icon.Emoji != "":
		return icon.Emoji
	case icon.External != nil:
		return icon.External.URL
	case icon.File != nil:
		return icon.File.URL
	}
	return ""
}

// TextBlock is the payload of paragraph and heading blocks.
type TextBlock struct {
	RichText []RichText `json:"rich_text"`
}

// ImageBlock is the payload of image blocks.
type ImageBlock struct {
	Type     string `json:"type"`
	External *File  `json:"external,omitempty"`
	File     *File  `json:"file,omitempty"`
}

// LinkBlock is the payload of link_to_page blocks.
type LinkBlock struct {
	Type   string `json:"type"`
	PageID string `json:"page_id,omitempty"`
}

// ChildPage is the payload of child_page blocks.
type ChildPage struct {
	Title string `json:"title"`
}

// Block is one content block of a page.
type Block struct {
	ID         string      `json:"id"`
	Type       string      `json:"type"`
	Paragraph  *TextBlock  `json:"paragraph,omitempty"`
	Heading1   *TextBlock  `json:"heading_1,omitempty"`
	Heading2   *TextBlock  `json:"heading_2,omitempty"`
	Heading3   *TextBlock  `json:"heading_3,omitempty"`
	Image      *ImageBlock `json:"image,omitempty"`
	LinkToPage *LinkBlock  `json:"link_to_page,omitempty"`
	ChildPage  *ChildPage  `json:"child_page,omitempty"`
}

type listResponse[T any] struct {
	Results    []T    `json:"results"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor"`
}
