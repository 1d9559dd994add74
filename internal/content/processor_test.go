package content

import (
	"strings"
	"testing"
)

func TestDetectType(t *testing.T) {
	tests := []struct {
		title string
		want  ContentType
	}{
		{"The Transmission", TypeBook},
		{"Daily Method", TypePractice},
		{"Field Study", TypeCaseStudy},
		{"Thinking Out Loud", TypeReflection},
		{"System Map", TypeNetwork},
		{"Untethered", TypeEssay},
	}
	for _, tt := range tests {
		if got := DetectType(tt.title); got != tt.want {
			t.Fatalf("DetectType(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestExtractBody(t *testing.T) {
	body, images, linked := ExtractBody([]Block{
		{Type: "heading_1", Content: "Intro"},
		{Type: "paragraph", Content: "First line."},
		{Type: "heading_2", Content: "Detail"},
		{Type: "paragraph", Content: ""},
		{Type: "image", ImageURL: "https://img/1.png"},
		{Type: "link_to_page", Content: "page-2"},
	})
	want := "# Intro\nFirst line.\n\n## Detail"
	if body != want {
		t.Fatalf("body = %q, want %q", body, want)
	}
	if len(images) != 1 || images[0] != "https://img/1.png" {
		t.Fatalf("images = %v", images)
	}
	if len(linked) != 1 || linked[0] != "page-2" {
		t.Fatalf("linked = %v", linked)
	}
}

func TestChooseFormat(t *testing.T) {
	long := strings.Repeat("x", 5001)
	tests := []struct {
		name   string
		typ    ContentType
		body   string
		images []string
		linked []string
		want   DisplayFormat
	}{
		{"book", TypeBook, "", nil, nil, FormatFlipbook},
		{"network", TypeNetwork, "", nil, nil, FormatInteractiveNetwork},
		{"practice", TypePractice, "", nil, nil, FormatCard},
		{"case", TypeCaseStudy, "", nil, nil, FormatTimeline},
		{"images", TypeEssay, long, []string{"a"}, nil, FormatCard},
		{"long", TypeEssay, long, nil, nil, FormatPaginated},
		{"linked", TypeEssay, "", nil, []string{"a", "b", "c"}, FormatInteractiveNetwork},
		{"plain", TypeReflection, "short", nil, []string{"a"}, FormatLongForm},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ChooseFormat(tt.typ, tt.body, tt.images, tt.linked); got != tt.want {
				t.Fatalf("ChooseFormat = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExcerpt(t *testing.T) {
	tests := []struct {
		name string
		body string
		max  int
		want string
	}{
		{"empty", "", 200, ""},
		{"two sentences", "One idea. Another idea. Third.", 200, "One idea. Another idea…"},
		{"single", "Only one.", 200, "Only one…"},
		{"truncated", "Alpha beta. Gamma delta", 15, "Alpha beta. Gam…"},
		{"long first", "Abcdefghij klm. Next", 5, "Abcdefghij klm…"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Excerpt(tt.body, tt.max); got != tt.want {
				t.Fatalf("Excerpt = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestProcessMockPage(t *testing.T) {
	page := MockPage(PageProjects)
	p := Process(page.Title, page.Blocks)
	if p.Type != TypeCaseStudy {
		t.Fatalf("Type = %q, want case-study", p.Type)
	}
	if p.DisplayFormat != FormatTimeline {
		t.Fatalf("DisplayFormat = %q, want timeline", p.DisplayFormat)
	}
	if !strings.HasPrefix(p.Body, "# Brand Systems") {
		t.Fatalf("Body = %q", p.Body)
	}
	if !strings.HasSuffix(p.Excerpt, "…") {
		t.Fatalf("Excerpt = %q", p.Excerpt)
	}
}
