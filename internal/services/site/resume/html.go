package resume

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

const pageStyle = `body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; line-height: 1.6; max-width: 900px; margin: 0 auto; padding: 40px; background: #1a1a1a; color: #f5f5f5; }
h1 { font-size: 2.5em; margin-bottom: 0.5em; }
h2 { font-size: 1.8em; margin-top: 1.5em; margin-bottom: 0.5em; border-bottom: 2px solid #4a4a4a; padding-bottom: 0.3em; }
h3 { font-size: 1.3em; margin-top: 1em; color: #e8e8e8; }
p { margin: 0.5em 0; }
ul, ol { margin: 1em 0; }
li { margin: 0.5em 0 0.5em 2em; }
em { color: #b0b0b0; }
strong { color: #ffffff; }
hr { border: none; border-top: 1px solid #4a4a4a; margin: 2em 0; }`

// Page renders the full HTML resume page.
func Page(doc Document) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.raw("<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n")
		p.raw("<meta charset=\"UTF-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
		p.raw("<title>")
		p.text(doc.Name + " - Resume")
		p.raw("</title>\n<style>\n" + pageStyle + "\n</style>\n</head>\n<body>\n")
		if p.err == nil {
			p.err = Body(doc).Render(ctx, w)
		}
		p.raw("</body>\n</html>\n")
		return p.err
	})
}

// Body renders the resume sections without the page chrome.
func Body(doc Document) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		p := &htmlWriter{w: w}
		p.element("h1", strings.ToUpper(doc.Name))
		p.element("h2", doc.Title+" | Design Practice Philosopher")
		p.raw("<p><strong>")
		p.text(doc.Location)
		p.raw("</strong> | haley@example.com | <a href=\"/\">Living Portfolio</a></p>\n")

		p.section("PHILOSOPHY")
		p.element("p", doc.Philosophy)

		p.section("CORE METHODOLOGIES")
		for _, e := range doc.Practices {
			p.element("h3", e.Title)
			p.element("p", orDefault(e.Description, "A core methodology and approach."))
		}

		p.section("CASE STUDIES & PROJECTS")
		for _, e := range doc.CaseStudies {
			p.element("h3", e.Title)
			p.element("p", orDefault(e.Description, "Project case study and systems thinking breakdown."))
		}

		p.section("THINKING & JOURNEY")
		for _, e := range doc.Journey {
			p.element("h3", e.Title)
			p.element("p", orDefault(e.Description, "Personal essay and reflection."))
		}

		p.section("CONNECTIONS & SYSTEMS THINKING")
		p.element("p", "How ideas interconnect across domains:")
		p.raw("<ul>\n")
		for _, e := range doc.Connections {
			p.raw("<li><strong>")
			p.text(e.Title)
			p.raw("</strong>: ")
			p.text(orDefault(e.Description, "Networked idea and system thinking"))
			p.raw("</li>\n")
		}
		p.raw("</ul>\n")

		p.section("VALUES & APPROACH")
		p.element("h3", "What I Believe")
		p.list("ol", beliefs)
		p.element("h3", "What I Refuse")
		p.list("ul", refusals)

		p.section("TECHNICAL & STRATEGIC SKILLS")
		p.list("ul", skills)

		p.raw("<hr>\n<p><strong>Last updated:</strong> ")
		p.text(doc.LastUpdated.Format(DisplayDate))
		p.raw("</p>\n<p><em>This is a living document. My thinking evolves in real-time, and so does this résumé.</em></p>\n")
		return p.err
	})
}

// htmlWriter keeps the first write error so rendering code stays linear.
type htmlWriter struct {
	w   io.Writer
	err error
}

func (p *htmlWriter) raw(s string) {
	if p.err != nil {
		return
	}
	_, p.err = io.WriteString(p.w, s)
}

func (p *htmlWriter) text(s string) {
	p.raw(templ.EscapeString(s))
}

func (p *htmlWriter) element(tag, text string) {
	p.raw(fmt.Sprintf("<%s>", tag))
	p.text(text)
	p.raw(fmt.Sprintf("</%s>\n", tag))
}

func (p *htmlWriter) section(title string) {
	p.raw("<hr>\n")
	p.element("h2", title)
}

func (p *htmlWriter) list(tag string, items []string) {
	p.raw("<" + tag + ">\n")
	for _, item := range items {
		p.element("li", item)
	}
	p.raw("</" + tag + ">\n")
}
