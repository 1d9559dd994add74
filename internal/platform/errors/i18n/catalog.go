// Package i18n renders error codes into user-facing messages per locale.
package i18n

import (
	"maps"
	"slices"
	"strings"
	"sync"
	"text/template"

	"golang.org/x/text/language"
)

// BaseLocale is the locale every other catalog falls back to.
const BaseLocale = "en-US"

// Code mirrors errors.Code; importing it would create a cycle.
type Code = string

// Catalog holds the message templates of one locale. Templates are parsed
// lazily and a template that fails to parse renders as its raw text.
type Catalog struct {
	locale   string
	messages map[Code]string
}

type registry struct {
	mu       sync.RWMutex
	catalogs map[string]*Catalog
	order    []string
	matcher  language.Matcher
}

var locales = newRegistry(NewCatalog(BaseLocale, enUSMessages))

func newRegistry(base *Catalog) *registry {
	r := &registry{catalogs: map[string]*Catalog{}}
	r.add(base.locale, base)
	return r
}

// add stores c under locale. Locales that are not valid tags are reachable
// by exact name only. The base locale is added first so it wins ties.
// Callers hold mu.
func (r *registry) add(locale string, c *Catalog) {
	r.catalogs[locale] = c
	if _, err := language.Parse(locale); err != nil || slices.Contains(r.order, locale) {
		return
	}
	r.order = append(r.order, locale)
	tags := make([]language.Tag, len(r.order))
	for i, name := range r.order {
		tags[i] = language.MustParse(name)
	}
	r.matcher = language.NewMatcher(tags)
}

func (r *registry) find(requested string) *Catalog {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.catalogs[requested]; ok {
		return c
	}
	wanted, _, err := language.ParseAcceptLanguage(requested)
	if err != nil || len(wanted) == 0 {
		return r.catalogs[BaseLocale]
	}
	_, index, confidence := r.matcher.Match(wanted...)
	if confidence == language.No {
		return r.catalogs[BaseLocale]
	}
	return r.catalogs[r.order[index]]
}

// GetCatalog returns the catalog best matching locale, which may be a bare
// tag or a full Accept-Language header. Unknown locales get en-US.
func GetCatalog(locale string) *Catalog {
	requested := strings.TrimSpace(locale)
	if requested == "" {
		requested = BaseLocale
	}
	return locales.find(requested)
}

// RegisterCatalog makes cat available under locale.
func RegisterCatalog(locale string, cat *Catalog) {
	locales.mu.Lock()
	defer locales.mu.Unlock()
	locales.add(locale, cat)
}

// NewCatalog copies messages into a catalog for locale.
func NewCatalog(locale string, messages map[Code]string) *Catalog {
	return &Catalog{locale: locale, messages: maps.Clone(messages)}
}

func (c *Catalog) Locale() string {
	return c.locale
}

// Format renders the template for code with metadata. An unknown code
// renders as itself; missing metadata keys render as "<no value>".
func (c *Catalog) Format(code Code, metadata map[string]string) string {
	text, ok := c.messages[code]
	if !ok {
		return code
	}
	tmpl, err := template.New(code).Parse(text)
	if err != nil {
		return text
	}
	if metadata == nil {
		metadata = map[string]string{}
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, metadata); err != nil {
		return text
	}
	return out.String()
}
