// Package sitemap renders a site's pages as a sitemaps.org 0.9 XML document.
//
// Generation is a pure string transformation: page paths are appended to the
// site URL verbatim and nothing is validated. The only input that is not part
// of the Config is the <lastmod> timestamp, taken from the generator's clock
// once per call.
package sitemap

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Namespace is the sitemaps.org schema namespace used on <urlset>.
const Namespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// ChangeFreq is the <changefreq> value of a sitemap entry.
type ChangeFreq string

const (
	Always  ChangeFreq = "always"
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
	Never   ChangeFreq = "never"
)

// ChangeFreqs lists every allowed ChangeFreq.
var ChangeFreqs = []ChangeFreq{Always, Hourly, Daily, Weekly, Monthly, Yearly, Never}

// Valid reports whether c is one of the sitemaps.org values.
func (c ChangeFreq) Valid() bool {
	for _, f := range ChangeFreqs {
		if c == f {
			return true
		}
	}
	return false
}

// ParseChangeFreq converts s to a ChangeFreq.
func ParseChangeFreq(s string) (ChangeFreq, error) {
	c := ChangeFreq(strings.ToLower(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("invalid changefreq %q", s)
	}
	return c, nil
}

const (
	DefaultPriority   = 0.8
	RootPriority      = 1.0
	DefaultChangeFreq = Daily
)

// Page is a navigable page of the site.
type Page struct {
	Name string
	Path string
}

// AdditionalPage is an extra sitemap entry with optional overrides. A nil
// Priority or empty ChangeFreq falls back to the defaults.
type AdditionalPage struct {
	Path       string
	Priority   *float64
	ChangeFreq ChangeFreq
}

// Config is the input to Generate.
type Config struct {
	SiteURL         string
	Pages           []Page
	AdditionalPages []AdditionalPage
}

// Entry is one <url> element after defaults are applied.
type Entry struct {
	Path       string
	Priority   float64
	ChangeFreq ChangeFreq
}

// Entries derives the sitemap entries for cfg: pages first, then additional
// pages, both in input order. Only navigation pages get the root priority.
func Entries(cfg Config) []Entry {
	entries := make([]Entry, 0, len(cfg.Pages)+len(cfg.AdditionalPages))

	for _, p := range cfg.Pages {
		priority := DefaultPriority
		if p.Path == "/" {
			priority = RootPriority
		}
		entries = append(entries, Entry{
			Path:       p.Path,
			Priority:   priority,
			ChangeFreq: DefaultChangeFreq,
		})
	}

	for _, p := range cfg.AdditionalPages {
		e := Entry{
			Path:       p.Path,
			Priority:   DefaultPriority,
			ChangeFreq: DefaultChangeFreq,
		}
		if p.Priority != nil {
			e.Priority = *p.Priority
		}
		if p.ChangeFreq != "" {
			e.ChangeFreq = p.ChangeFreq
		}
		entries = append(entries, e)
	}

	return entries
}

// Generator renders sitemaps. The zero value is not usable; use NewGenerator.
type Generator struct {
	now func() time.Time
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock replaces time.Now, which tests use to get stable output.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// NewGenerator creates a Generator.
func NewGenerator(opts ...Option) *Generator {
	g := &Generator{now: time.Now}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate renders cfg with the current time as <lastmod>.
func Generate(cfg Config) string {
	return NewGenerator().Generate(cfg)
}

// Generate renders cfg as a sitemap document.
func (g *Generator) Generate(cfg Config) string {
	lastmod := FormatLastMod(g.now())
	entries := Entries(cfg)

	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		var b strings.Builder
		b.WriteString("  <url>\n")
		b.WriteString("    <loc>")
		writeEscaped(&b, cfg.SiteURL+e.Path)
		b.WriteString("</loc>\n")
		fmt.Fprintf(&b, "    <lastmod>%s</lastmod>\n", lastmod)
		b.WriteString("    <changefreq>")
		writeEscaped(&b, string(e.ChangeFreq))
		b.WriteString("</changefreq>\n")
		fmt.Fprintf(&b, "    <priority>%s</priority>\n", FormatPriority(e.Priority))
		b.WriteString("  </url>")
		blocks = append(blocks, b.String())
	}

	var doc strings.Builder
	doc.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	doc.WriteString("\n")
	fmt.Fprintf(&doc, "<urlset xmlns=%q>\n", Namespace)
	doc.WriteString(strings.Join(blocks, "\n"))
	doc.WriteString("\n</urlset>\n")

	return doc.String()
}

// FormatLastMod renders t as an ISO-8601 UTC timestamp with milliseconds.
func FormatLastMod(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05.000Z")
}

// FormatPriority renders p in its shortest form: 1, 0.8, 0.25.
func FormatPriority(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}

func writeEscaped(b *strings.Builder, s string) {
	// strings.Builder never returns a write error.
	_ = xml.EscapeText(b, []byte(s))
}
