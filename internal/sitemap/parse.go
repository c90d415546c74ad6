package sitemap

import (
	"encoding/xml"
	"fmt"
)

// URLSet represents a parsed <urlset>.
type URLSet struct {
	XMLName xml.Name `xml:"urlset"`
	URLs    []URL    `xml:"url"`
}

// URL is a single parsed <url> entry. Fields are kept as text so a check can
// report exactly what is on disk.
type URL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

// Parse parses a sitemap document.
func Parse(data []byte) (*URLSet, error) {
	var set URLSet
	if err := xml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("parse sitemap: %w", err)
	}
	if set.XMLName.Space != Namespace {
		return nil, fmt.Errorf("parse sitemap: unexpected namespace %q", set.XMLName.Space)
	}
	return &set, nil
}

// Verify checks that set lists exactly the entries cfg would produce, in
// order, with matching changefreq and priority. lastmod is not compared.
func Verify(set *URLSet, cfg Config) error {
	want := Entries(cfg)
	if len(set.URLs) != len(want) {
		return fmt.Errorf("sitemap has %d urls, expected %d", len(set.URLs), len(want))
	}

	for i, e := range want {
		got := set.URLs[i]
		if loc := cfg.SiteURL + e.Path; got.Loc != loc {
			return fmt.Errorf("url %d: loc %q, expected %q", i, got.Loc, loc)
		}
		if got.ChangeFreq != string(e.ChangeFreq) {
			return fmt.Errorf("url %d (%s): changefreq %q, expected %q", i, got.Loc, got.ChangeFreq, e.ChangeFreq)
		}
		if p := FormatPriority(e.Priority); got.Priority != p {
			return fmt.Errorf("url %d (%s): priority %q, expected %q", i, got.Loc, got.Priority, p)
		}
	}

	return nil
}
