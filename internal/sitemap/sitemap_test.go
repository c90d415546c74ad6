package sitemap

import (
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2024, 3, 9, 14, 5, 7, 123_000_000, time.UTC)

func fixedGenerator() *Generator {
	return NewGenerator(WithClock(func() time.Time { return fixedTime }))
}

func float(f float64) *float64 { return &f }

func TestGenerateDocument(t *testing.T) {
	cfg := Config{
		SiteURL: "https://ex.com",
		Pages: []Page{
			{Name: "Home", Path: "/"},
			{Name: "About", Path: "/about"},
		},
	}

	want := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url>
    <loc>https://ex.com/</loc>
    <lastmod>2024-03-09T14:05:07.123Z</lastmod>
    <changefreq>daily</changefreq>
    <priority>1</priority>
  </url>
  <url>
    <loc>https://ex.com/about</loc>
    <lastmod>2024-03-09T14:05:07.123Z</lastmod>
    <changefreq>daily</changefreq>
    <priority>0.8</priority>
  </url>
</urlset>
`

	assert.Equal(t, want, fixedGenerator().Generate(cfg))
}

func TestEntries(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []Entry
	}{
		{
			name: "empty config",
			cfg:  Config{SiteURL: "https://ex.com"},
			want: []Entry{},
		},
		{
			name: "root page gets top priority",
			cfg: Config{Pages: []Page{
				{Path: "/blog"},
				{Path: "/"},
			}},
			want: []Entry{
				{Path: "/blog", Priority: 0.8, ChangeFreq: Daily},
				{Path: "/", Priority: 1, ChangeFreq: Daily},
			},
		},
		{
			name: "additional pages use defaults",
			cfg: Config{AdditionalPages: []AdditionalPage{
				{Path: "/privacy"},
			}},
			want: []Entry{
				{Path: "/privacy", Priority: 0.8, ChangeFreq: Daily},
			},
		},
		{
			name: "additional root page is not promoted",
			cfg: Config{AdditionalPages: []AdditionalPage{
				{Path: "/"},
			}},
			want: []Entry{
				{Path: "/", Priority: 0.8, ChangeFreq: Daily},
			},
		},
		{
			name: "additional page overrides",
			cfg: Config{AdditionalPages: []AdditionalPage{
				{Path: "/terms", Priority: float(0.3), ChangeFreq: Yearly},
				{Path: "/archive", Priority: float(0)},
			}},
			want: []Entry{
				{Path: "/terms", Priority: 0.3, ChangeFreq: Yearly},
				{Path: "/archive", Priority: 0, ChangeFreq: Daily},
			},
		},
		{
			name: "pages come before additional pages",
			cfg: Config{
				Pages:           []Page{{Path: "/contact"}},
				AdditionalPages: []AdditionalPage{{Path: "/faq", ChangeFreq: Weekly}},
			},
			want: []Entry{
				{Path: "/contact", Priority: 0.8, ChangeFreq: Daily},
				{Path: "/faq", Priority: 0.8, ChangeFreq: Weekly},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Entries(tt.cfg))
		})
	}
}

func TestGenerateWithoutPages(t *testing.T) {
	out := fixedGenerator().Generate(Config{SiteURL: "https://ex.com"})

	set, err := Parse([]byte(out))
	require.NoError(t, err)
	assert.Empty(t, set.URLs)
	assert.True(t, strings.HasSuffix(out, "</urlset>\n"))
}

func TestGenerateEscapesLocations(t *testing.T) {
	cfg := Config{
		SiteURL: "https://ex.com",
		Pages:   []Page{{Path: "/search?q=a&b=<c>"}},
	}

	out := fixedGenerator().Generate(cfg)

	assert.Contains(t, out, "<loc>https://ex.com/search?q=a&amp;b=&lt;c&gt;</loc>")
}

func TestGenerateDoesNotNormalizeURLs(t *testing.T) {
	cfg := Config{
		SiteURL: "https://ex.com/",
		Pages:   []Page{{Path: "/docs"}},
	}

	out := fixedGenerator().Generate(cfg)

	assert.Contains(t, out, "<loc>https://ex.com//docs</loc>")
}

func TestGenerateUsesOneTimestampPerCall(t *testing.T) {
	calls := 0
	g := NewGenerator(WithClock(func() time.Time {
		calls++
		return fixedTime.Add(time.Duration(calls) * time.Hour)
	}))

	out := g.Generate(Config{
		SiteURL: "https://ex.com",
		Pages:   []Page{{Path: "/"}, {Path: "/a"}, {Path: "/b"}},
	})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 3, strings.Count(out, "<lastmod>2024-03-09T15:05:07.123Z</lastmod>"))
}

func TestFormatLastModConvertsToUTC(t *testing.T) {
	zone := time.FixedZone("UTC+2", 2*60*60)
	ts := time.Date(2024, 1, 1, 1, 30, 0, 0, zone)

	assert.Equal(t, "2023-12-31T23:30:00.000Z", FormatLastMod(ts))
}

func TestFormatPriority(t *testing.T) {
	tests := map[float64]string{
		1:    "1",
		0.8:  "0.8",
		0.25: "0.25",
		0:    "0",
		0.5:  "0.5",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatPriority(in))
	}
}

func TestParseChangeFreq(t *testing.T) {
	got, err := ParseChangeFreq(" Weekly ")
	require.NoError(t, err)
	assert.Equal(t, Weekly, got)

	_, err = ParseChangeFreq("fortnightly")
	assert.Error(t, err)

	for _, c := range ChangeFreqs {
		assert.True(t, c.Valid(), string(c))
	}
}

func TestParseRoundTripsGeneratedDocument(t *testing.T) {
	cfg := Config{
		SiteURL:         "https://ex.com",
		Pages:           []Page{{Path: "/"}, {Path: "/about"}},
		AdditionalPages: []AdditionalPage{{Path: "/legal", Priority: float(0.1), ChangeFreq: Monthly}},
	}

	set, err := Parse([]byte(fixedGenerator().Generate(cfg)))
	require.NoError(t, err)
	require.Len(t, set.URLs, 3)

	assert.Equal(t, "https://ex.com/legal", set.URLs[2].Loc)
	assert.Equal(t, "2024-03-09T14:05:07.123Z", set.URLs[2].LastMod)
	assert.Equal(t, "monthly", set.URLs[2].ChangeFreq)
	assert.Equal(t, "0.1", set.URLs[2].Priority)
	assert.NoError(t, Verify(set, cfg))
}

func TestParseRejectsForeignDocuments(t *testing.T) {
	_, err := Parse([]byte(`<urlset><url><loc>x</loc></url></urlset>`))
	assert.Error(t, err)

	_, err = Parse([]byte(`not xml`))
	assert.Error(t, err)
}

func TestVerifyDetectsDrift(t *testing.T) {
	cfg := Config{
		SiteURL: "https://ex.com",
		Pages:   []Page{{Path: "/"}, {Path: "/about"}},
	}
	set, err := Parse([]byte(fixedGenerator().Generate(cfg)))
	require.NoError(t, err)

	added := cfg
	added.Pages = append([]Page{}, cfg.Pages...)
	added.Pages = append(added.Pages, Page{Path: "/new"})
	assert.ErrorContains(t, Verify(set, added), "expected 3")

	renamed := Config{SiteURL: "https://ex.com", Pages: []Page{{Path: "/"}, {Path: "/team"}}}
	assert.ErrorContains(t, Verify(set, renamed), `expected "https://ex.com/team"`)

	reprioritized := Config{
		SiteURL:         "https://ex.com",
		Pages:           []Page{{Path: "/"}},
		AdditionalPages: []AdditionalPage{{Path: "/about", Priority: float(0.5)}},
	}
	assert.ErrorContains(t, Verify(set, reprioritized), "priority")
}

func TestWriteFile(t *testing.T) {
	fsys := memfs.New()

	path, err := WriteFile(fsys, DefaultOutputDir, "<urlset/>\n")
	require.NoError(t, err)
	assert.Equal(t, "docs/sitemap.xml", path)

	data, err := util.ReadFile(fsys, "docs/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, "<urlset/>\n", string(data))

	_, err = WriteFile(fsys, DefaultOutputDir, "<urlset></urlset>\n")
	require.NoError(t, err)
	data, err = util.ReadFile(fsys, "docs/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, "<urlset></urlset>\n", string(data))
}

func TestRobotsTxt(t *testing.T) {
	want := "User-agent: *\nAllow: /\n\nSitemap: https://ex.com/sitemap.xml\n"

	assert.Equal(t, want, RobotsTxt("https://ex.com"))
	assert.Equal(t, want, RobotsTxt("https://ex.com/"))

	fsys := memfs.New()
	path, err := WriteRobots(fsys, "public", "https://ex.com")
	require.NoError(t, err)
	assert.Equal(t, "public/robots.txt", path)
}

func TestMinify(t *testing.T) {
	doc := fixedGenerator().Generate(Config{
		SiteURL: "https://ex.com",
		Pages:   []Page{{Path: "/"}, {Path: "/about"}},
	})

	small, err := Minify(doc)
	require.NoError(t, err)

	assert.Less(t, len(small), len(doc))
	assert.NotContains(t, small, "\n  <url>")

	set, err := Parse([]byte(small))
	require.NoError(t, err)
	require.Len(t, set.URLs, 2)
	assert.Equal(t, "https://ex.com/about", set.URLs[1].Loc)
	assert.Equal(t, "0.8", set.URLs[1].Priority)
}
