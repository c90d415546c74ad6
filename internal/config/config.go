// Package config loads the site configuration (.htk.yml) through Viper.
//
// The file describes the site, its navigation pages, sitemap extras, analytics
// ids and business contact details. Every key can be overridden from the
// environment with the HTK_ prefix, e.g. HTK_SITE_URL for site.url.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/sitemap"
	"github.com/hacktoolkit/nextjs-htk/internal/siteutil"
)

// EnvPrefix prefixes environment overrides.
const EnvPrefix = "HTK"

// DefaultFileName is looked up in the working directory when no config file
// is given.
const DefaultFileName = ".htk"

type Config struct {
	Site       SiteConfig      `mapstructure:"site" yaml:"site"`
	Branding   BrandingConfig  `mapstructure:"branding" yaml:"branding,omitempty"`
	Business   BusinessConfig  `mapstructure:"business" yaml:"business,omitempty"`
	Navigation []Page          `mapstructure:"navigation" yaml:"navigation"`
	Sitemap    SitemapConfig   `mapstructure:"sitemap" yaml:"sitemap"`
	Analytics  AnalyticsConfig `mapstructure:"analytics" yaml:"analytics,omitempty"`
}

type SiteConfig struct {
	Name        string `mapstructure:"name" yaml:"name"`
	Title       string `mapstructure:"title" yaml:"title"`
	Description string `mapstructure:"description" yaml:"description,omitempty"`
	URL         string `mapstructure:"url" yaml:"url"`
	Author      string `mapstructure:"author" yaml:"author,omitempty"`
}

type BrandingConfig struct {
	Logo    string `mapstructure:"logo" yaml:"logo,omitempty"`
	Slogan  string `mapstructure:"slogan" yaml:"slogan,omitempty"`
	Tagline string `mapstructure:"tagline" yaml:"tagline,omitempty"`
}

type BusinessConfig struct {
	Location     LocationConfig `mapstructure:"location" yaml:"location,omitempty"`
	FoundingYear int            `mapstructure:"founding_year" yaml:"founding_year,omitempty"`
}

type LocationConfig struct {
	Address string `mapstructure:"address" yaml:"address,omitempty"`
	City    string `mapstructure:"city" yaml:"city,omitempty"`
	State   string `mapstructure:"state" yaml:"state,omitempty"`
	Zip     string `mapstructure:"zip" yaml:"zip,omitempty"`
	Country string `mapstructure:"country" yaml:"country,omitempty"`
	Phone   string `mapstructure:"phone" yaml:"phone,omitempty"`
	Email   string `mapstructure:"email" yaml:"email,omitempty"`
}

// Page is a navigation entry. Every page is listed in the sitemap whether or
// not it shows in the navigation bar.
type Page struct {
	Name         string `mapstructure:"name" yaml:"name"`
	Path         string `mapstructure:"path" yaml:"path"`
	ShowInNav    bool   `mapstructure:"show_in_nav" yaml:"show_in_nav,omitempty"`
	OpenInNewTab bool   `mapstructure:"open_in_new_tab" yaml:"open_in_new_tab,omitempty"`
}

type SitemapConfig struct {
	AdditionalPages []AdditionalPage `mapstructure:"additional_pages" yaml:"additional_pages,omitempty"`
	OutputDir       string           `mapstructure:"output_dir" yaml:"output_dir"`
	Minify          bool             `mapstructure:"minify" yaml:"minify,omitempty"`
	Robots          bool             `mapstructure:"robots" yaml:"robots,omitempty"`
}

// AdditionalPage is a sitemap-only page. Unset priority and changefreq take
// the sitemap defaults.
type AdditionalPage struct {
	Path       string   `mapstructure:"path" yaml:"path"`
	Priority   *float64 `mapstructure:"priority" yaml:"priority,omitempty"`
	ChangeFreq string   `mapstructure:"changefreq" yaml:"changefreq,omitempty"`
}

type AnalyticsConfig struct {
	Google    string `mapstructure:"google" yaml:"google,omitempty"`
	MetaPixel string `mapstructure:"meta_pixel" yaml:"meta_pixel,omitempty"`
}

// Load unmarshals the global Viper state, applies defaults and validates the
// result.
func Load() (*Config, error) {
	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "cannot decode configuration")
	}

	applyDefaults(&config)

	result := ValidateConfigWithDetails(&config)
	if result.HasErrors() {
		return nil, result.ToError()
	}

	return &config, nil
}

func applyDefaults(config *Config) {
	config.Site.URL = strings.TrimSpace(config.Site.URL)

	if config.Site.Title == "" && config.Site.Name != "" {
		config.Site.Title = cases.Title(language.English).String(config.Site.Name)
	}

	if config.Sitemap.OutputDir == "" {
		config.Sitemap.OutputDir = sitemap.DefaultOutputDir
	}

	for i, p := range config.Sitemap.AdditionalPages {
		if c, err := sitemap.ParseChangeFreq(p.ChangeFreq); err == nil {
			config.Sitemap.AdditionalPages[i].ChangeFreq = string(c)
		}
	}

	// Env overrides arrive as strings for keys the file does not set.
	if viper.IsSet("sitemap.minify") {
		config.Sitemap.Minify = viper.GetBool("sitemap.minify")
	}
	if viper.IsSet("sitemap.robots") {
		config.Sitemap.Robots = viper.GetBool("sitemap.robots")
	}
}

// SitemapInput converts the configuration into generator input. A changefreq
// outside the sitemaps.org set falls back to the default.
func (c *Config) SitemapInput() sitemap.Config {
	input := sitemap.Config{SiteURL: c.Site.URL}

	for _, p := range c.Navigation {
		input.Pages = append(input.Pages, sitemap.Page{Name: p.Name, Path: p.Path})
	}

	for _, p := range c.Sitemap.AdditionalPages {
		page := sitemap.AdditionalPage{Path: p.Path, Priority: p.Priority}
		if c, err := sitemap.ParseChangeFreq(p.ChangeFreq); err == nil {
			page.ChangeFreq = c
		}
		input.AdditionalPages = append(input.AdditionalPages, page)
	}

	return input
}

// Location returns the business address for the site utilities.
func (l LocationConfig) Location() siteutil.Location {
	return siteutil.Location{
		Address: l.Address,
		City:    l.City,
		State:   l.State,
		Zip:     l.Zip,
	}
}

// NavPages returns the pages shown in the navigation bar.
func (c *Config) NavPages() []Page {
	var pages []Page
	for _, p := range c.Navigation {
		if p.ShowInNav {
			pages = append(pages, p)
		}
	}
	return pages
}

// String gives a one-line summary for logs.
func (c *Config) String() string {
	return fmt.Sprintf("%s (%s): %d pages, %d additional", c.Site.Name, c.Site.URL,
		len(c.Navigation), len(c.Sitemap.AdditionalPages))
}
