package validation

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateSiteURL checks the canonical site URL that sitemap locations are
// built from.
func ValidateSiteURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("site URL cannot be empty")
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	// Only http/https make sense for a public sitemap.
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %q (only http/https allowed)", parsed.Scheme)
	}

	if parsed.Host == "" {
		return fmt.Errorf("URL must have a valid hostname")
	}

	return nil
}

// LintSiteURL reports site URL shapes that still generate a sitemap but
// probably not the intended one. Paths are appended verbatim, so a trailing
// slash doubles up.
func LintSiteURL(rawURL string) error {
	if strings.ContainsAny(rawURL, " \t\r\n") {
		return fmt.Errorf("site URL contains whitespace")
	}

	if strings.ContainsAny(rawURL, "?#") {
		return fmt.Errorf("site URL has a query or fragment")
	}

	if strings.HasSuffix(rawURL, "/") {
		return fmt.Errorf("site URL ends with a slash; page paths will produce //")
	}

	return nil
}
