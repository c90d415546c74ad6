package config

import (
	"fmt"
	"strings"

	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/sitemap"
	"github.com/hacktoolkit/nextjs-htk/internal/siteutil"
	"github.com/hacktoolkit/nextjs-htk/internal/validation"
)

const placeholderPrefix = "[PLACEHOLDER"

// ValidationError represents a configuration validation error with suggestions
type ValidationError struct {
	Field       string
	Value       interface{}
	Message     string
	Suggestions []string
}

func (ve *ValidationError) Error() string {
	return fmt.Sprintf("validation error in %s: %s", ve.Field, ve.Message)
}

// ValidationResult holds the result of configuration validation
type ValidationResult struct {
	Valid    bool
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors returns true if there are any validation errors
func (vr *ValidationResult) HasErrors() bool {
	return len(vr.Errors) > 0
}

// HasWarnings returns true if there are any validation warnings
func (vr *ValidationResult) HasWarnings() bool {
	return len(vr.Warnings) > 0
}

// ToError folds the errors into a single config error, or nil when valid.
func (vr *ValidationResult) ToError() error {
	if !vr.HasErrors() {
		return nil
	}
	var collection errors.ValidationErrorCollection
	for _, e := range vr.Errors {
		collection.AddField(e.Field, e.Value, e.Message, e.Suggestions...)
	}
	return collection.ToToolkitError()
}

// String returns a formatted string of all validation issues
func (vr *ValidationResult) String() string {
	var builder strings.Builder

	if len(vr.Errors) > 0 {
		builder.WriteString("❌ Validation Errors:\n")
		for _, err := range vr.Errors {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", err.Field, err.Message))
			for _, suggestion := range err.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
		builder.WriteString("\n")
	}

	if len(vr.Warnings) > 0 {
		builder.WriteString("⚠️  Validation Warnings:\n")
		for _, warning := range vr.Warnings {
			builder.WriteString(fmt.Sprintf("  • %s: %s\n", warning.Field, warning.Message))
			for _, suggestion := range warning.Suggestions {
				builder.WriteString(fmt.Sprintf("    💡 %s\n", suggestion))
			}
		}
	}

	return builder.String()
}

func (vr *ValidationResult) addError(field string, value interface{}, message string, suggestions ...string) {
	vr.Valid = false
	vr.Errors = append(vr.Errors, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

func (vr *ValidationResult) addWarning(field string, value interface{}, message string, suggestions ...string) {
	vr.Warnings = append(vr.Warnings, ValidationError{Field: field, Value: value, Message: message, Suggestions: suggestions})
}

// ValidateConfigWithDetails performs comprehensive validation with detailed feedback
func ValidateConfigWithDetails(config *Config) *ValidationResult {
	result := &ValidationResult{
		Valid:    true,
		Errors:   []ValidationError{},
		Warnings: []ValidationError{},
	}

	validateSite(&config.Site, result)
	validateNavigation(config.Navigation, result)
	validateSitemap(&config.Sitemap, result)
	validateAnalytics(&config.Analytics, result)
	validateBusiness(&config.Business, result)

	return result
}

func validateSite(site *SiteConfig, result *ValidationResult) {
	if site.URL == "" {
		result.addError("site.url", site.URL, "site URL is required",
			"Set site.url in .htk.yml or HTK_SITE_URL, e.g. https://example.com")
	} else if err := validation.ValidateSiteURL(site.URL); err != nil {
		result.addError("site.url", site.URL, err.Error(),
			"Use an absolute http(s) URL, e.g. https://example.com")
	} else if err := validation.LintSiteURL(site.URL); err != nil {
		result.addWarning("site.url", site.URL, err.Error(),
			"Page paths are appended verbatim; drop the trailing slash, query or fragment")
	}

	if site.Name == "" {
		result.addWarning("site.name", site.Name, "site name is empty")
	}
}

func validateNavigation(pages []Page, result *ValidationResult) {
	if len(pages) == 0 {
		result.addWarning("navigation", nil, "no navigation pages; the sitemap will only list additional pages")
	}

	seen := make(map[string]bool, len(pages))
	for i, p := range pages {
		field := fmt.Sprintf("navigation[%d].path", i)
		if err := validation.ValidatePagePath(p.Path); err != nil {
			result.addError(field, p.Path, err.Error())
			continue
		}
		if err := validation.LintPagePath(p.Path); err != nil {
			result.addWarning(field, p.Path, err.Error())
		}
		if seen[p.Path] {
			result.addWarning(field, p.Path, "duplicate page path")
		}
		seen[p.Path] = true
	}
}

func validateSitemap(sm *SitemapConfig, result *ValidationResult) {
	if err := validation.ValidatePath(sm.OutputDir); err != nil {
		result.addError("sitemap.output_dir", sm.OutputDir, err.Error())
	}

	for i, p := range sm.AdditionalPages {
		prefix := fmt.Sprintf("sitemap.additional_pages[%d]", i)

		if err := validation.ValidatePagePath(p.Path); err != nil {
			result.addError(prefix+".path", p.Path, err.Error())
		} else if err := validation.LintPagePath(p.Path); err != nil {
			result.addWarning(prefix+".path", p.Path, err.Error())
		}

		if p.Priority != nil {
			if err := validation.ValidatePriority(*p.Priority); err != nil {
				result.addError(prefix+".priority", *p.Priority, err.Error())
			}
		}

		if p.ChangeFreq != "" {
			if _, err := sitemap.ParseChangeFreq(p.ChangeFreq); err != nil {
				allowed := make([]string, 0, len(sitemap.ChangeFreqs))
				for _, c := range sitemap.ChangeFreqs {
					allowed = append(allowed, string(c))
				}
				result.addError(prefix+".changefreq", p.ChangeFreq, err.Error(),
					"Use one of: "+strings.Join(allowed, ", "))
			}
		}
	}
}

func validateAnalytics(a *AnalyticsConfig, result *ValidationResult) {
	if strings.HasPrefix(a.Google, placeholderPrefix) {
		result.addWarning("analytics.google", a.Google, "placeholder measurement id; Google Analytics will not render")
	}

	if a.MetaPixel != "" {
		if err := validation.ValidatePixelID(a.MetaPixel); err != nil {
			result.addWarning("analytics.meta_pixel", a.MetaPixel, err.Error()+"; Meta Pixel will not render")
		}
	}
}

func validateBusiness(b *BusinessConfig, result *ValidationResult) {
	if email := b.Location.Email; email != "" && !siteutil.IsValidEmail(email) {
		result.addWarning("business.location.email", email, "email address does not look valid")
	}
}
