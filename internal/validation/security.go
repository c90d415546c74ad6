// Package validation checks user-supplied values: the site URL, page paths
// and the directories the CLI reads templates from and writes output to.
package validation

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var pixelIDPattern = regexp.MustCompile(`^\d{15,16}$`)

// ValidatePath validates a file path given on the command line or in the
// config file.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path cannot be empty")
	}

	if strings.ContainsRune(path, 0) {
		return fmt.Errorf("path contains a null byte")
	}

	// Clean the path to resolve any . or .. components
	cleanPath := filepath.Clean(path)
	if !filepath.IsAbs(cleanPath) && (cleanPath == ".." || strings.HasPrefix(cleanPath, ".."+string(filepath.Separator))) {
		return fmt.Errorf("path traversal detected: %s", path)
	}

	dangerousChars := []string{";", "&", "|", "$", "`", "<", ">"}
	for _, char := range dangerousChars {
		if strings.Contains(path, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidatePagePath validates a site-relative page path such as "/about".
func ValidatePagePath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("page path %q must start with /", path)
	}

	return nil
}

// LintPagePath reports page paths that are kept verbatim in the sitemap but
// are unlikely to be intended.
func LintPagePath(path string) error {
	if strings.HasPrefix(path, "//") {
		return fmt.Errorf("page path %q starts with //", path)
	}

	for _, r := range path {
		if r <= ' ' || r == 0x7f {
			return fmt.Errorf("page path %q contains whitespace or control characters", path)
		}
	}

	return nil
}

// ValidatePriority checks a sitemap priority.
func ValidatePriority(p float64) error {
	if p < 0 || p > 1 {
		return fmt.Errorf("priority %v must be between 0 and 1", p)
	}
	return nil
}

// ValidatePixelID checks the shape of a Meta pixel id.
func ValidatePixelID(id string) error {
	if !pixelIDPattern.MatchString(id) {
		return fmt.Errorf("pixel id %q must be 15 or 16 digits", id)
	}
	return nil
}

// SanitizeInput removes control characters from user input before it is
// echoed back.
func SanitizeInput(input string) string {
	var sanitized strings.Builder
	for _, r := range input {
		if r >= 32 && r != 0x7f || r == '\t' {
			sanitized.WriteRune(r)
		}
	}

	return sanitized.String()
}
