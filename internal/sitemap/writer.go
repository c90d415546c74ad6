package sitemap

import (
	"fmt"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/tdewolff/minify/v2"
	mxml "github.com/tdewolff/minify/v2/xml"

	"github.com/hacktoolkit/nextjs-htk/internal/errors"
)

const (
	// FileName is the name of the written sitemap.
	FileName = "sitemap.xml"
	// RobotsFileName is the name of the written robots file.
	RobotsFileName = "robots.txt"
	// DefaultOutputDir is where the sitemap lands relative to the project.
	DefaultOutputDir = "docs"
)

// WriteFile creates dir if needed and writes content to dir/sitemap.xml,
// returning the written path.
func WriteFile(fsys billy.Filesystem, dir, content string) (string, error) {
	return writeInto(fsys, dir, FileName, content)
}

// RobotsTxt renders a robots.txt that allows everything and points crawlers
// at the sitemap.
func RobotsTxt(siteURL string) string {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	b.WriteString("Allow: /\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "Sitemap: %s/%s\n", strings.TrimSuffix(siteURL, "/"), FileName)
	return b.String()
}

// WriteRobots writes RobotsTxt(siteURL) to dir/robots.txt.
func WriteRobots(fsys billy.Filesystem, dir, siteURL string) (string, error) {
	return writeInto(fsys, dir, RobotsFileName, RobotsTxt(siteURL))
}

// Minify strips insignificant whitespace from a sitemap document.
func Minify(content string) (string, error) {
	m := minify.New()
	m.AddFunc("text/xml", mxml.Minify)

	out, err := m.String("text/xml", content)
	if err != nil {
		return "", fmt.Errorf("minify sitemap: %w", err)
	}
	return out, nil
}

func writeInto(fsys billy.Filesystem, dir, name, content string) (string, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return "", errors.FileOperationError("MKDIR", dir, "cannot create output directory", err)
	}

	target := fsys.Join(dir, name)
	if err := util.WriteFile(fsys, target, []byte(content), 0o644); err != nil {
		return "", errors.FileOperationError("WRITE", target, "cannot write "+name, err)
	}

	return target, nil
}
