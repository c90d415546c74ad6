// Package templates holds the files htk copies into a consuming project.
package templates

import "embed"

// FS contains the Makefile and the scripts directory, rooted so that paths
// are "Makefile" and "scripts/...".
//
//go:embed Makefile scripts
var FS embed.FS
