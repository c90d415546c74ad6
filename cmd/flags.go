package cmd

import (
	"strings"

	"github.com/spf13/pflag"
)

// flagAliases maps alternative spellings onto the canonical flag names.
var flagAliases = map[string]string{
	"overwrite": "force",
	"loglevel":  "log-level",
	"logformat": "log-format",
	"out-dir":   "out",
	"output":    "out",
}

// normalizeFlagName accepts underscores for dashes and the aliases above, so
// --log_level and --overwrite work like --log-level and --force.
func normalizeFlagName(f *pflag.FlagSet, name string) pflag.NormalizedName {
	name = strings.ReplaceAll(name, "_", "-")
	if canonical, ok := flagAliases[name]; ok {
		name = canonical
	}
	return pflag.NormalizedName(name)
}
