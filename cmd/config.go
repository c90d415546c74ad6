package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/hacktoolkit/nextjs-htk/internal/config"
	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/sitemap"
	"github.com/hacktoolkit/nextjs-htk/internal/siteutil"
)

var configSummary bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective site configuration",
	Long: `Load .htk.yml with environment overrides and defaults applied, validate it
and print the result as YAML. Validation warnings go to stderr.

Examples:
  htk config                # Full configuration as YAML
  htk config --summary      # Site, navigation, sitemap size and address`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	rootCmd.AddCommand(configCmd)

	configCmd.Flags().BoolVarP(&configSummary, "summary", "s", false, "print a short human-readable summary instead of YAML")
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadSiteConfig()
	if err != nil {
		return err
	}

	if configSummary {
		printSummary(cmd.OutOrStdout(), cfg)
	} else {
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return errors.NewInternalError(errors.ErrCodeInternalError, "cannot encode configuration", err)
		}
		if err := enc.Close(); err != nil {
			return err
		}
	}

	if result := config.ValidateConfigWithDetails(cfg); result.HasWarnings() {
		cmd.PrintErr(result.String())
	}
	return nil
}

func printSummary(w io.Writer, cfg *config.Config) {
	fmt.Fprintf(w, "Site:       %s\n", cfg)

	nav := cfg.NavPages()
	fmt.Fprintf(w, "Navigation: %d of %d pages shown\n", len(nav), len(cfg.Navigation))
	for _, p := range nav {
		fmt.Fprintf(w, "  • %s %s\n", p.Name, p.Path)
	}

	urls := len(sitemap.Entries(cfg.SitemapInput()))
	fmt.Fprintf(w, "Sitemap:    %d urls -> %s/%s\n", urls, cfg.Sitemap.OutputDir, sitemap.FileName)

	if loc := cfg.Business.Location; loc.Address != "" {
		fmt.Fprintf(w, "Address:    %s\n", siteutil.BuildFullAddress(loc.Location()))
	}
}
