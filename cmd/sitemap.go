package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hacktoolkit/nextjs-htk/internal/config"
	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/logging"
	"github.com/hacktoolkit/nextjs-htk/internal/sitemap"
	"github.com/hacktoolkit/nextjs-htk/internal/validation"
	"github.com/hacktoolkit/nextjs-htk/internal/watcher"
)

var (
	sitemapOut    string
	sitemapMinify bool
	sitemapRobots bool
	sitemapWatch  bool
	sitemapCheck  bool
	sitemapPrint  bool
)

// sitemapClock is replaced in tests.
var sitemapClock = time.Now

var sitemapCmd = &cobra.Command{
	Use:   "sitemap",
	Short: "Generate docs/sitemap.xml from the site configuration",
	Long: `Generate a sitemaps.org sitemap from the navigation pages and
sitemap.additional_pages in .htk.yml. The page at "/" gets priority 1, every
other page 0.8 unless overridden, and all pages change daily by default.

Examples:
  htk sitemap                   # Write docs/sitemap.xml
  htk sitemap --robots          # Also write docs/robots.txt
  htk sitemap --check           # Fail if docs/sitemap.xml is stale
  htk sitemap --watch           # Regenerate whenever .htk.yml changes`,
	Args: cobra.NoArgs,
	RunE: runSitemap,
}

func init() {
	rootCmd.AddCommand(sitemapCmd)

	sitemapCmd.Flags().StringVarP(&sitemapOut, "out", "o", "", "output directory (default sitemap.output_dir or docs)")
	sitemapCmd.Flags().BoolVar(&sitemapMinify, "minify", false, "strip whitespace from the sitemap")
	sitemapCmd.Flags().BoolVar(&sitemapRobots, "robots", false, "also write robots.txt pointing at the sitemap")
	sitemapCmd.Flags().BoolVarP(&sitemapWatch, "watch", "w", false, "regenerate when the config file changes")
	sitemapCmd.Flags().BoolVar(&sitemapCheck, "check", false, "verify the existing sitemap instead of writing it")
	sitemapCmd.Flags().BoolVar(&sitemapPrint, "print", false, "print the sitemap to stdout instead of writing it")

	sitemapCmd.MarkFlagsMutuallyExclusive("check", "watch", "print")
}

func runSitemap(cmd *cobra.Command, args []string) error {
	if !sitemapWatch {
		return generateSitemap(cmd)
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return watchSitemap(ctx, cmd)
}

type sitemapOptions struct {
	outDir string
	minify bool
	robots bool
}

// resolveSitemapOptions lets explicit flags win over the config file.
func resolveSitemapOptions(cmd *cobra.Command, cfg *config.Config) (sitemapOptions, error) {
	opts := sitemapOptions{
		outDir: cfg.Sitemap.OutputDir,
		minify: cfg.Sitemap.Minify,
		robots: cfg.Sitemap.Robots,
	}

	flags := cmd.Flags()
	if flags.Changed("out") {
		if err := validation.ValidatePath(sitemapOut); err != nil {
			return opts, errors.InvalidPathError("out", sitemapOut, err)
		}
		opts.outDir = sitemapOut
	}
	if flags.Changed("minify") {
		opts.minify = sitemapMinify
	}
	if flags.Changed("robots") {
		opts.robots = sitemapRobots
	}

	return opts, nil
}

func generateSitemap(cmd *cobra.Command) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	perf := logging.StartOperation(logger, "sitemap")

	cfg, err := loadSiteConfig()
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	opts, err := resolveSitemapOptions(cmd, cfg)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}

	input := cfg.SitemapInput()
	content := sitemap.NewGenerator(sitemap.WithClock(sitemapClock)).Generate(input)
	if opts.minify {
		if content, err = sitemap.Minify(content); err != nil {
			perf.EndWithError(ctx, err)
			return errors.NewInternalError(errors.ErrCodeInternalError, "cannot minify sitemap", err)
		}
	}

	if sitemapPrint {
		perf.End(ctx)
		_, err := fmt.Fprint(out, content)
		return err
	}

	fsys, err := projectFS()
	if err != nil {
		return err
	}

	if sitemapCheck {
		err := checkSitemap(cmd, fsys, opts.outDir, input)
		if err != nil {
			perf.EndWithError(ctx, err)
		} else {
			perf.End(ctx)
		}
		return err
	}

	path, err := sitemap.WriteFile(fsys, opts.outDir, content)
	if err != nil {
		perf.EndWithError(ctx, err)
		return err
	}
	fmt.Fprintf(out, "✓ Sitemap generated at %s\n", displayPath(fsys, path))

	if opts.robots {
		robotsPath, err := sitemap.WriteRobots(fsys, opts.outDir, cfg.Site.URL)
		if err != nil {
			perf.EndWithError(ctx, err)
			return err
		}
		fmt.Fprintf(out, "✓ robots.txt generated at %s\n", displayPath(fsys, robotsPath))
	}

	perf.End(ctx)
	logger.Info(ctx, "Sitemap written", "urls", len(sitemap.Entries(input)), "dir", opts.outDir)
	return nil
}

func checkSitemap(cmd *cobra.Command, fsys billy.Filesystem, dir string, input sitemap.Config) error {
	path := fsys.Join(dir, sitemap.FileName)

	data, err := util.ReadFile(fsys, path)
	if err != nil {
		return errors.FileOperationError("READ", path, "cannot read sitemap", err)
	}

	set, err := sitemap.Parse(data)
	if err != nil {
		return errors.CLIError("SITEMAP", "existing sitemap is not valid", err).WithFile(path)
	}

	if err := sitemap.Verify(set, input); err != nil {
		return errors.CLIError("SITEMAP", "sitemap is out of date, run htk sitemap", err).WithFile(path)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Sitemap is up to date (%d urls)\n", len(set.URLs))
	return nil
}

func watchSitemap(ctx context.Context, cmd *cobra.Command) error {
	if err := generateSitemap(cmd); err != nil {
		return err
	}

	configPath := viper.ConfigFileUsed()
	if configPath == "" {
		return errors.ConfigurationError("config", "no config file to watch", nil)
	}

	fw, err := watcher.NewFileWatcher(200*time.Millisecond, logger)
	if err != nil {
		return errors.NewInternalError(errors.ErrCodeInternalError, "cannot start file watcher", err)
	}
	defer fw.Stop()

	fw.AddFilter(watcher.NameFilter(configPath))
	fw.AddFilter(watcher.NoTempFilter)
	fw.AddHandler(func(ctx context.Context, events []watcher.ChangeEvent) error {
		if err := viper.ReadInConfig(); err != nil {
			configErr = errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "cannot read config file")
		} else {
			configErr = nil
		}
		if err := generateSitemap(cmd); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "❌ %s\n", errors.FormatError(err))
			return err
		}
		return nil
	})

	if err := fw.AddPath(filepath.Dir(configPath)); err != nil {
		return errors.FileOperationError("WATCH", configPath, "cannot watch config file", err)
	}
	logger.Debug(ctx, "Watching directories", "paths", fw.WatchList())
	if err := fw.Start(ctx); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "👀 Watching %s for changes (Ctrl+C to stop)\n", configPath)
	<-ctx.Done()
	return nil
}

func displayPath(fsys billy.Filesystem, path string) string {
	full := filepath.Join(fsys.Root(), path)
	if abs, err := filepath.Abs(full); err == nil {
		return abs
	}
	return full
}
