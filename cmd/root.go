// Package cmd implements the htk command line.
//
// Configuration is read with Viper, highest priority first:
//
//  1. --config flag
//  2. HTK_CONFIG_FILE environment variable
//  3. .htk.yml (or htk.yml) in the project directory
//
// Every config key can be overridden as HTK_<SECTION>_<KEY>, e.g.
// HTK_SITE_URL or HTK_SITEMAP_OUTPUT_DIR.
package cmd

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"slices"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/hacktoolkit/nextjs-htk/internal/config"
	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/logging"
	"github.com/hacktoolkit/nextjs-htk/internal/validation"
	"github.com/hacktoolkit/nextjs-htk/templates"
)

var (
	cfgFile      string
	projectDir   string
	templatesDir string
	forceFlag    bool

	// configErr holds a config file that exists but could not be read. It
	// only fails commands that need the site configuration.
	configErr error

	logger logging.Logger = logging.NewNopLogger()
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "htk",
	Short: "Companion CLI for nextjs-htk sites",
	Long: `htk keeps a Next.js site built on nextjs-htk in step with the toolkit:
it installs and re-syncs the shared Makefile and helper scripts, and generates
the sitemap from the site configuration.

Quick Start:
  htk init                  Copy the Makefile and scripts into this project
  htk sync --force          Overwrite local copies with the current templates
  htk sitemap               Write docs/sitemap.xml from .htk.yml`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	logger.Debug(rootCmd.Context(), "Command failed", errorFields(err)...)
	if !errors.HasErrorCode(err, errors.ErrCodeUnknownCommand) {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "❌ %s\n", errors.FormatError(err))
	}
	return err
}

// errorFields flattens an error's structured context into logger fields,
// sorted by key.
func errorFields(err error) []interface{} {
	context := errors.GetErrorContext(err)
	fields := make([]interface{}, 0, 2*len(context)+2)
	for _, key := range slices.Sorted(maps.Keys(context)) {
		fields = append(fields, key, context[key])
	}
	var te *errors.ToolkitError
	if stderrors.As(err, &te) {
		if cause := errors.ExtractCause(te); cause != nil && cause != error(te) {
			fields = append(fields, "cause", cause.Error())
		}
	}
	return fields
}

func init() {
	cobra.OnInitialize(initLogging, initConfig)

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is .htk.yml, can also use HTK_CONFIG_FILE env var)")
	flags.StringVarP(&projectDir, "dir", "C", ".", "project directory")
	flags.StringVar(&templatesDir, "templates", "", "read templates from this directory instead of the built-in set")
	flags.BoolVarP(&forceFlag, "force", "f", false, "overwrite existing files")
	flags.String("log-level", "warn", "log level (debug, info, warn, error)")
	flags.String("log-format", "text", "log format (text, json)")

	setupViper()
	rootCmd.SetGlobalNormalizationFunc(normalizeFlagName)
}

// setupViper enables HTK_ environment overrides and binds the logging flags,
// so HTK_LOG_LEVEL works like --log-level.
func setupViper() {
	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	flags := rootCmd.PersistentFlags()
	_ = viper.BindPFlag("log-level", flags.Lookup("log-level"))
	_ = viper.BindPFlag("log-format", flags.Lookup("log-format"))
}

// runRoot prints usage when called bare and rejects anything that did not
// match a sub-command.
func runRoot(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}

	name := validation.SanitizeInput(args[0])
	fmt.Fprintf(cmd.ErrOrStderr(), "❌ Unknown command: %s\n", name)
	if err := cmd.Help(); err != nil {
		return err
	}
	return errors.UnknownCommandError(name)
}

func initLogging() {
	level, err := logging.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		level = logging.LevelWarn
	}

	logger = logging.NewLogger(&logging.LoggerConfig{
		Level:     level,
		Format:    viper.GetString("log-format"),
		Output:    rootCmd.ErrOrStderr(),
		Component: "cli",
	})

	if err != nil {
		logger.Warn(rootCmd.Context(), err, "Falling back to warn level")
	}
}

// initConfig points Viper at the site configuration. A missing file is not
// an error here; commands that need it fail in config.Load.
func initConfig() {
	configErr = nil

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else if envConfigFile := os.Getenv("HTK_CONFIG_FILE"); envConfigFile != "" {
		viper.SetConfigFile(envConfigFile)
	} else {
		viper.AddConfigPath(projectDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName(config.DefaultFileName)
	}

	err := viper.ReadInConfig()
	var notFound viper.ConfigFileNotFoundError
	if stderrors.As(err, &notFound) {
		viper.SetConfigName(strings.TrimPrefix(config.DefaultFileName, "."))
		err = viper.ReadInConfig()
	}

	switch {
	case err == nil:
		logger.Debug(rootCmd.Context(), "Using config file", "path", viper.ConfigFileUsed())
	case stderrors.As(err, &notFound):
		logger.Debug(rootCmd.Context(), "No config file found", "dir", projectDir)
	default:
		configErr = errors.WrapConfig(err, errors.ErrCodeConfigInvalid, "cannot read config file")
	}
}

// loadSiteConfig returns the validated site configuration.
func loadSiteConfig() (*config.Config, error) {
	if configErr != nil {
		return nil, configErr
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger.Debug(rootCmd.Context(), "Loaded site config", "config", cfg.String())
	return cfg, nil
}

// templateSource returns the template tree to copy from.
func templateSource() (fs.FS, error) {
	if templatesDir == "" {
		return templates.FS, nil
	}
	if err := validation.ValidatePath(templatesDir); err != nil {
		return nil, errors.InvalidPathError("templates", templatesDir, err)
	}
	info, err := os.Stat(templatesDir)
	if err != nil {
		return nil, errors.FileOperationError("STAT", templatesDir, "cannot read templates directory", err)
	}
	if !info.IsDir() {
		return nil, errors.ConfigurationError("templates", "not a directory", templatesDir)
	}
	return os.DirFS(templatesDir), nil
}

// projectFS returns the project directory as a billy filesystem.
func projectFS() (billy.Filesystem, error) {
	if err := validation.ValidatePath(projectDir); err != nil {
		return nil, errors.InvalidPathError("dir", projectDir, err)
	}
	return osfs.New(projectDir), nil
}
