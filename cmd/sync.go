package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hacktoolkit/nextjs-htk/internal/scaffolding"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync all templates (Makefile and scripts)",
	Long: `Re-copy the Makefile and helper scripts from the templates. Existing
files are skipped unless --force is given, so run "htk sync --force" after
upgrading htk to pick up template changes.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, (*scaffolding.Syncer).Sync, "sync")
	},
}

var syncMakefileCmd = &cobra.Command{
	Use:   "sync:makefile",
	Short: "Sync only the Makefile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, (*scaffolding.Syncer).SyncMakefile, "sync:makefile")
	},
}

var syncScriptsCmd = &cobra.Command{
	Use:   "sync:scripts",
	Short: "Sync only the scripts directory",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSync(cmd, (*scaffolding.Syncer).SyncScripts, "sync:scripts")
	},
}

func init() {
	rootCmd.AddCommand(syncCmd, syncMakefileCmd, syncScriptsCmd)
}

type syncFunc func(*scaffolding.Syncer, scaffolding.Options) (*scaffolding.Report, error)

func runSync(cmd *cobra.Command, run syncFunc, name string) error {
	syncer, err := newSyncer(cmd)
	if err != nil {
		return err
	}

	report, err := run(syncer, scaffolding.Options{Force: forceFlag})
	logReport(cmd, name, report)
	return err
}

func newSyncer(cmd *cobra.Command) (*scaffolding.Syncer, error) {
	src, err := templateSource()
	if err != nil {
		return nil, err
	}

	dst, err := projectFS()
	if err != nil {
		return nil, err
	}

	return scaffolding.NewSyncer(src, dst,
		scaffolding.WithOutput(cmd.OutOrStdout()),
		scaffolding.WithLogger(logger),
	), nil
}

func logReport(cmd *cobra.Command, name string, report *scaffolding.Report) {
	if report == nil {
		return
	}
	logger.Info(cmd.Context(), "Template sync finished",
		"command", name,
		"copied", len(report.Copied),
		"skipped", len(report.Skipped),
		"warnings", len(report.Warnings),
	)
}
