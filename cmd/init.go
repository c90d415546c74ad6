package cmd

import (
	"github.com/spf13/cobra"

	"github.com/hacktoolkit/nextjs-htk/internal/scaffolding"
)

var initCmd = &cobra.Command{
	Use:     "init",
	Aliases: []string{"i"},
	Short:   "Initialize project with Makefile and scripts",
	Long: `Copy the toolkit's Makefile to ./Makefile and its helper scripts to
./src/scripts. Files that already exist are left alone unless --force is
given.

Examples:
  htk init                      # Install missing files only
  htk init --force              # Replace local copies with the templates
  htk init --templates ./tpl    # Use a local template directory`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	syncer, err := newSyncer(cmd)
	if err != nil {
		return err
	}

	report, err := syncer.Init(scaffolding.Options{Force: forceFlag})
	logReport(cmd, "init", report)
	return err
}
