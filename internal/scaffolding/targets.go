package scaffolding

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/logging"
)

// Target binds a template path to its place in the consuming project.
type Target struct {
	Name   string // used in error codes and logs
	Label  string // used in progress output
	Source string // path inside the template fs
	Dest   string // path relative to the project root
	Dir    bool
}

var (
	// MakefileTarget copies templates/Makefile to ./Makefile.
	MakefileTarget = Target{
		Name:   "makefile",
		Label:  "Makefile",
		Source: "Makefile",
		Dest:   "Makefile",
	}

	// ScriptsTarget copies templates/scripts to ./src/scripts.
	ScriptsTarget = Target{
		Name:   "scripts",
		Label:  "scripts",
		Source: "scripts",
		Dest:   "src/scripts",
		Dir:    true,
	}
)

// DefaultTargets returns the targets run by Init and Sync, in order.
func DefaultTargets() []Target {
	return []Target{MakefileTarget, ScriptsTarget}
}

// SyncTarget copies a single target. A template missing from the source fs
// is reported as a warning and the target is skipped.
func (s *Syncer) SyncTarget(t Target, opts Options) (*Report, error) {
	ctx := context.Background()
	report := &Report{}

	fmt.Fprintf(s.out, "\nSyncing %s...\n", t.Label)

	perf := logging.StartOperation(s.logger, "sync_"+t.Name)

	present, err := s.templateExists(t.Source)
	if err != nil {
		perf.EndWithError(ctx, err)
		return report, errors.SyncError(strings.ToUpper(t.Name), "cannot read template "+t.Source, err)
	}

	if !present {
		warning := fmt.Sprintf("No %s template found", t.Label)
		if t.Dir {
			warning = fmt.Sprintf("No %s template directory found", t.Label)
		}
		fmt.Fprintf(s.out, "  ⚠️  %s\n", warning)
		s.logger.Info(ctx, "template missing, skipping target", "target", t.Name, "source", t.Source)
		report.Warnings = append(report.Warnings, warning)
		perf.End(ctx)
		return report, nil
	}

	if t.Dir {
		err = s.copyDirectory(t.Source, t.Dest, opts, report)
	} else {
		var result CopyResult
		result, err = s.CopyFile(t.Source, t.Dest, opts)
		if err == nil {
			report.record(t.Dest, result)
		}
	}

	if err != nil {
		perf.EndWithError(ctx, err)
		return report, errors.SyncError(strings.ToUpper(t.Name), "could not sync "+t.Label, err)
	}

	perf.End(ctx)
	return report, nil
}

// SyncMakefile copies only the Makefile.
func (s *Syncer) SyncMakefile(opts Options) (*Report, error) {
	return s.SyncTarget(MakefileTarget, opts)
}

// SyncScripts copies only the scripts directory.
func (s *Syncer) SyncScripts(opts Options) (*Report, error) {
	return s.SyncTarget(ScriptsTarget, opts)
}

// Init runs every default target for a project being set up.
func (s *Syncer) Init(opts Options) (*Report, error) {
	fmt.Fprint(s.out, "\nInitializing nextjs-htk project...\n\n")
	report, err := s.runAll(opts)
	if err != nil {
		return report, err
	}
	fmt.Fprint(s.out, "\n✓ Project initialized successfully!\n\n")
	return report, nil
}

// Sync runs every default target again after the initial setup.
func (s *Syncer) Sync(opts Options) (*Report, error) {
	fmt.Fprint(s.out, "\nSyncing all templates...\n\n")
	report, err := s.runAll(opts)
	if err != nil {
		return report, err
	}
	fmt.Fprint(s.out, "\n✓ Sync complete!\n\n")
	return report, nil
}

func (s *Syncer) runAll(opts Options) (*Report, error) {
	report := &Report{}
	for _, t := range DefaultTargets() {
		r, err := s.SyncTarget(t, opts)
		report.merge(r)
		if err != nil {
			return report, err
		}
	}
	return report, nil
}

func (s *Syncer) templateExists(name string) (bool, error) {
	if s.src == nil {
		return false, nil
	}
	_, err := fs.Stat(s.src, name)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
