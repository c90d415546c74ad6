// Package scaffolding copies the htk templates into a consuming project.
//
// Templates are read from an fs.FS (normally the embedded templates package)
// and written to a go-billy filesystem rooted at the project directory. A
// destination that already exists is left alone unless the caller forces an
// overwrite, so running a sync twice is a no-op the second time.
package scaffolding

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sync/atomic"
	"time"

	"github.com/go-git/go-billy/v5"

	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/internal/logging"
)

// CopyResult reports what CopyFile did with a destination.
type CopyResult int

const (
	ResultCopied CopyResult = iota
	ResultSkipped
)

// String returns the string representation of the result
func (r CopyResult) String() string {
	switch r {
	case ResultCopied:
		return "copied"
	case ResultSkipped:
		return "skipped"
	default:
		return "unknown"
	}
}

// CopyOperation is a single file copy, built while walking a template tree
// and executed immediately.
type CopyOperation struct {
	SourcePath string
	DestPath   string
	Overwrite  bool
}

// Options controls a sync run.
type Options struct {
	// Force overwrites destination files that already exist.
	Force bool
}

// Report collects the outcome of a sync run. Paths are destination paths.
type Report struct {
	Copied   []string
	Skipped  []string
	Warnings []string
}

func (r *Report) record(dest string, result CopyResult) {
	switch result {
	case ResultCopied:
		r.Copied = append(r.Copied, dest)
	case ResultSkipped:
		r.Skipped = append(r.Skipped, dest)
	}
}

func (r *Report) merge(other *Report) {
	if other == nil {
		return
	}
	r.Copied = append(r.Copied, other.Copied...)
	r.Skipped = append(r.Skipped, other.Skipped...)
	r.Warnings = append(r.Warnings, other.Warnings...)
}

// Syncer copies templates from src into dst.
type Syncer struct {
	src    fs.FS
	dst    billy.Filesystem
	out    io.Writer
	logger logging.Logger
}

// Option configures a Syncer.
type Option func(*Syncer)

// WithOutput sets where progress lines are printed. Defaults to io.Discard.
func WithOutput(w io.Writer) Option {
	return func(s *Syncer) {
		s.out = w
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Syncer) {
		s.logger = logger.WithComponent("sync")
	}
}

// NewSyncer creates a Syncer reading templates from src and writing to dst.
func NewSyncer(src fs.FS, dst billy.Filesystem, opts ...Option) *Syncer {
	s := &Syncer{
		src:    src,
		dst:    dst,
		out:    io.Discard,
		logger: logging.NewNopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CopyFile copies source to dest. An existing dest is skipped unless
// opts.Force is set. The destination is either fully written or untouched.
func (s *Syncer) CopyFile(source, dest string, opts Options) (CopyResult, error) {
	return s.execute(CopyOperation{
		SourcePath: source,
		DestPath:   dest,
		Overwrite:  opts.Force,
	})
}

// CopyDirectory creates dest and copies every entry of source into it,
// recursing into subdirectories.
func (s *Syncer) CopyDirectory(source, dest string, opts Options) (*Report, error) {
	report := &Report{}
	if err := s.copyDirectory(source, dest, opts, report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *Syncer) copyDirectory(source, dest string, opts Options, report *Report) error {
	if err := s.dst.MkdirAll(dest, 0o755); err != nil {
		return errors.FileOperationError("MKDIR", dest, "cannot create directory", err)
	}

	entries, err := fs.ReadDir(s.src, source)
	if err != nil {
		return errors.FileOperationError("READDIR", source, "cannot read template directory", err)
	}

	for _, entry := range entries {
		srcPath := path.Join(source, entry.Name())
		destPath := s.dst.Join(dest, entry.Name())

		if entry.IsDir() {
			if err := s.copyDirectory(srcPath, destPath, opts, report); err != nil {
				return err
			}
			continue
		}

		result, err := s.CopyFile(srcPath, destPath, opts)
		if err != nil {
			return err
		}
		report.record(destPath, result)
	}

	return nil
}

func (s *Syncer) execute(op CopyOperation) (CopyResult, error) {
	ctx := context.Background()
	name := path.Base(op.DestPath)

	exists, err := s.exists(op.DestPath)
	if err != nil {
		return ResultSkipped, err
	}

	if exists && !op.Overwrite {
		fmt.Fprintf(s.out, "  ⚠️  %s already exists, skipping (use --force to overwrite)\n", name)
		s.logger.Debug(ctx, "destination exists, skipping", "dest", op.DestPath)
		return ResultSkipped, nil
	}

	if err := s.writeAtomic(op.SourcePath, op.DestPath); err != nil {
		return ResultSkipped, err
	}

	fmt.Fprintf(s.out, "  ✓ %s\n", name)
	s.logger.Debug(ctx, "copied template", "source", op.SourcePath, "dest", op.DestPath, "overwrite", exists)
	return ResultCopied, nil
}

func (s *Syncer) exists(name string) (bool, error) {
	_, err := s.dst.Stat(name)
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, errors.FileOperationError("STAT", name, "cannot inspect destination", err)
	}
}

var tmpCounter atomic.Uint64

// fileMode is 0644 plus whatever execute bits the template carries. Embedded
// templates never carry any.
func fileMode(src fs.FileMode) os.FileMode {
	return 0o644 | src.Perm()&0o111
}

// writeAtomic streams source into a temporary sibling of dest and renames it
// into place, so an interrupted copy never leaves a truncated dest behind.
func (s *Syncer) writeAtomic(source, dest string) error {
	in, err := s.src.Open(source)
	if err != nil {
		return errors.FileOperationError("OPEN", source, "cannot open template", err)
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return errors.FileOperationError("STAT", source, "cannot inspect template", err)
	}

	dir, base := path.Split(dest)
	tmpName := s.dst.Join(dir, fmt.Sprintf(".%s.htk-%d-%d.tmp", base, time.Now().UnixNano(), tmpCounter.Add(1)))

	tmp, err := s.dst.OpenFile(tmpName, os.O_WRONLY|os.O_CREATE|os.O_EXCL, fileMode(info.Mode()))
	if err != nil {
		return errors.FileOperationError("CREATE", dest, "cannot create temporary file", err)
	}

	if _, err := io.Copy(tmp, in); err != nil {
		_ = tmp.Close()
		_ = s.dst.Remove(tmpName)
		return errors.FileOperationError("WRITE", dest, "cannot write file", err)
	}

	if err := tmp.Close(); err != nil {
		_ = s.dst.Remove(tmpName)
		return errors.FileOperationError("WRITE", dest, "cannot flush file", err)
	}

	if err := s.dst.Rename(tmpName, dest); err != nil {
		_ = s.dst.Remove(tmpName)
		return errors.FileOperationError("RENAME", dest, "cannot move file into place", err)
	}

	return nil
}
