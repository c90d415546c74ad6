package scaffolding

import (
	"bytes"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hacktoolkit/nextjs-htk/internal/errors"
	"github.com/hacktoolkit/nextjs-htk/templates"
)

func testTemplates() fstest.MapFS {
	return fstest.MapFS{
		"Makefile":                   {Data: []byte("build:\n\tnpm run build\n")},
		"scripts/generate_sitemap.sh": {Data: []byte("#!/bin/sh\nhtk sitemap\n")},
		"scripts/lib/common.sh":       {Data: []byte("set -eu\n")},
	}
}

func readFile(t *testing.T, fsys billy.Filesystem, name string) string {
	t.Helper()
	data, err := util.ReadFile(fsys, name)
	require.NoError(t, err)
	return string(data)
}

func TestCopyResultString(t *testing.T) {
	assert.Equal(t, "copied", ResultCopied.String())
	assert.Equal(t, "skipped", ResultSkipped.String())
	assert.Equal(t, "unknown", CopyResult(9).String())
}

func TestCopyFile(t *testing.T) {
	t.Run("copies new file", func(t *testing.T) {
		dst := memfs.New()
		var out bytes.Buffer
		s := NewSyncer(testTemplates(), dst, WithOutput(&out))

		result, err := s.CopyFile("Makefile", "Makefile", Options{})
		require.NoError(t, err)

		assert.Equal(t, ResultCopied, result)
		assert.Equal(t, "build:\n\tnpm run build\n", readFile(t, dst, "Makefile"))
		assert.Contains(t, out.String(), "✓ Makefile")
	})

	t.Run("skips existing file without force", func(t *testing.T) {
		dst := memfs.New()
		require.NoError(t, util.WriteFile(dst, "Makefile", []byte("custom\n"), 0o644))
		var out bytes.Buffer
		s := NewSyncer(testTemplates(), dst, WithOutput(&out))

		result, err := s.CopyFile("Makefile", "Makefile", Options{})
		require.NoError(t, err)

		assert.Equal(t, ResultSkipped, result)
		assert.Equal(t, "custom\n", readFile(t, dst, "Makefile"))
		assert.Contains(t, out.String(), "Makefile already exists, skipping (use --force to overwrite)")
	})

	t.Run("overwrites existing file with force", func(t *testing.T) {
		dst := memfs.New()
		require.NoError(t, util.WriteFile(dst, "Makefile", []byte("custom\n"), 0o644))
		s := NewSyncer(testTemplates(), dst)

		result, err := s.CopyFile("Makefile", "Makefile", Options{Force: true})
		require.NoError(t, err)

		assert.Equal(t, ResultCopied, result)
		assert.Equal(t, "build:\n\tnpm run build\n", readFile(t, dst, "Makefile"))
	})

	t.Run("missing source is an io error", func(t *testing.T) {
		dst := memfs.New()
		s := NewSyncer(fstest.MapFS{}, dst)

		_, err := s.CopyFile("Makefile", "Makefile", Options{})
		require.Error(t, err)

		assert.True(t, errors.IsIOError(err))
		assert.ErrorIs(t, err, fs.ErrNotExist)
		_, statErr := dst.Stat("Makefile")
		assert.ErrorIs(t, statErr, os.ErrNotExist)
	})

	t.Run("leaves no temporary files behind", func(t *testing.T) {
		dst := memfs.New()
		s := NewSyncer(testTemplates(), dst)

		_, err := s.CopyFile("Makefile", "Makefile", Options{})
		require.NoError(t, err)

		entries, err := dst.ReadDir("/")
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, "Makefile", entries[0].Name())
	})
}

func TestCopyDirectory(t *testing.T) {
	dst := memfs.New()
	s := NewSyncer(testTemplates(), dst)

	report, err := s.CopyDirectory("scripts", "src/scripts", Options{})
	require.NoError(t, err)

	assert.Len(t, report.Copied, 2)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, "#!/bin/sh\nhtk sitemap\n", readFile(t, dst, "src/scripts/generate_sitemap.sh"))
	assert.Equal(t, "set -eu\n", readFile(t, dst, "src/scripts/lib/common.sh"))

	info, err := dst.Stat("src/scripts/lib")
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestSyncScriptsWithoutTemplateDirectory(t *testing.T) {
	dst := memfs.New()
	var out bytes.Buffer
	src := fstest.MapFS{"Makefile": {Data: []byte("all:\n")}}
	s := NewSyncer(src, dst, WithOutput(&out))

	report, err := s.SyncScripts(Options{})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "⚠️  No scripts template directory found")
	assert.Equal(t, []string{"No scripts template directory found"}, report.Warnings)
	assert.Empty(t, report.Copied)
	_, statErr := dst.Stat("src/scripts")
	assert.ErrorIs(t, statErr, os.ErrNotExist)
}

func TestSyncContinuesPastMissingTemplate(t *testing.T) {
	dst := memfs.New()
	src := fstest.MapFS{"scripts/run.sh": {Data: []byte("echo hi\n")}}
	s := NewSyncer(src, dst)

	report, err := s.Sync(Options{})
	require.NoError(t, err)

	assert.Equal(t, []string{"No Makefile template found"}, report.Warnings)
	assert.Equal(t, "echo hi\n", readFile(t, dst, "src/scripts/run.sh"))
}

func TestInitWithEmbeddedTemplates(t *testing.T) {
	dst := memfs.New()
	var out bytes.Buffer
	s := NewSyncer(templates.FS, dst, WithOutput(&out))

	report, err := s.Init(Options{})
	require.NoError(t, err)

	assert.Empty(t, report.Warnings)
	assert.Contains(t, report.Copied, "Makefile")

	want, err := fs.ReadFile(templates.FS, "Makefile")
	require.NoError(t, err)
	assert.Equal(t, string(want), readFile(t, dst, "Makefile"))

	script, err := fs.ReadFile(templates.FS, "scripts/generate_sitemap.sh")
	require.NoError(t, err)
	assert.Equal(t, string(script), readFile(t, dst, "src/scripts/generate_sitemap.sh"))

	output := out.String()
	assert.True(t, strings.HasPrefix(output, "\nInitializing nextjs-htk project...\n"))
	assert.Contains(t, output, "Syncing Makefile...")
	assert.Contains(t, output, "Syncing scripts...")
	assert.True(t, strings.HasSuffix(output, "✓ Project initialized successfully!\n\n"))
}

func TestSyncIsIdempotent(t *testing.T) {
	dst := memfs.New()
	s := NewSyncer(testTemplates(), dst)

	first, err := s.Sync(Options{})
	require.NoError(t, err)
	require.Len(t, first.Copied, 3)

	second, err := s.Sync(Options{})
	require.NoError(t, err)

	assert.Empty(t, second.Copied)
	assert.ElementsMatch(t, first.Copied, second.Skipped)
}

func TestForceRestoresTemplateContent(t *testing.T) {
	dst := memfs.New()
	s := NewSyncer(testTemplates(), dst)

	_, err := s.Sync(Options{})
	require.NoError(t, err)

	require.NoError(t, util.WriteFile(dst, "src/scripts/generate_sitemap.sh", []byte("edited\n"), 0o644))
	require.NoError(t, util.WriteFile(dst, "Makefile", []byte("edited\n"), 0o644))

	report, err := s.Sync(Options{Force: true})
	require.NoError(t, err)

	assert.Len(t, report.Copied, 3)
	assert.Empty(t, report.Skipped)
	assert.Equal(t, "build:\n\tnpm run build\n", readFile(t, dst, "Makefile"))
	assert.Equal(t, "#!/bin/sh\nhtk sitemap\n", readFile(t, dst, "src/scripts/generate_sitemap.sh"))
}

// deniedFS refuses to create files, standing in for a read-only project.
type deniedFS struct {
	billy.Filesystem
}

func (d deniedFS) OpenFile(name string, flag int, perm os.FileMode) (billy.File, error) {
	if flag&os.O_CREATE != 0 {
		return nil, &os.PathError{Op: "open", Path: name, Err: fs.ErrPermission}
	}
	return d.Filesystem.OpenFile(name, flag, perm)
}

func TestSyncPropagatesFilesystemErrors(t *testing.T) {
	dst := deniedFS{memfs.New()}
	s := NewSyncer(testTemplates(), dst)

	_, err := s.Init(Options{})
	require.Error(t, err)

	assert.True(t, errors.IsIOError(err))
	assert.ErrorIs(t, err, fs.ErrPermission)
	assert.True(t, errors.HasErrorCode(err, "ERR_SYNC_MAKEFILE"))
	assert.True(t, errors.HasErrorCode(err, errors.ErrCodePermissionDenied))
}

var (
	errDiskOnFire  = stderrors.New("disk on fire")
	errCrossDevice = stderrors.New("cross-device link")
)

// shortReadFS serves name normally for the first n bytes and then fails.
type shortReadFS struct {
	fstest.MapFS
	name string
	n    int
}

func (f shortReadFS) Open(name string) (fs.File, error) {
	file, err := f.MapFS.Open(name)
	if err != nil || name != f.name {
		return file, err
	}
	return &shortReadFile{File: file, left: f.n}, nil
}

type shortReadFile struct {
	fs.File
	left int
}

func (f *shortReadFile) Read(p []byte) (int, error) {
	if f.left <= 0 {
		return 0, errDiskOnFire
	}
	if len(p) > f.left {
		p = p[:f.left]
	}
	n, err := f.File.Read(p)
	f.left -= n
	return n, err
}

// renameFailFS cannot move files into place.
type renameFailFS struct {
	billy.Filesystem
}

func (r renameFailFS) Rename(from, to string) error {
	return &os.LinkError{Op: "rename", Old: from, New: to, Err: errCrossDevice}
}

func TestCopyFileFailureKeepsDestination(t *testing.T) {
	tests := []struct {
		name string
		src  fs.FS
		wrap func(billy.Filesystem) billy.Filesystem
		code string
		want error
	}{
		{
			name: "source read fails part way",
			src:  shortReadFS{MapFS: testTemplates(), name: "Makefile", n: 7},
			wrap: func(fsys billy.Filesystem) billy.Filesystem { return fsys },
			code: "ERR_FILE_WRITE",
			want: errDiskOnFire,
		},
		{
			name: "rename fails",
			src:  testTemplates(),
			wrap: func(fsys billy.Filesystem) billy.Filesystem { return renameFailFS{fsys} },
			code: "ERR_FILE_RENAME",
			want: errCrossDevice,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mem := memfs.New()
			require.NoError(t, util.WriteFile(mem, "Makefile", []byte("original\n"), 0o644))
			s := NewSyncer(tt.src, tt.wrap(mem))

			_, err := s.CopyFile("Makefile", "Makefile", Options{Force: true})
			require.Error(t, err)

			assert.True(t, errors.IsIOError(err))
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, errors.HasErrorCode(err, tt.code))
			assert.Equal(t, "original\n", readFile(t, mem, "Makefile"))

			entries, err := mem.ReadDir("/")
			require.NoError(t, err)
			require.Len(t, entries, 1)
			assert.Equal(t, "Makefile", entries[0].Name())
		})
	}
}

func TestCopyFileKeepsExecuteBits(t *testing.T) {
	dst := memfs.New()
	src := fstest.MapFS{
		"Makefile":       {Data: []byte("all:\n"), Mode: 0o444},
		"scripts/run.sh": {Data: []byte("echo hi\n"), Mode: 0o755},
	}
	s := NewSyncer(src, dst)

	_, err := s.Sync(Options{})
	require.NoError(t, err)

	script, err := dst.Stat("src/scripts/run.sh")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), script.Mode().Perm())

	makefile, err := dst.Stat("Makefile")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o644), makefile.Mode().Perm())
}

func TestSyncOnDisk(t *testing.T) {
	root := t.TempDir()
	s := NewSyncer(testTemplates(), osfs.New(root))

	_, err := s.Init(Options{})
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(root, "src", "scripts", "lib", "common.sh"))
	require.NoError(t, err)
	assert.Equal(t, "set -eu\n", string(data))

	info, err := os.Stat(filepath.Join(root, "Makefile"))
	require.NoError(t, err)
	assert.False(t, info.IsDir())

	matches, err := filepath.Glob(filepath.Join(root, ".*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
