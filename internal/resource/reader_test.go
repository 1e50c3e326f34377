package resource

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenFS serves a single file whose reads fail after the first chunk.
type brokenFS struct {
	name    string
	prefix  []byte
	readErr error
}

func (b *brokenFS) Open(name string) (fs.File, error) {
	if name != b.name {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return &brokenFile{fs: b}, nil
}

type brokenFile struct {
	fs   *brokenFS
	done bool
}

func (f *brokenFile) Stat() (fs.FileInfo, error) { return brokenInfo{name: f.fs.name}, nil }
func (f *brokenFile) Close() error               { return nil }

func (f *brokenFile) Read(p []byte) (int, error) {
	if !f.done && len(f.fs.prefix) > 0 {
		f.done = true
		return copy(p, f.fs.prefix), nil
	}
	return 0, f.fs.readErr
}

type brokenInfo struct{ name string }

func (i brokenInfo) Name() string       { return i.name }
func (i brokenInfo) Size() int64        { return 0 }
func (i brokenInfo) Mode() fs.FileMode  { return 0o444 }
func (i brokenInfo) ModTime() time.Time { return time.Time{} }
func (i brokenInfo) IsDir() bool        { return false }
func (i brokenInfo) Sys() any           { return nil }

func testBundle() fstest.MapFS {
	return fstest.MapFS{
		"VERSION":        {Data: []byte("1.2.3\n")},
		"FORGE_VERSION":  {Data: []byte("  1.6.4-9.11.1.965  \r\nsecond line\n")},
		"NO_NEWLINE":     {Data: []byte("4.5.6")},
		"BLANK_FIRST":    {Data: []byte("\nnext\n")},
		"EMPTY":          {Data: []byte{}},
		"scripts/a.lua":  {Data: []byte("x = 1\n")},
		"assets/big.bin": {Data: bytes.Repeat([]byte{0xAB, 0x01, 0x7F}, 2000)},
	}
}

func TestReadLine(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())

	testCases := []struct {
		name     string
		resource string
		want     string
	}{
		{name: "trailing newline", resource: "VERSION", want: "1.2.3"},
		{name: "surrounding whitespace and CRLF", resource: "FORGE_VERSION", want: "1.6.4-9.11.1.965"},
		{name: "no trailing newline", resource: "NO_NEWLINE", want: "4.5.6"},
		{name: "blank first line", resource: "BLANK_FIRST", want: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := r.ReadLine(tc.resource)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestReadLine_IsIdempotent(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())

	first, err := r.ReadLine("VERSION")
	require.NoError(t, err)
	second, err := r.ReadLine("VERSION")
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestReadLine_Errors(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())

	t.Run("missing resource", func(t *testing.T) {
		_, err := r.ReadLine("MISSING")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.Equal(t, "MISSING", nf.Name)
		assert.ErrorIs(t, err, fs.ErrNotExist)
	})

	t.Run("directory is not a resource", func(t *testing.T) {
		_, err := r.ReadLine("scripts")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
	})

	t.Run("invalid name", func(t *testing.T) {
		_, err := r.ReadLine("../VERSION")
		var nf *NotFoundError
		require.ErrorAs(t, err, &nf)
		assert.ErrorIs(t, err, fs.ErrInvalid)
	})

	t.Run("empty resource", func(t *testing.T) {
		_, err := r.ReadLine("EMPTY")
		var empty *EmptyError
		require.ErrorAs(t, err, &empty)
		assert.Equal(t, "EMPTY", empty.Name)
	})

	t.Run("read failure", func(t *testing.T) {
		broken := NewReader(&brokenFS{name: "VERSION", readErr: errors.New("disk on fire")})
		_, err := broken.ReadLine("VERSION")
		var re *ReadError
		require.ErrorAs(t, err, &re)
		assert.Contains(t, err.Error(), "disk on fire")
	})
}

func TestReadAll(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())

	data, err := r.ReadAll("scripts/a.lua")
	require.NoError(t, err)
	assert.Equal(t, "x = 1\n", string(data))

	_, err = r.ReadAll("scripts/missing.lua")
	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
}

func TestExtract_CopiesBytesVerbatim(t *testing.T) {
	t.Parallel()
	bundle := testBundle()
	r := NewReader(bundle)
	dir := t.TempDir()

	for _, name := range []string{"VERSION", "assets/big.bin", "EMPTY"} {
		dest := filepath.Join(dir, filepath.Base(name))
		require.NoError(t, r.Extract(name, dest))

		got, err := os.ReadFile(dest)
		require.NoError(t, err)
		assert.Equal(t, bundle[name].Data, got, "extracted %s differs from the bundle", name)
	}
}

func TestExtract_OverwritesExistingFile(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())
	dest := filepath.Join(t.TempDir(), "VERSION")
	require.NoError(t, os.WriteFile(dest, []byte("a much longer previous content"), 0o644))

	require.NoError(t, r.Extract("VERSION", dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "1.2.3\n", string(got))
}

func TestExtract_MissingResourceWritesNothing(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())
	dest := filepath.Join(t.TempDir(), "out")

	err := r.Extract("MISSING", dest)

	var nf *NotFoundError
	require.ErrorAs(t, err, &nf)
	_, statErr := os.Stat(dest)
	assert.True(t, os.IsNotExist(statErr), "destination must not be created for a missing resource")
}

func TestExtract_DestinationNotWritable(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())
	dest := filepath.Join(t.TempDir(), "no", "such", "dir", "VERSION")

	err := r.Extract("VERSION", dest)

	var dw *DestinationWriteError
	require.ErrorAs(t, err, &dw)
	assert.Equal(t, dest, dw.Path)
}

func TestExtract_ReadFailureMidCopy(t *testing.T) {
	t.Parallel()
	readErr := errors.New("bad sector")
	r := NewReader(&brokenFS{name: "blob", prefix: []byte("partial"), readErr: readErr})
	dest := filepath.Join(t.TempDir(), "blob")

	err := r.Extract("blob", dest)

	var ce *CopyError
	require.ErrorAs(t, err, &ce)
	assert.ErrorIs(t, err, readErr)

	// The partial write is a documented limitation.
	got, readBackErr := os.ReadFile(dest)
	require.NoError(t, readBackErr)
	assert.Equal(t, "partial", string(got))
}

func TestList(t *testing.T) {
	t.Parallel()
	r := NewReader(testBundle())

	entries, err := r.List()
	require.NoError(t, err)

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name)
	}
	assert.Equal(t, []string{
		"BLANK_FIRST", "EMPTY", "FORGE_VERSION", "NO_NEWLINE", "VERSION",
		"assets/big.bin", "scripts/a.lua",
	}, names)
	assert.Equal(t, int64(6000), entries[5].Size)
}
