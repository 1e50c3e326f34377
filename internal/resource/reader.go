package resource

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"
)

// copyBufferSize is the size of the intermediate buffer used by Extract.
const copyBufferSize = 1024

var errIsDir = errors.New("is a directory")

// Entry describes a single bundled resource.
type Entry struct {
	Name string
	Size int64
}

// Reader gives read-only access to the resources of a bundle.
type Reader struct {
	fsys fs.FS
}

// NewReader creates a Reader over the given file system.
func NewReader(fsys fs.FS) *Reader {
	return &Reader{fsys: fsys}
}

// open resolves a resource name to an open file. Directories are not
// resources and are reported as missing.
func (r *Reader) open(name string) (fs.File, error) {
	if !fs.ValidPath(name) || name == "." {
		return nil, &NotFoundError{Name: name, Err: fs.ErrInvalid}
	}

	f, err := r.fsys.Open(name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &NotFoundError{Name: name, Err: err}
		}
		return nil, &ReadError{Name: name, Err: err}
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, &ReadError{Name: name, Err: err}
	}
	if info.IsDir() {
		f.Close()
		return nil, &NotFoundError{Name: name, Err: errIsDir}
	}
	return f, nil
}

// ReadLine returns the first line of the named resource with surrounding
// whitespace removed. A resource without any content is an EmptyError.
func (r *Reader) ReadLine(name string) (string, error) {
	f, err := r.open(name)
	if err != nil {
		return "", err
	}
	defer f.Close()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil {
		if !errors.Is(err, io.EOF) {
			return "", &ReadError{Name: name, Err: err}
		}
		if line == "" {
			return "", &EmptyError{Name: name}
		}
	}
	return strings.TrimSpace(line), nil
}

// ReadAll returns the complete content of the named resource.
func (r *Reader) ReadAll(name string) ([]byte, error) {
	f, err := r.open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &ReadError{Name: name, Err: err}
	}
	return data, nil
}

// Extract copies the named resource to dest, creating or truncating it.
//
// The source is opened before the destination is touched, so a missing
// resource never leaves a file behind. A failure during the copy can leave
// dest partially written; callers that need atomicity must write to a
// temporary path and rename it themselves.
func (r *Reader) Extract(name, dest string) (err error) {
	src, err := r.open(name)
	if err != nil {
		return err
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return &DestinationWriteError{Path: dest, Err: err}
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = &DestinationWriteError{Path: dest, Err: cerr}
		}
	}()

	buf := make([]byte, copyBufferSize)
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			if _, werr := out.Write(buf[:n]); werr != nil {
				return &DestinationWriteError{Path: dest, Err: werr}
			}
		}
		if errors.Is(rerr, io.EOF) {
			return nil
		}
		if rerr != nil {
			return &CopyError{Name: name, Path: dest, Err: rerr}
		}
	}
}

// List returns every resource in the bundle in lexical order.
func (r *Reader) List() ([]Entry, error) {
	var entries []Entry
	err := fs.WalkDir(r.fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		entries = append(entries, Entry{Name: path, Size: info.Size()})
		return nil
	})
	if err != nil {
		return nil, &ReadError{Name: ".", Err: err}
	}
	return entries, nil
}
