package resource

import "fmt"

// NotFoundError reports that no resource exists under the requested name.
type NotFoundError struct {
	Name string
	Err  error
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("resource %q not found", e.Name)
}

func (e *NotFoundError) Unwrap() error { return e.Err }

// ReadError reports an I/O failure while reading a resource.
type ReadError struct {
	Name string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read resource %q: %v", e.Name, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// EmptyError reports a resource that exists but has no content, so there is
// no first line to return.
type EmptyError struct {
	Name string
}

func (e *EmptyError) Error() string {
	return fmt.Sprintf("resource %q is empty", e.Name)
}

// DestinationWriteError reports that the extraction target could not be
// created, written or closed.
type DestinationWriteError struct {
	Path string
	Err  error
}

func (e *DestinationWriteError) Error() string {
	return fmt.Sprintf("failed to write destination %q: %v", e.Path, e.Err)
}

func (e *DestinationWriteError) Unwrap() error { return e.Err }

// CopyError reports a read failure in the middle of an extraction. The
// destination may already hold part of the resource.
type CopyError struct {
	Name string
	Path string
	Err  error
}

func (e *CopyError) Error() string {
	return fmt.Sprintf("failed to copy resource %q to %q: %v", e.Name, e.Path, e.Err)
}

func (e *CopyError) Unwrap() error { return e.Err }
