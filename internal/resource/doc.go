// Package resource reads and extracts the named artifacts bundled with the
// launcher. Resources are addressed by their logical name inside an fs.FS,
// usually the embedded bundle, and are never modified.
//
// Every stream opened here is closed before the call returns, whatever the
// outcome. Failures are reported with the typed errors in errors.go so that
// callers can tell a missing resource from an I/O problem.
package resource
