package host

import (
	"errors"
	"fmt"
)

var (
	// ErrAlreadyInitialized is returned by a second call to Initialize.
	ErrAlreadyInitialized = errors.New("host: runtime already initialized")
	// ErrNotInitialized is returned by Run before Initialize.
	ErrNotInitialized = errors.New("host: runtime not initialized")
	// ErrTerminated is returned by any operation after Terminate.
	ErrTerminated = errors.New("host: runtime terminated")
)

// InitError reports that the embedded runtime could not be constructed.
type InitError struct {
	Err error
}

func (e *InitError) Error() string {
	return fmt.Sprintf("failed to initialize runtime: %v", e.Err)
}

func (e *InitError) Unwrap() error { return e.Err }

// ScriptKind classifies a script failure.
type ScriptKind int

const (
	// KindNotFound means the script resource does not exist.
	KindNotFound ScriptKind = iota
	// KindLoad means the script resource exists but could not be read.
	KindLoad
	// KindParse means the script body is not valid Lua.
	KindParse
	// KindExecution means the script raised an error while running.
	KindExecution
)

func (k ScriptKind) String() string {
	switch k {
	case KindNotFound:
		return "not found"
	case KindLoad:
		return "load failed"
	case KindParse:
		return "parse failed"
	case KindExecution:
		return "execution failed"
	default:
		return fmt.Sprintf("ScriptKind(%d)", int(k))
	}
}

// ScriptError reports a failure to load, parse or execute a script.
type ScriptError struct {
	Script string
	Kind   ScriptKind
	Err    error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("script %q %s: %v", e.Script, e.Kind, e.Err)
}

func (e *ScriptError) Unwrap() error { return e.Err }

// IsKind reports whether err is a ScriptError of the given kind.
func IsKind(err error, kind ScriptKind) bool {
	var se *ScriptError
	return errors.As(err, &se) && se.Kind == kind
}

// ExitRequest is raised by `launcher.exit` and `os.exit`. It stops the
// current script like any other error, so the host still terminates the
// runtime before the process exits with Code.
type ExitRequest struct {
	Code    int
	Message string
}

func (e *ExitRequest) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("script requested exit with status %d", e.Code)
	}
	return fmt.Sprintf("script requested exit with status %d: %s", e.Code, e.Message)
}
