package host

import (
	"context"
	"errors"

	"github.com/specialistvlad/dojolaunch/internal/ctxlog"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	lua "github.com/yuin/gopher-lua"
)

// Executable is a loaded unit of work that runs against a Runtime.
type Executable interface {
	Run(ctx context.Context, rt *Runtime) error
}

// Source resolves a script name to an Executable. Parsing happens against
// the runtime that will execute the script.
type Source interface {
	Load(ctx context.Context, rt *Runtime, name string) (Executable, error)
}

// BundleSource loads Lua scripts from the bundled resources.
type BundleSource struct {
	reader *resource.Reader
}

// NewBundleSource creates a Source backed by the given resource reader.
func NewBundleSource(reader *resource.Reader) *BundleSource {
	return &BundleSource{reader: reader}
}

// Load reads and compiles the named script.
func (s *BundleSource) Load(ctx context.Context, rt *Runtime, name string) (Executable, error) {
	src, err := s.reader.ReadAll(name)
	if err != nil {
		var nf *resource.NotFoundError
		if errors.As(err, &nf) {
			return nil, &ScriptError{Script: name, Kind: KindNotFound, Err: err}
		}
		return nil, &ScriptError{Script: name, Kind: KindLoad, Err: err}
	}

	exe, err := rt.Compile(name, src)
	if err != nil {
		return nil, &ScriptError{Script: name, Kind: KindParse, Err: err}
	}
	ctxlog.FromContext(ctx).Debug("Script compiled.", "script", name, "bytes", len(src))
	return exe, nil
}

// chunk is a compiled Lua chunk.
type chunk struct {
	name string
	fn   *lua.LFunction
}

// Run calls the chunk in protected mode. An exit request raised by the
// script is unwrapped so callers can read its status code.
func (c *chunk) Run(ctx context.Context, rt *Runtime) error {
	L := rt.state
	L.Push(c.fn)
	err := L.PCall(0, 0, nil)
	if err == nil {
		return nil
	}

	var apiErr *lua.ApiError
	if errors.As(err, &apiErr) {
		if ud, ok := apiErr.Object.(*lua.LUserData); ok {
			if req, ok := ud.Value.(*ExitRequest); ok {
				return req
			}
		}
	}
	return err
}
