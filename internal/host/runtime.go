package host

import (
	"bytes"
	"errors"

	lua "github.com/yuin/gopher-lua"
)

// Runtime is the single embedded execution environment of a Host. It is
// created by Initialize and closed by Terminate; nothing else owns it.
type Runtime struct {
	args    []string
	state   *lua.LState
	alive   bool
	closers []func() error
}

func newRuntime(state *lua.LState, args []string) *Runtime {
	return &Runtime{
		args:  append([]string(nil), args...),
		state: state,
		alive: true,
	}
}

// Args returns a copy of the argument vector visible to scripts.
func (rt *Runtime) Args() []string {
	return append([]string(nil), rt.args...)
}

// Alive reports whether the runtime has not been closed yet.
func (rt *Runtime) Alive() bool {
	return rt.alive
}

// State exposes the underlying Lua state. It must only be used from the
// goroutine that is currently running a script.
func (rt *Runtime) State() *lua.LState {
	return rt.state
}

// OnClose registers fn to run when the runtime is terminated. Hooks run in
// reverse registration order before the Lua state is closed.
func (rt *Runtime) OnClose(fn func() error) {
	rt.closers = append(rt.closers, fn)
}

// Compile parses src as a Lua chunk named name without running it.
func (rt *Runtime) Compile(name string, src []byte) (Executable, error) {
	fn, err := rt.state.Load(bytes.NewReader(src), name)
	if err != nil {
		return nil, err
	}
	return &chunk{name: name, fn: fn}, nil
}

// close runs the cleanup hooks and releases the Lua state. It is only ever
// called once, by Host.Terminate.
func (rt *Runtime) close() error {
	var errs []error
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	if rt.state != nil {
		rt.state.Close()
	}
	rt.alive = false
	return errors.Join(errs...)
}
