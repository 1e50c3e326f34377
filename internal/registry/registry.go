package registry

import (
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// Module is the interface that all capability modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the functions exposed to scripts for a single runtime.
type Registry struct {
	funcs    map[string]lua.LGFunction
	problems []string
}

// New creates and initializes a new Registry instance.
func New(modules ...Module) *Registry {
	r := &Registry{
		funcs: make(map[string]lua.LGFunction),
	}
	for _, mod := range modules {
		mod.Register(r)
	}
	return r
}

// Has reports whether a function is registered under name.
func (r *Registry) Has(name string) bool {
	_, ok := r.funcs[name]
	return ok
}

// Names returns the registered function names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.funcs))
	for name := range r.funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Funcs returns a copy of the registered functions keyed by name.
func (r *Registry) Funcs() map[string]lua.LGFunction {
	out := make(map[string]lua.LGFunction, len(r.funcs))
	for name, fn := range r.funcs {
		out[name] = fn
	}
	return out
}
