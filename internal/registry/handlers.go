package registry

import (
	"fmt"
	"log/slog"
	"sort"

	lua "github.com/yuin/gopher-lua"
)

// Register exposes fn to scripts under name. A duplicate or nil registration
// is remembered and reported by Validate; the first registration wins.
func (r *Registry) Register(name string, fn lua.LGFunction) {
	if fn == nil {
		r.problems = append(r.problems, fmt.Sprintf("function '%s' registered without an implementation", name))
		return
	}
	if _, exists := r.funcs[name]; exists {
		r.problems = append(r.problems, fmt.Sprintf("function '%s' already registered", name))
		return
	}
	slog.Debug("Registering script function.", "name", name)
	r.funcs[name] = fn
}

// RegisterAll registers every function of the map. Names are registered in
// sorted order so duplicate reports are deterministic.
func (r *Registry) RegisterAll(funcs map[string]lua.LGFunction) {
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		r.Register(name, funcs[name])
	}
}
