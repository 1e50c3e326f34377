// Package metadata exposes the bundled version strings to scripts.
package metadata

import (
	"sort"

	"github.com/specialistvlad/dojolaunch/internal/manifest"
	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	lua "github.com/yuin/gopher-lua"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	reader    *resource.Reader
	resources map[string]string
}

// New creates the module. resources maps a metadata key to the name of the
// bundled resource whose first line holds its value.
func New(reader *resource.Reader, resources map[string]string) *Module {
	return &Module{reader: reader, resources: resources}
}

// Register registers the metadata functions.
func (m *Module) Register(r *registry.Registry) {
	r.Register("version", m.fixed(manifest.MetadataVersion))
	r.Register("forge_version", m.fixed(manifest.MetadataForgeVersion))
	r.Register("metadata", m.luaMetadata)
	r.Register("metadata_keys", m.luaKeys)
}

func (m *Module) fixed(key string) lua.LGFunction {
	return func(L *lua.LState) int {
		L.Push(lua.LString(m.lookup(L, key)))
		return 1
	}
}

// luaMetadata implements launcher.metadata(key).
func (m *Module) luaMetadata(L *lua.LState) int {
	L.Push(lua.LString(m.lookup(L, L.CheckString(1))))
	return 1
}

// luaKeys implements launcher.metadata_keys(), a sorted list of known keys.
func (m *Module) luaKeys(L *lua.LState) int {
	keys := make([]string, 0, len(m.resources))
	for k := range m.resources {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	t := L.NewTable()
	for _, k := range keys {
		t.Append(lua.LString(k))
	}
	L.Push(t)
	return 1
}

func (m *Module) lookup(L *lua.LState, key string) string {
	name, ok := m.resources[key]
	if !ok {
		L.RaiseError("unknown metadata key %q", key)
		return ""
	}
	value, err := m.reader.ReadLine(name)
	if err != nil {
		L.RaiseError("metadata %q: %v", key, err)
		return ""
	}
	return value
}
