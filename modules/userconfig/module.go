// Package userconfig gives scripts a persistent place for user answers.
package userconfig

import (
	"os"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/settings"
	lua "github.com/yuin/gopher-lua"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	store   *settings.Store
	dataDir string
}

// New creates the module. dataDir is created on demand by data_dir().
func New(store *settings.Store, dataDir string) *Module {
	return &Module{store: store, dataDir: dataDir}
}

// Register registers config_get, config_set and data_dir.
func (m *Module) Register(r *registry.Registry) {
	r.Register("config_get", m.luaGet)
	r.Register("config_set", m.luaSet)
	r.Register("data_dir", m.luaDataDir)
}

// luaGet returns the stored string, or nil when the key is unset.
func (m *Module) luaGet(L *lua.LState) int {
	v, ok, err := m.store.Get(L.CheckString(1))
	if err != nil {
		L.RaiseError("config_get: %v", err)
		return 0
	}
	if !ok {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(v))
	return 1
}

func (m *Module) luaSet(L *lua.LState) int {
	key := L.CheckString(1)
	value := L.CheckString(2)
	if err := m.store.Set(key, value); err != nil {
		L.RaiseError("config_set: %v", err)
	}
	return 0
}

func (m *Module) luaDataDir(L *lua.LState) int {
	if err := os.MkdirAll(m.dataDir, 0o755); err != nil {
		L.RaiseError("data_dir: %v", err)
		return 0
	}
	L.Push(lua.LString(m.dataDir))
	return 1
}
