// Package extract lets scripts copy bundled resources onto the filesystem.
package extract

import (
	"log/slog"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	lua "github.com/yuin/gopher-lua"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	reader *resource.Reader
	logger *slog.Logger
}

// New creates the module over the bundled resources.
func New(reader *resource.Reader, logger *slog.Logger) *Module {
	if logger == nil {
		logger = slog.Default()
	}
	return &Module{reader: reader, logger: logger}
}

// Register registers launcher.save_file and launcher.resource_exists.
func (m *Module) Register(r *registry.Registry) {
	r.Register("save_file", m.luaSaveFile)
	r.Register("resource_exists", m.luaResourceExists)
}

// luaSaveFile implements launcher.save_file(resource, path). The destination
// is overwritten. It returns path.
func (m *Module) luaSaveFile(L *lua.LState) int {
	name := L.CheckString(1)
	dest := L.CheckString(2)

	if err := m.reader.Extract(name, dest); err != nil {
		m.logger.Error("Resource extraction failed.", "resource", name, "path", dest, "error", err)
		L.RaiseError("save_file: %v", err)
		return 0
	}
	m.logger.Debug("Resource extracted.", "resource", name, "path", dest)
	L.Push(lua.LString(dest))
	return 1
}

func (m *Module) luaResourceExists(L *lua.LState) int {
	_, err := m.reader.ReadAll(L.CheckString(1))
	L.Push(lua.LBool(err == nil))
	return 1
}
