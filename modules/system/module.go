// Package system exposes host and filesystem queries to scripts.
package system

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/exec"
	"runtime"

	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/specialistvlad/dojolaunch/internal/registry"
	lua "github.com/yuin/gopher-lua"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the system functions.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterAll(map[string]lua.LGFunction{
		"platform":       luaPlatform,
		"home_dir":       luaHomeDir,
		"mkdir":          luaMkdir,
		"exists":         luaExists,
		"which":          luaWhich,
		"command_output": luaCommandOutput,
		"host_info":      luaHostInfo,
	})
}

// luaPlatform returns the operating system and architecture.
func luaPlatform(L *lua.LState) int {
	L.Push(lua.LString(runtime.GOOS))
	L.Push(lua.LString(runtime.GOARCH))
	return 2
}

func luaHomeDir(L *lua.LState) int {
	dir, err := os.UserHomeDir()
	if err != nil {
		L.RaiseError("home_dir: %v", err)
		return 0
	}
	L.Push(lua.LString(dir))
	return 1
}

// luaMkdir creates path and any missing parents, then returns path.
func luaMkdir(L *lua.LState) int {
	path := L.CheckString(1)
	if err := os.MkdirAll(path, 0o755); err != nil {
		L.RaiseError("mkdir: %v", err)
		return 0
	}
	L.Push(lua.LString(path))
	return 1
}

// luaExists returns whether path exists and whether it is a directory.
func luaExists(L *lua.LState) int {
	info, err := os.Stat(L.CheckString(1))
	switch {
	case err == nil:
		L.Push(lua.LTrue)
		L.Push(lua.LBool(info.IsDir()))
	case errors.Is(err, fs.ErrNotExist):
		L.Push(lua.LFalse)
		L.Push(lua.LFalse)
	default:
		L.RaiseError("exists: %v", err)
		return 0
	}
	return 2
}

// luaWhich returns the full path of an executable on PATH, or nil.
func luaWhich(L *lua.LState) int {
	path, err := exec.LookPath(L.CheckString(1))
	if err != nil {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(path))
	return 1
}

// luaCommandOutput implements launcher.command_output(cmd, ...). It runs cmd
// with the remaining arguments and returns its combined stdout and stderr
// and whether it exited with status 0. A command that cannot be started
// returns nil and the reason.
func luaCommandOutput(L *lua.LState) int {
	name := L.CheckString(1)
	args := make([]string, 0, L.GetTop()-1)
	for i := 2; i <= L.GetTop(); i++ {
		args = append(args, L.CheckString(i))
	}

	out, err := exec.CommandContext(orBackground(L.Context()), name, args...).CombinedOutput()
	var exitErr *exec.ExitError
	switch {
	case err == nil:
		L.Push(lua.LString(out))
		L.Push(lua.LTrue)
	case errors.As(err, &exitErr):
		L.Push(lua.LString(out))
		L.Push(lua.LFalse)
	default:
		L.Push(lua.LNil)
		L.Push(lua.LString(err.Error()))
	}
	return 2
}

// luaHostInfo returns a table describing the machine.
func luaHostInfo(L *lua.LState) int {
	ctx := L.Context()
	info, err := host.InfoWithContext(orBackground(ctx))
	if err != nil {
		L.RaiseError("host_info: %v", err)
		return 0
	}

	t := L.NewTable()
	t.RawSetString("hostname", lua.LString(info.Hostname))
	t.RawSetString("os", lua.LString(info.OS))
	t.RawSetString("platform", lua.LString(info.Platform))
	t.RawSetString("platform_version", lua.LString(info.PlatformVersion))
	t.RawSetString("kernel_version", lua.LString(info.KernelVersion))
	t.RawSetString("arch", lua.LString(runtime.GOARCH))
	t.RawSetString("uptime", lua.LNumber(info.Uptime))
	t.RawSetString("cpus", lua.LNumber(runtime.NumCPU()))

	if vm, err := mem.VirtualMemoryWithContext(orBackground(ctx)); err == nil {
		t.RawSetString("total_memory", lua.LNumber(vm.Total))
		t.RawSetString("available_memory", lua.LNumber(vm.Available))
	}

	L.Push(t)
	return 1
}

func orBackground(ctx context.Context) context.Context {
	if ctx == nil {
		return context.Background()
	}
	return ctx
}
