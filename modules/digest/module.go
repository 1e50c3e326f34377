// Package digest provides hashing helpers to scripts.
package digest

import (
	"crypto/md5"
	"encoding/hex"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	lua "github.com/yuin/gopher-lua"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers md5 and md5_hex.
func (m *Module) Register(r *registry.Registry) {
	r.Register("md5", luaMD5)
	r.Register("md5_hex", luaMD5Hex)
}

// luaMD5 returns the raw 16-byte digest as a Lua string.
func luaMD5(L *lua.LState) int {
	sum := md5.Sum([]byte(L.CheckString(1)))
	L.Push(lua.LString(sum[:]))
	return 1
}

func luaMD5Hex(L *lua.LState) int {
	sum := md5.Sum([]byte(L.CheckString(1)))
	L.Push(lua.LString(hex.EncodeToString(sum[:])))
	return 1
}
