package host

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// moduleName is the name scripts use to reach host functions, either as the
// global `launcher` or through `require("launcher")`.
const moduleName = "launcher"

// builtinNames are the launcher functions provided by the host itself.
var builtinNames = []string{"args", "exit", "prompt"}

// install prepares a fresh Lua state: argv, stdio, the launcher module and
// a safe os.exit.
func (h *Host) install(rt *Runtime) error {
	L := rt.state

	argv := L.NewTable()
	for i, a := range rt.args {
		argv.RawSetInt(i+1, lua.LString(a))
	}
	L.SetGlobal("arg", argv)

	L.SetGlobal("print", L.NewFunction(h.luaPrint))

	mod := L.NewTable()
	L.SetFuncs(mod, h.registry.Funcs())
	L.SetFuncs(mod, map[string]lua.LGFunction{
		"args":   luaArgs(rt),
		"exit":   luaExit,
		"prompt": h.luaPrompt,
	})
	L.SetGlobal(moduleName, mod)
	L.PreloadModule(moduleName, func(L *lua.LState) int {
		L.Push(mod)
		return 1
	})

	osLib, ok := L.GetGlobal("os").(*lua.LTable)
	if !ok {
		return fmt.Errorf("lua os library is not available")
	}
	L.SetField(osLib, "exit", L.NewFunction(luaExit))
	return nil
}

// luaArgs returns launcher.args(), a fresh 1-based copy of argv.
func luaArgs(rt *Runtime) lua.LGFunction {
	return func(L *lua.LState) int {
		t := L.NewTable()
		for i, a := range rt.args {
			t.RawSetInt(i+1, lua.LString(a))
		}
		L.Push(t)
		return 1
	}
}

// luaExit implements launcher.exit(code, message) and os.exit(code). It
// raises an ExitRequest instead of leaving the process, so the host can
// terminate the runtime first. A non-zero code outside 1..255 becomes 1.
//
// The request travels as a Lua error, so a script that wraps the call in
// pcall catches it and keeps running.
func luaExit(L *lua.LState) int {
	req := &ExitRequest{}
	switch v := L.Get(1).(type) {
	case lua.LBool:
		if !bool(v) {
			req.Code = 1
		}
	case lua.LNumber:
		req.Code = int(v)
		if req.Code < 0 || req.Code > 255 {
			req.Code = 1
		}
	case *lua.LNilType:
	default:
		L.ArgError(1, "exit status must be a number or boolean")
		return 0
	}
	req.Message = L.OptString(2, "")

	ud := L.NewUserData()
	ud.Value = req
	L.Error(ud, 0)
	return 0
}

// luaPrint writes its arguments to the host output, tab separated.
func (h *Host) luaPrint(L *lua.LState) int {
	top := L.GetTop()
	parts := make([]string, 0, top)
	for i := 1; i <= top; i++ {
		parts = append(parts, L.ToStringMeta(L.Get(i)).String())
	}
	fmt.Fprintln(h.out, strings.Join(parts, "\t"))
	return 0
}

// luaPrompt implements launcher.prompt(message). It returns the next input
// line without its line ending, or nil once input is exhausted.
func (h *Host) luaPrompt(L *lua.LState) int {
	if msg := L.OptString(1, ""); msg != "" {
		fmt.Fprint(h.out, msg)
	}

	line, err := h.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		L.Push(lua.LNil)
		return 1
	}
	L.Push(lua.LString(strings.TrimRight(line, "\r\n")))
	return 1
}

func newInput(r io.Reader) *bufio.Reader {
	if br, ok := r.(*bufio.Reader); ok {
		return br
	}
	return bufio.NewReader(r)
}
