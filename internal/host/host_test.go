package host

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

// execFunc adapts a function to the Executable interface.
type execFunc func(ctx context.Context, rt *Runtime) error

func (f execFunc) Run(ctx context.Context, rt *Runtime) error { return f(ctx, rt) }

// fakeSource serves injected executables by name.
type fakeSource struct {
	scripts map[string]Executable
	loadErr error
}

func (s *fakeSource) Load(ctx context.Context, rt *Runtime, name string) (Executable, error) {
	if s.loadErr != nil {
		return nil, s.loadErr
	}
	exe, ok := s.scripts[name]
	if !ok {
		return nil, &ScriptError{Script: name, Kind: KindNotFound, Err: errors.New("no such fake")}
	}
	return exe, nil
}

// newLuaHost builds a host over an in-memory bundle of Lua scripts.
func newLuaHost(t *testing.T, scripts map[string]string, opts ...Option) (*Host, *bytes.Buffer) {
	t.Helper()
	bundle := fstest.MapFS{}
	for name, body := range scripts {
		bundle[name] = &fstest.MapFile{Data: []byte(body)}
	}
	out := &bytes.Buffer{}
	opts = append([]Option{WithStdio(strings.NewReader(""), out)}, opts...)
	h := New(NewBundleSource(resource.NewReader(bundle)), opts...)
	return h, out
}

func TestHost_Lifecycle(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, _ := newLuaHost(t, map[string]string{"a.lua": "x = 1"})
	require.Equal(t, StateUninitialized, h.State())

	// --- Act & Assert ---
	rt, err := h.Initialize([]string{"--check"})
	require.NoError(t, err)
	require.True(t, rt.Alive())
	require.Equal(t, []string{"--check"}, rt.Args())
	require.Equal(t, StateInitialized, h.State())

	require.NoError(t, h.Run(context.Background(), "a.lua"))
	require.Equal(t, StateRunning, h.State())

	require.NoError(t, h.Terminate())
	require.Equal(t, StateTerminated, h.State())
	require.False(t, rt.Alive())
}

func TestHost_StateMisuse(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	h, _ := newLuaHost(t, map[string]string{"a.lua": "x = 1"})
	require.ErrorIs(t, h.Run(ctx, "a.lua"), ErrNotInitialized)

	_, err := h.Initialize(nil)
	require.NoError(t, err)
	_, err = h.Initialize(nil)
	require.ErrorIs(t, err, ErrAlreadyInitialized)

	require.NoError(t, h.Terminate())
	require.ErrorIs(t, h.Run(ctx, "a.lua"), ErrTerminated)
	_, err = h.Initialize(nil)
	require.ErrorIs(t, err, ErrTerminated)
}

func TestHost_TerminateRunsOnceInReverseOrder(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	var calls []string
	src := &fakeSource{scripts: map[string]Executable{
		"setup": execFunc(func(ctx context.Context, rt *Runtime) error {
			rt.OnClose(func() error { calls = append(calls, "first"); return nil })
			rt.OnClose(func() error { calls = append(calls, "second"); return nil })
			return nil
		}),
	}}
	h := New(src)
	_, err := h.Initialize(nil)
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background(), "setup"))

	// --- Act ---
	require.NoError(t, h.Terminate())
	require.NoError(t, h.Terminate())

	// --- Assert ---
	assert.Equal(t, []string{"second", "first"}, calls)
}

func TestHost_TerminateJoinsCloseErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("flush failed")
	src := &fakeSource{scripts: map[string]Executable{
		"setup": execFunc(func(ctx context.Context, rt *Runtime) error {
			rt.OnClose(func() error { return boom })
			return nil
		}),
	}}
	h := New(src)
	rt, err := h.Initialize(nil)
	require.NoError(t, err)
	require.NoError(t, h.Run(context.Background(), "setup"))

	err = h.Terminate()
	require.ErrorIs(t, err, boom)
	assert.False(t, rt.Alive(), "the runtime is released even when a hook fails")
}

func TestHost_TerminateBeforeInitialize(t *testing.T) {
	t.Parallel()

	h := New(&fakeSource{})
	require.NoError(t, h.Terminate())
	require.Equal(t, StateTerminated, h.State())
}

func TestHost_LaterScriptsObserveEarlierDefinitions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	h, out := newLuaHost(t, map[string]string{
		"a.script": `greeting = "hello from a"
function shout(s) return string.upper(s) end`,
		"b.script": `print(shout(greeting), arg[1])`,
	})
	_, err := h.Initialize([]string{"--check"})
	require.NoError(t, err)
	defer h.Terminate()

	// --- Act ---
	for _, name := range []string{"a.script", "b.script"} {
		require.NoError(t, h.Run(context.Background(), name))
	}

	// --- Assert ---
	assert.Equal(t, "HELLO FROM A\t--check\n", out.String())
}

func TestHost_ArgsAreForwardedVerbatim(t *testing.T) {
	t.Parallel()

	h, out := newLuaHost(t, map[string]string{
		"args.lua": `local a = launcher.args()
print(#arg, #a, a[1], a[2], a[3])`,
	})
	_, err := h.Initialize([]string{"one", "--two", "three four"})
	require.NoError(t, err)
	defer h.Terminate()

	require.NoError(t, h.Run(context.Background(), "args.lua"))
	assert.Equal(t, "3\t3\tone\t--two\tthree four\n", out.String())
}

func TestHost_ScriptFailures(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		script  string
		kind    ScriptKind
		message string
	}{
		{name: "missing", script: "missing.lua", kind: KindNotFound, message: `resource "missing.lua" not found`},
		{name: "syntax error", script: "broken.lua", kind: KindParse, message: "broken.lua"},
		{name: "runtime error", script: "raise.lua", kind: KindExecution, message: "something went wrong"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, _ := newLuaHost(t, map[string]string{
				"broken.lua": "function (",
				"raise.lua":  `error("something went wrong")`,
			})
			_, err := h.Initialize(nil)
			require.NoError(t, err)
			defer h.Terminate()

			err = h.Run(context.Background(), tc.script)

			var se *ScriptError
			require.ErrorAs(t, err, &se)
			assert.Equal(t, tc.kind, se.Kind)
			assert.Equal(t, tc.script, se.Script)
			assert.True(t, IsKind(err, tc.kind))
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestHost_PlainLoadErrorsAreWrapped(t *testing.T) {
	t.Parallel()

	h := New(&fakeSource{loadErr: errors.New("disk unplugged")})
	_, err := h.Initialize(nil)
	require.NoError(t, err)
	defer h.Terminate()

	err = h.Run(context.Background(), "a.lua")
	require.True(t, IsKind(err, KindLoad))
	require.Contains(t, err.Error(), "disk unplugged")
}

func TestHost_ExitRequests(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		body    string
		code    int
		message string
	}{
		{name: "launcher.exit with message", body: `launcher.exit(3, "bye")`, code: 3, message: "bye"},
		{name: "os.exit false", body: `os.exit(false)`, code: 1},
		{name: "os.exit default", body: `os.exit()`, code: 0},
		{name: "exit through require", body: `local l = require("launcher"); l.exit(7)`, code: 7},
		{name: "largest status", body: `launcher.exit(255)`, code: 255},
		{name: "status above range", body: `launcher.exit(256, "wrapped")`, code: 1, message: "wrapped"},
		{name: "negative status", body: `os.exit(-256)`, code: 1},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			h, out := newLuaHost(t, map[string]string{
				"exit.lua": tc.body + "\nprint(\"unreachable\")",
			})
			rt, err := h.Initialize(nil)
			require.NoError(t, err)

			err = h.Run(context.Background(), "exit.lua")
			require.NoError(t, h.Terminate())

			var req *ExitRequest
			require.ErrorAs(t, err, &req)
			assert.Equal(t, tc.code, req.Code)
			assert.Equal(t, tc.message, req.Message)
			assert.True(t, IsKind(err, KindExecution))
			assert.Empty(t, out.String())
			assert.False(t, rt.Alive())
		})
	}
}

func TestHost_ExitInsidePcallIsCaught(t *testing.T) {
	t.Parallel()

	h, out := newLuaHost(t, map[string]string{
		"guarded.lua": `local ok = pcall(launcher.exit, 1)
print(ok)`,
	})
	_, err := h.Initialize(nil)
	require.NoError(t, err)
	defer h.Terminate()

	require.NoError(t, h.Run(context.Background(), "guarded.lua"))
	assert.Equal(t, "false\n", out.String())
}

func TestHost_RegisteredFunctions(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	reg := registry.New()
	reg.Register("answer", func(L *lua.LState) int {
		L.Push(lua.LNumber(42))
		return 1
	})
	h, out := newLuaHost(t, map[string]string{
		"call.lua": `local l = require("launcher")
print(l.answer(), launcher.answer(), l == launcher)`,
	}, WithRegistry(reg))

	_, err := h.Initialize(nil)
	require.NoError(t, err)
	defer h.Terminate()

	// --- Act ---
	require.NoError(t, h.Run(context.Background(), "call.lua"))

	// --- Assert ---
	assert.Equal(t, "42\t42\ttrue\n", out.String())
}

func TestHost_Prompt(t *testing.T) {
	t.Parallel()

	bundle := fstest.MapFS{"ask.lua": {Data: []byte(`
local first = launcher.prompt("name? ")
local second = launcher.prompt()
print("[" .. first .. "]", second == nil)`)}}
	out := &bytes.Buffer{}
	h := New(NewBundleSource(resource.NewReader(bundle)), WithStdio(strings.NewReader("steve\r\n"), out))

	_, err := h.Initialize(nil)
	require.NoError(t, err)
	defer h.Terminate()

	require.NoError(t, h.Run(context.Background(), "ask.lua"))
	assert.Equal(t, "name? [steve]\ttrue\n", out.String())
}

func TestHost_InitializeRejectsBadRegistry(t *testing.T) {
	t.Parallel()

	reg := registry.New()
	reg.Register("exit", func(L *lua.LState) int { return 0 })
	h := New(&fakeSource{}, WithRegistry(reg))

	_, err := h.Initialize(nil)

	var ie *InitError
	require.ErrorAs(t, err, &ie)
	assert.Contains(t, err.Error(), "provided by the host")
	assert.Equal(t, StateUninitialized, h.State())
}

func TestHost_InitializeWithoutSource(t *testing.T) {
	t.Parallel()

	_, err := New(nil).Initialize(nil)

	var ie *InitError
	require.ErrorAs(t, err, &ie)
}
