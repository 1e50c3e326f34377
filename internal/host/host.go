package host

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	lua "github.com/yuin/gopher-lua"
)

// State is the lifecycle position of a Host.
type State int

const (
	// StateUninitialized is a new Host with no runtime yet.
	StateUninitialized State = iota
	// StateInitialized has a runtime that is not running a script.
	StateInitialized
	// StateRunning is executing a script.
	StateRunning
	// StateTerminated has released its runtime. It is final.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateRunning:
		return "running"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Option defines a functional option for configuring the Host.
type Option func(*Host)

// WithRegistry sets the functions exposed to scripts as the launcher module.
func WithRegistry(r *registry.Registry) Option {
	return func(h *Host) {
		h.registry = r
	}
}

// WithLogger sets the logger used for lifecycle and script events.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		h.logger = logger
	}
}

// WithStdio redirects script input (launcher.prompt) and output (print).
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(h *Host) {
		if in != nil {
			h.in = newInput(in)
		}
		if out != nil {
			h.out = out
		}
	}
}

// Host owns the embedded runtime for its whole lifetime.
type Host struct {
	mu       sync.Mutex
	state    State
	rt       *Runtime
	source   Source
	registry *registry.Registry
	logger   *slog.Logger
	in       *bufio.Reader
	out      io.Writer
}

// New creates an uninitialized Host that loads scripts from source.
func New(source Source, opts ...Option) *Host {
	h := &Host{
		source: source,
		logger: slog.Default(),
		in:     bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
	for _, opt := range opts {
		opt(h)
	}
	if h.registry == nil {
		h.registry = registry.New()
	}
	return h
}

// State returns the current lifecycle state.
func (h *Host) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Initialize creates the runtime with args as its visible argument vector.
// It may only be called once per Host.
func (h *Host) Initialize(args []string) (rt *Runtime, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case StateUninitialized:
	case StateTerminated:
		return nil, ErrTerminated
	default:
		return nil, ErrAlreadyInitialized
	}

	if h.source == nil {
		return nil, &InitError{Err: errors.New("no script source configured")}
	}
	if err := h.registry.Validate(builtinNames...); err != nil {
		return nil, &InitError{Err: err}
	}

	var state *lua.LState
	defer func() {
		if r := recover(); r != nil {
			if state != nil {
				state.Close()
			}
			rt, err = nil, &InitError{Err: fmt.Errorf("runtime panicked: %v", r)}
		}
	}()

	state = lua.NewState()
	rt = newRuntime(state, args)
	if err := h.install(rt); err != nil {
		state.Close()
		return nil, &InitError{Err: err}
	}

	h.rt = rt
	h.state = StateInitialized
	h.logger.Debug("Runtime initialized.", "args", len(args), "functions", len(h.registry.Names()))
	return rt, nil
}

// Run loads the named script and executes it to completion against the
// runtime. Calls are serialised. Failures are returned as *ScriptError;
// deciding whether to run anything afterwards is up to the caller.
func (h *Host) Run(ctx context.Context, name string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	switch h.state {
	case StateUninitialized:
		return ErrNotInitialized
	case StateTerminated:
		return ErrTerminated
	}
	h.state = StateRunning

	logger := h.logger.With("script", name)
	logger.Debug("Loading script.")

	exe, err := h.source.Load(ctx, h.rt, name)
	if err != nil {
		var se *ScriptError
		if !errors.As(err, &se) {
			err = &ScriptError{Script: name, Kind: KindLoad, Err: err}
		}
		logger.Error("Script could not be loaded.", "error", err)
		return err
	}

	start := time.Now()
	if err := exe.Run(ctx, h.rt); err != nil {
		logger.Error("Script failed.", "error", err, "duration", time.Since(start))
		return &ScriptError{Script: name, Kind: KindExecution, Err: err}
	}
	logger.Debug("Script finished.", "duration", time.Since(start))
	return nil
}

// Terminate releases the runtime and everything registered with OnClose.
// Only the first call has any effect; it is safe in every state.
func (h *Host) Terminate() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.state == StateTerminated {
		return nil
	}
	h.state = StateTerminated
	if h.rt == nil {
		return nil
	}

	err := h.rt.close()
	if err != nil {
		h.logger.Error("Runtime terminated with errors.", "error", err)
		return err
	}
	h.logger.Debug("Runtime terminated.")
	return nil
}
