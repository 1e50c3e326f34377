// Package report streams launcher events to a classroom dashboard over
// socket.io. Without a configured URL every call is a no-op.
package report

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	lua "github.com/yuin/gopher-lua"
	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io-client-go/socket"
)

// DefaultConnectTimeout bounds the wait for the first connection.
const DefaultConnectTimeout = 15 * time.Second

// Options configures the reporter.
type Options struct {
	// URL of the socket.io server. Empty disables reporting.
	URL                string
	Namespace          string
	InsecureSkipVerify bool
	ConnectTimeout     time.Duration
	// RunID is attached to every event.
	RunID  string
	Logger *slog.Logger
}

// Module implements the registry.Module interface for this package.
type Module struct {
	opts Options

	mu      sync.Mutex
	client  *socket.Socket
	failed  error
	emitted int
}

// New creates a reporter. Nothing connects until the first event.
func New(opts Options) *Module {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Namespace == "" {
		opts.Namespace = "/"
	}
	if opts.ConnectTimeout <= 0 {
		opts.ConnectTimeout = DefaultConnectTimeout
	}
	return &Module{opts: opts}
}

// Register registers launcher.report and launcher.reporting.
func (m *Module) Register(r *registry.Registry) {
	r.Register("report", m.luaReport)
	r.Register("reporting", m.luaReporting)
}

// Enabled reports whether a server URL is configured.
func (m *Module) Enabled() bool {
	return m.opts.URL != ""
}

// luaReport implements launcher.report(event[, data]). It returns true when
// the event was sent, or false and a reason otherwise. Reporting never
// fails a script.
func (m *Module) luaReport(L *lua.LState) int {
	event := L.CheckString(1)
	data := map[string]any{}
	if t, ok := L.Get(2).(*lua.LTable); ok {
		converted, err := tableToMap(t)
		if err != nil {
			L.ArgError(2, err.Error())
			return 0
		}
		data = converted
	} else if L.Get(2) != lua.LNil {
		L.ArgError(2, "table expected")
		return 0
	}

	if err := m.Emit(context.Background(), event, data); err != nil {
		L.Push(lua.LFalse)
		L.Push(lua.LString(err.Error()))
		return 2
	}
	L.Push(lua.LTrue)
	return 1
}

func (m *Module) luaReporting(L *lua.LState) int {
	L.Push(lua.LBool(m.Enabled()))
	return 1
}

// Emit sends event with data, connecting on first use. A failed connection
// is remembered and not retried.
func (m *Module) Emit(ctx context.Context, event string, data map[string]any) error {
	if !m.Enabled() {
		return fmt.Errorf("reporting is disabled")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failed != nil {
		return m.failed
	}
	if m.client == nil {
		client, err := m.connect(ctx)
		if err != nil {
			m.failed = err
			m.opts.Logger.Warn("Reporting disabled for this run.", "error", err)
			return err
		}
		m.client = client
	}

	payload := make(map[string]any, len(data)+1)
	for k, v := range data {
		payload[k] = v
	}
	payload["run_id"] = m.opts.RunID

	m.opts.Logger.Debug("Emitting report event.", "event", event)
	m.client.Emit(event, payload)
	m.emitted++
	return nil
}

// Close disconnects from the server if a connection was made.
func (m *Module) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.client == nil {
		return nil
	}
	m.opts.Logger.Debug("Closing report connection.", "sid", m.client.Id(), "events", m.emitted)
	m.client.Disconnect()
	m.client = nil
	return nil
}

func (m *Module) connect(ctx context.Context) (*socket.Socket, error) {
	logger := m.opts.Logger.With("url", m.opts.URL)

	parsedURL, err := url.Parse(m.opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("report URL %q must include a scheme and host", m.opts.URL)
	}

	opts := socket.DefaultOptions()
	if parsedURL.Path != "" {
		opts.SetPath(parsedURL.Path)
	}
	if m.opts.InsecureSkipVerify {
		logger.Warn("Skipping TLS certificate verification")
		opts.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	opts.SetTransports(types.NewSet(transports.WebSocket))

	connectChan := make(chan error, 1)

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	manager := socket.NewManager(baseURL, opts)
	io := manager.Socket(m.opts.Namespace, opts)

	io.Once(types.EventName("connect"), func(...any) {
		logger.Debug("Report connection established.", "sid", io.Id())
		select {
		case connectChan <- nil:
		default:
		}
	})
	io.Once(types.EventName("connect_error"), func(errs ...any) {
		err := fmt.Errorf("connect_error")
		if len(errs) > 0 {
			if e, ok := errs[0].(error); ok {
				err = e
			}
		}
		select {
		case connectChan <- err:
		default:
		}
	})

	io.Connect()

	select {
	case err := <-connectChan:
		if err != nil {
			io.Disconnect()
			return nil, fmt.Errorf("socket.io connection failed: %w", err)
		}
		return io, nil
	case <-ctx.Done():
		io.Disconnect()
		return nil, fmt.Errorf("context cancelled while waiting for socket.io connection")
	case <-time.After(m.opts.ConnectTimeout):
		io.Disconnect()
		return nil, fmt.Errorf("timed out after %s waiting for socket.io connection", m.opts.ConnectTimeout)
	}
}
