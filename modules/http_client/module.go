// Package http_client gives scripts a shared HTTP client for fetching files
// the bundle does not carry and for making individual requests.
package http_client

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/specialistvlad/dojolaunch/internal/registry"
)

// DefaultTimeout bounds a whole request, body included. Server jars are
// large and classroom networks slow.
const DefaultTimeout = 10 * time.Minute

// Options configures the shared client.
type Options struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// Module implements the registry.Module interface for this package.
type Module struct {
	client *http.Client
	logger *slog.Logger
}

// New creates the module and its client.
func New(opts Options) *Module {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	return &Module{client: newHTTPClient(opts.Timeout), logger: opts.Logger}
}

// Register registers launcher.download and launcher.http_request.
func (m *Module) Register(r *registry.Registry) {
	r.Register("download", m.luaDownload)
	r.Register("http_request", m.luaRequest)
}

// Close releases idle connections when the runtime terminates.
func (m *Module) Close() error {
	m.client.CloseIdleConnections()
	return nil
}
