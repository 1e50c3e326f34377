package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

// Response is the outcome of a single request.
type Response struct {
	StatusCode int
	Body       string
}

// Request performs one request without a body.
func (m *Module) Request(ctx context.Context, method, url string) (*Response, error) {
	m.logger.Info("Making HTTP request", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	m.logger.Info("Received HTTP response", "status", resp.Status)

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}

// luaRequest implements launcher.http_request(url[, method]) and returns a
// table with status_code and body. Non-2xx statuses are not errors.
func (m *Module) luaRequest(L *lua.LState) int {
	url := L.CheckString(1)
	method := strings.ToUpper(L.OptString(2, http.MethodGet))

	resp, err := m.Request(contextOf(L), method, url)
	if err != nil {
		L.RaiseError("http_request: %v", err)
		return 0
	}

	t := L.NewTable()
	t.RawSetString("status_code", lua.LNumber(resp.StatusCode))
	t.RawSetString("body", lua.LString(resp.Body))
	L.Push(t)
	return 1
}
