package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	lua "github.com/yuin/gopher-lua"
)

// Download fetches url into path and returns the number of bytes written.
// The body is written to a temporary file next to path and renamed into
// place, so a failed download never leaves a partial file at path.
func (m *Module) Download(ctx context.Context, url, path string) (int64, error) {
	logger := m.logger.With("url", url, "path", path)
	logger.Info("Downloading file.")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, fmt.Errorf("unexpected response status %s", resp.Status)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.part")
	if err != nil {
		return 0, fmt.Errorf("failed to create download file: %w", err)
	}
	n, copyErr := io.Copy(tmp, resp.Body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(tmp.Name())
		if copyErr != nil {
			return 0, fmt.Errorf("failed to read response body: %w", copyErr)
		}
		return 0, fmt.Errorf("failed to write download file: %w", closeErr)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return 0, fmt.Errorf("failed to move download into place: %w", err)
	}

	logger.Debug("Download finished.", "bytes", n)
	return n, nil
}

// luaDownload implements launcher.download(url, path). It returns path and
// the number of bytes written.
func (m *Module) luaDownload(L *lua.LState) int {
	url := L.CheckString(1)
	path := L.CheckString(2)

	n, err := m.Download(contextOf(L), url, path)
	if err != nil {
		L.RaiseError("download: %v", err)
		return 0
	}
	L.Push(lua.LString(path))
	L.Push(lua.LNumber(n))
	return 2
}

func contextOf(L *lua.LState) context.Context {
	if ctx := L.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
