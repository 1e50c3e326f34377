// Package testutil runs scripts against a real host for module and
// integration tests.
package testutil

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/dojolaunch/internal/host"
	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/resource"
	"github.com/stretchr/testify/require"
)

// SafeBuffer is a thread-safe buffer for capturing output in tests.
type SafeBuffer struct {
	b  bytes.Buffer
	mu sync.Mutex
}

// Write implements the io.Writer interface for SafeBuffer.
func (b *SafeBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.Write(p)
}

// String implements the fmt.Stringer interface for SafeBuffer.
func (b *SafeBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.b.String()
}

// ScriptResult holds the outcome of a harness run.
type ScriptResult struct {
	// Output is everything the scripts printed.
	Output string
	// LogOutput is the host's debug log.
	LogOutput string
	// Err is the first script failure, if any.
	Err error
	// Ran lists the scripts that completed without error.
	Ran []string
}

// Harness describes a bundle of scripts and the modules they can call.
type Harness struct {
	Files   map[string]string
	Modules []registry.Module
	Args    []string
	Stdin   string
}

// Bundle returns the harness files as an in-memory filesystem.
func (h Harness) Bundle() fstest.MapFS {
	bundle := fstest.MapFS{}
	for name, body := range h.Files {
		bundle[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return bundle
}

// Run executes the named scripts in order on one host, stopping at the
// first failure, and always terminates the runtime.
func (h Harness) Run(t *testing.T, order ...string) *ScriptResult {
	t.Helper()

	out := &SafeBuffer{}
	logs := &SafeBuffer{}
	logger := slog.New(slog.NewTextHandler(logs, &slog.HandlerOptions{Level: slog.LevelDebug}))

	hst := host.New(
		host.NewBundleSource(resource.NewReader(h.Bundle())),
		host.WithRegistry(registry.New(h.Modules...)),
		host.WithLogger(logger),
		host.WithStdio(strings.NewReader(h.Stdin), out),
	)
	_, err := hst.Initialize(h.Args)
	require.NoError(t, err, "host initialization failed")

	result := &ScriptResult{}
	for _, name := range order {
		if err := hst.Run(context.Background(), name); err != nil {
			result.Err = err
			break
		}
		result.Ran = append(result.Ran, name)
	}
	require.NoError(t, hst.Terminate())

	result.Output = out.String()
	result.LogOutput = logs.String()
	return result
}

// RunScript executes a single script body with the given modules.
func RunScript(t *testing.T, body string, modules ...registry.Module) *ScriptResult {
	t.Helper()
	h := Harness{Files: map[string]string{"main.lua": body}, Modules: modules}
	return h.Run(t, "main.lua")
}
