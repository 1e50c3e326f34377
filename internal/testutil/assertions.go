package testutil

import (
	"testing"

	"github.com/specialistvlad/dojolaunch/internal/host"
	"github.com/stretchr/testify/require"
)

// AssertScriptFailed checks that the run stopped with a script error of the
// given kind.
func AssertScriptFailed(t *testing.T, result *ScriptResult, kind host.ScriptKind) *host.ScriptError {
	t.Helper()

	var se *host.ScriptError
	require.ErrorAs(t, result.Err, &se, "expected a script error, got %v", result.Err)
	require.Equal(t, kind, se.Kind, "unexpected failure kind: %v", result.Err)
	return se
}

// AssertExitRequested checks that a script asked the launcher to exit with
// code.
func AssertExitRequested(t *testing.T, result *ScriptResult, code int) *host.ExitRequest {
	t.Helper()

	var req *host.ExitRequest
	require.ErrorAs(t, result.Err, &req, "expected an exit request, got %v", result.Err)
	require.Equal(t, code, req.Code)
	return req
}
