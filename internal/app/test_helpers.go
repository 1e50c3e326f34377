package app

import (
	"os"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/specialistvlad/dojolaunch/internal/registry"
	"github.com/specialistvlad/dojolaunch/internal/testutil"
	"github.com/stretchr/testify/require"
)

// TestOutput captures what a test App printed and logged.
type TestOutput struct {
	Stdout *testutil.SafeBuffer
	Log    *testutil.SafeBuffer
}

// SetupAppTest creates a new App over an in-memory bundle for system
// testing. Scripts read stdin and the data directory is a fresh temp dir.
func SetupAppTest(t *testing.T, files map[string]string, variant, stdin string, modules ...registry.Module) (*App, *TestOutput) {
	t.Helper()

	bundle := fstest.MapFS{}
	for name, body := range files {
		bundle[name] = &fstest.MapFile{Data: []byte(body)}
	}

	cfg, err := NewConfig(Config{
		Variant:   variant,
		LogLevel:  "debug",
		LogFormat: "text",
		DataDir:   t.TempDir(),
	})
	require.NoError(t, err)

	output := &TestOutput{Stdout: &testutil.SafeBuffer{}, Log: &testutil.SafeBuffer{}}
	testApp, err := New(cfg, bundle,
		WithStdio(strings.NewReader(stdin), output.Stdout),
		WithLogOutput(output.Log),
		WithModules(modules...),
	)
	require.NoError(t, err)

	t.Cleanup(func() {
		if os.Getenv("DOJO_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), output.Log.String())
		}
	})

	return testApp, output
}
