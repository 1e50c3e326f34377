package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/dojolaunch/internal/app"
	"github.com/specialistvlad/dojolaunch/internal/host"
	"github.com/specialistvlad/dojolaunch/internal/manifest"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the launcher reads.
const EnvPrefix = "DOJO"

// ExitCodeConfig is the status for configuration errors.
const ExitCodeConfig = 2

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

var configKeys = []string{"variant", "log_level", "log_format", "data_dir", "report_url"}

// DefaultDataDir is the data directory used when none is configured.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "coderdojo"
	}
	return filepath.Join(home, "coderdojo")
}

// Load builds the launcher configuration. Sources, lowest precedence first:
// defaults, the config file, DOJO_* environment variables and, when flags
// is not nil, flags whose names match a key with dashes for underscores.
// configFile overrides DOJO_CONFIG. Every failure is an *ExitError with
// ExitCodeConfig.
func Load(configFile string, flags *pflag.FlagSet) (*app.Config, error) {
	slog.Debug("Configuration loading started.")
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("variant", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("report_url", "")
	v.SetDefault("config", "")

	if flags != nil {
		for _, key := range configKeys {
			if f := flags.Lookup(strings.ReplaceAll(key, "_", "-")); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, &ExitError{Code: ExitCodeConfig, Message: "failed to bind flag", Err: err}
				}
			}
		}
	}

	if configFile == "" {
		configFile = v.GetString("config")
	}
	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, &ExitError{Code: ExitCodeConfig, Message: fmt.Sprintf("failed to read config file '%s'", configFile), Err: err}
		}
		slog.Debug("Config file loaded.", "path", configFile)
	}

	var raw app.Config
	if err := v.Unmarshal(&raw); err != nil {
		return nil, &ExitError{Code: ExitCodeConfig, Message: "failed to decode configuration", Err: err}
	}
	raw.LogLevel = strings.ToLower(raw.LogLevel)
	raw.LogFormat = strings.ToLower(raw.LogFormat)

	cfg, err := app.NewConfig(raw)
	if err != nil {
		return nil, &ExitError{Code: ExitCodeConfig, Message: "invalid configuration", Err: err}
	}
	slog.Debug("Configuration loaded.", "variant", cfg.Variant, "data_dir", cfg.DataDir)
	return cfg, nil
}

// ExitCode maps a run outcome to a process exit status: 0 for success, the
// requested status for a script exit, the carried code for an *ExitError,
// ExitCodeConfig for an unknown variant and 1 for anything else. Non-zero
// statuses outside 1..255 become 1 so they cannot wrap to success.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return clampStatus(exitErr.Code)
	}
	var uv *manifest.UnknownVariantError
	if errors.As(err, &uv) {
		return ExitCodeConfig
	}
	var req *host.ExitRequest
	if errors.As(err, &req) {
		return clampStatus(req.Code)
	}
	return 1
}

func clampStatus(code int) int {
	if code == 0 || (code >= 1 && code <= 255) {
		return code
	}
	return 1
}

// Report writes a message for err to w and returns its exit status.
func Report(w io.Writer, err error) int {
	code := ExitCode(err)
	if err == nil {
		return code
	}

	var req *host.ExitRequest
	if errors.As(err, &req) {
		if req.Message != "" {
			fmt.Fprintln(w, req.Message)
		}
		return code
	}
	fmt.Fprintf(w, "Error: %v\n", err)
	return code
}
