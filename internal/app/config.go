package app

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Variant selects the script sequence from the launcher manifest. Empty
	// means the manifest's default variant.
	Variant string `mapstructure:"variant" json:"variant,omitempty" jsonschema:"description=Deployment variant to run; empty selects the manifest default"`

	LogLevel  string `mapstructure:"log_level" json:"log_level" validate:"oneof=debug info warn error" jsonschema:"enum=debug,enum=info,enum=warn,enum=error,default=warn"`
	LogFormat string `mapstructure:"log_format" json:"log_format" validate:"oneof=text json" jsonschema:"enum=text,enum=json,default=text"`

	// DataDir holds the user settings file and anything scripts install.
	DataDir string `mapstructure:"data_dir" json:"data_dir" validate:"required" jsonschema:"description=Directory for user settings and installed files"`

	// ReportURL is the socket.io endpoint of a classroom dashboard.
	ReportURL string `mapstructure:"report_url" json:"report_url,omitempty" validate:"omitempty,url" jsonschema:"description=socket.io URL that receives launcher events; empty disables reporting"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// NewConfig validates cfg and returns a copy of it.
func NewConfig(cfg Config) (*Config, error) {
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}
