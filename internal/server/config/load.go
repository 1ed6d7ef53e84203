package config

import (
	"fmt"

	"github.com/yndnr/redikv/internal/infra/confloader"
)

// LoadOptions selects the sources Load merges over the defaults.
type LoadOptions struct {
	// File is an optional YAML configuration file.
	File string
	// DotEnv is an optional .env file; a missing file is ignored.
	DotEnv string
	// EnvPrefix overrides confloader.DefaultEnvPrefix.
	EnvPrefix string
	// Overrides are dotted keys from command-line flags.
	Overrides map[string]any
}

// Load builds a verified configuration from defaults, file, environment
// and overrides, in increasing priority.
func Load(opts LoadOptions) (*ServerConfig, error) {
	loaderOpts := []confloader.Option{confloader.WithConfigFile(opts.File)}
	if opts.DotEnv != "" {
		loaderOpts = append(loaderOpts, confloader.WithDotEnv(opts.DotEnv))
	}
	if opts.EnvPrefix != "" {
		loaderOpts = append(loaderOpts, confloader.WithEnvPrefix(opts.EnvPrefix))
	}
	if len(opts.Overrides) > 0 {
		loaderOpts = append(loaderOpts, confloader.WithOverrides(opts.Overrides))
	}

	cfg := Default()
	if err := confloader.NewLoader(loaderOpts...).Load(cfg); err != nil {
		return nil, err
	}

	if err := Verify(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
