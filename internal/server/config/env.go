package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv overlays the GOPHAUTH_* variables onto config. Unset variables
// leave the current value untouched. environ replaces the process
// environment when non-nil.
func parseEnv(config *Config, environ map[string]string) error {
	if err := env.ParseWithOptions(config, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}
