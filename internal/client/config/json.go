package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent fields
// leave the current values alone.
type JsonConfig struct {
	ServerURL      *string `json:"server_url"`
	TokenFile      *string `json:"token_file"`
	RequestTimeout *string `json:"request_timeout"`
}

// parseJson overlays cfg with values loaded from path. An empty path is a
// no-op.
func parseJson(cfg *Config, path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if jc.ServerURL != nil {
		cfg.ServerURL = *jc.ServerURL
	}
	if jc.TokenFile != nil {
		cfg.TokenFile = *jc.TokenFile
	}
	if jc.RequestTimeout != nil {
		d, err := time.ParseDuration(*jc.RequestTimeout)
		if err != nil {
			return fmt.Errorf("request_timeout: %w", err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
