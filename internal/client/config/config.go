package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// Config holds runtime settings for the gophauth CLI.
type Config struct {
	ServerURL      string
	TokenFile      string
	RequestTimeout time.Duration
}

// LoadDefaults populates c with defaults. The token file lives under the
// user's home directory, or the working directory when it is unknown.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:5000"
	c.TokenFile = defaultTokenFile()
	c.RequestTimeout = 10 * time.Second
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".gophauth-token"
	}
	return filepath.Join(home, ".gophauth", "token")
}

// LoadConfig applies defaults, then the JSON file and finally flags from
// args (program name excluded). Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJson(cfg, flagx.ConfigPath(args)); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
