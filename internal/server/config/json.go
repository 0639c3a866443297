package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Duration accepts either a Go duration string ("15m") or an integer number
// of nanoseconds in JSON.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	switch value := v.(type) {
	case float64:
		d.Duration = time.Duration(value)
		return nil
	case string:
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		d.Duration = parsed
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

// JsonConfig is the on-disk form of Config. Every field is optional; absent
// fields keep the value set by earlier sources.
type JsonConfig struct {
	HTTPAddr                *string   `json:"http_addr"`
	GRPCAddr                *string   `json:"grpc_addr"`
	DatabaseDSN             *string   `json:"database_dsn"`
	SecretKey               *string   `json:"secret_key"`
	TokenTTL                *Duration `json:"token_ttl"`
	BcryptCost              *int      `json:"bcrypt_cost"`
	RevocationBackend       *string   `json:"revocation_backend"`
	RedisAddr               *string   `json:"redis_addr"`
	RedisPassword           *string   `json:"redis_password"`
	RedisDB                 *int      `json:"redis_db"`
	RevocationPurgeInterval *Duration `json:"revocation_purge_interval"`
	AllowedOrigins          []string  `json:"allowed_origins"`
	AutoMigrate             *bool     `json:"auto_migrate"`
	LogLevel                *string   `json:"log_level"`
	ShutdownTimeout         *Duration `json:"shutdown_timeout"`
	HealthCheckInterval     *Duration `json:"health_check_interval"`
}

// parseJson loads path into config. An empty path is a no-op.
func parseJson(config *Config, path string) error {

	// nothing to load
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setIf(&config.HTTPAddr, c.HTTPAddr)
	setIf(&config.GRPCAddr, c.GRPCAddr)
	setIf(&config.DatabaseDSN, c.DatabaseDSN)
	setIf(&config.SecretKey, c.SecretKey)
	setDuration(&config.TokenTTL, c.TokenTTL)
	setIf(&config.BcryptCost, c.BcryptCost)
	setIf(&config.RevocationBackend, c.RevocationBackend)
	setIf(&config.RedisAddr, c.RedisAddr)
	setIf(&config.RedisPassword, c.RedisPassword)
	setIf(&config.RedisDB, c.RedisDB)
	setDuration(&config.RevocationPurgeInterval, c.RevocationPurgeInterval)
	if c.AllowedOrigins != nil {
		config.AllowedOrigins = c.AllowedOrigins
	}
	setIf(&config.AutoMigrate, c.AutoMigrate)
	setIf(&config.LogLevel, c.LogLevel)
	setDuration(&config.ShutdownTimeout, c.ShutdownTimeout)
	setDuration(&config.HealthCheckInterval, c.HealthCheckInterval)

	return nil
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *Duration) {
	if src != nil {
		*dst = src.Duration
	}
}
