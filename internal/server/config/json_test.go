package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJson(t *testing.T) {
	dir := t.TempDir()

	t.Run("loads from json", func(t *testing.T) {
		path := writeTempJSON(t, dir, "full.json", map[string]any{
			"http_addr":                 "127.0.0.1:8080",
			"grpc_addr":                 "127.0.0.1:9090",
			"database_dsn":              "postgres://db",
			"secret_key":                "my_secret_key",
			"token_ttl":                 "2h",
			"bcrypt_cost":               12,
			"revocation_backend":        "redis",
			"redis_addr":                "redis:6379",
			"redis_password":            "pw",
			"redis_db":                  2,
			"revocation_purge_interval": 60000000000,
			"allowed_origins":           []string{"https://app.example"},
			"auto_migrate":              false,
			"log_level":                 "debug",
			"shutdown_timeout":          "3s",
			"health_check_interval":     "45s",
		})

		cfg := &Config{}
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "127.0.0.1:8080", cfg.HTTPAddr)
		assert.Equal(t, "127.0.0.1:9090", cfg.GRPCAddr)
		assert.Equal(t, "postgres://db", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
		assert.Equal(t, 12, cfg.BcryptCost)
		assert.Equal(t, "redis", cfg.RevocationBackend)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, "pw", cfg.RedisPassword)
		assert.Equal(t, 2, cfg.RedisDB)
		assert.Equal(t, time.Minute, cfg.RevocationPurgeInterval)
		assert.Equal(t, []string{"https://app.example"}, cfg.AllowedOrigins)
		assert.False(t, cfg.AutoMigrate)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
		assert.Equal(t, 45*time.Second, cfg.HealthCheckInterval)
	})

	t.Run("absent fields keep earlier values", func(t *testing.T) {
		path := writeTempJSON(t, dir, "partial.json", map[string]any{"log_level": "warn"})

		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJson(cfg, path))

		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, ":5000", cfg.HTTPAddr)
		assert.True(t, cfg.AutoMigrate)
	})

	t.Run("no path → no changes", func(t *testing.T) {
		cfg := &Config{HTTPAddr: "defaults:1234"}
		require.NoError(t, parseJson(cfg, ""))
		assert.Equal(t, "defaults:1234", cfg.HTTPAddr)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))

		assert.Error(t, parseJson(&Config{}, bad))
	})

	t.Run("invalid duration → error", func(t *testing.T) {
		path := writeTempJSON(t, dir, "dur.json", map[string]any{"token_ttl": "soon"})
		assert.Error(t, parseJson(&Config{}, path))

		path = writeTempJSON(t, dir, "dur2.json", map[string]any{"token_ttl": true})
		assert.Error(t, parseJson(&Config{}, path))
	})
}
