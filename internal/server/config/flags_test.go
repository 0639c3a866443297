package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    func(*Config)
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{
				"-a", "127.0.0.1:8080", "-g", "127.0.0.1:9090", "-d", "db", "-s", "secret",
				"-t", "90m", "-b", "redis", "-r", "redis:6379", "-o", "https://a.example, https://b.example", "-l", "debug",
			},
			want: func(c *Config) {
				c.HTTPAddr = "127.0.0.1:8080"
				c.GRPCAddr = "127.0.0.1:9090"
				c.DatabaseDSN = "db"
				c.SecretKey = "secret"
				c.TokenTTL = 90 * time.Minute
				c.RevocationBackend = "redis"
				c.RedisAddr = "redis:6379"
				c.AllowedOrigins = []string{"https://a.example", "https://b.example"}
				c.LogLevel = "debug"
			},
		},
		{
			name: "unrelated args are ignored",
			args: []string{"migrate", "-c", "cfg.json", "-x", "1"},
			want: func(c *Config) {},
		},
		{
			name:    "bad duration",
			args:    []string{"-t", "soon"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			cfg.LoadDefaults()

			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			want := &Config{}
			want.LoadDefaults()
			tt.want(want)
			assert.Empty(t, cmp.Diff(want, cfg))
		})
	}
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a, ,b ,"))
	assert.Equal(t, []string{}, splitList(""))
}
