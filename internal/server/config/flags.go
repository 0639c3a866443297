package config

import (
	"flag"
	"io"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// serverFlags lists the flags parsed by parseFlags.
var serverFlags = []string{"-a", "-g", "-d", "-s", "-t", "-b", "-r", "-o", "-l"}

// parseFlags overlays command-line flags onto config.
//
// Supported flags (short forms):
//
//	-a string     HTTP bind address (e.g. ":5000")
//	-g string     gRPC health bind address (e.g. ":50051")
//	-d string     PostgreSQL DSN
//	-s string     token signing secret
//	-t duration   token lifetime (e.g. "24h")
//	-b string     revocation backend: memory, redis or postgres
//	-r string     Redis address
//	-o string     comma separated CORS origins
//	-l string     log level
//
// Args not listed above (-c, positional commands) are filtered out first
// with flagx.FilterArgs.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP listen address")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC health listen address")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	fs.DurationVar(&config.TokenTTL, "t", config.TokenTTL, "token lifetime")
	fs.StringVar(&config.RevocationBackend, "b", config.RevocationBackend, "revocation backend")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "Redis address")
	origins := fs.String("o", strings.Join(config.AllowedOrigins, ","), "allowed CORS origins")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return err
	}

	config.AllowedOrigins = splitList(*origins)
	return nil
}

func splitList(s string) []string {
	out := []string{}
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
