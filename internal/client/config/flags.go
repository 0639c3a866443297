package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// Flags lists the flags that take a value, including the config file flags.
// The CLI uses it to find positional arguments.
var Flags = []string{"-c", "-config", "--config", "-s", "-f", "-t"}

// parseFlags populates selected Config fields from args. Unknown arguments
// are filtered out first with flagx.FilterArgs.
func parseFlags(cfg *Config, args []string) error {
	fs := flag.NewFlagSet("client", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "s", cfg.ServerURL, "server base URL")
	fs.StringVar(&cfg.TokenFile, "f", cfg.TokenFile, "session token file")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")

	return fs.Parse(flagx.FilterArgs(args, []string{"-s", "-f", "-t"}))
}
