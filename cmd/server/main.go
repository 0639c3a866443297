// Command server runs the gophauth account service.
//
// Usage:
//
//	server [flags]           serve HTTP and gRPC health
//	server [flags] migrate   apply database migrations and exit
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/gophauth/internal/flagx"
	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
)

// valueFlags are the flags that consume the following argument.
var valueFlags = []string{"-c", "-config", "--config", "-a", "-g", "-d", "-s", "-t", "-b", "-r", "-o", "-l"}

func main() {
	if err := run(context.Background(), os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string) error {
	cfg, err := config.LoadConfig(args)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	logger := logging.NewJSONLogger(os.Stdout, cfg.LogLevel)

	app, err := server.NewApp(ctx, cfg, logger)
	if err != nil {
		return err
	}

	cmd := flagx.Positional(args, valueFlags)
	if len(cmd) > 0 {
		switch cmd[0] {
		case "migrate":
			err := app.Migrate(ctx)
			if cerr := app.Close(); err == nil {
				err = cerr
			}
			if err == nil {
				logger.Info(ctx, "Migrations applied")
			}
			return err
		default:
			_ = app.Close()
			return fmt.Errorf("unknown command %q", cmd[0])
		}
	}

	return app.Run(ctx)
}
