package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/gophauth/internal/client/client"
	"github.com/dmitrijs2005/gophauth/internal/client/config"
	"github.com/dmitrijs2005/gophauth/internal/flagx"
)

// API is the server surface used by the commands.
type API interface {
	Register(ctx context.Context, name, email, password string) (*client.AuthResult, error)
	Login(ctx context.Context, email, password string) (*client.AuthResult, error)
	Logout(ctx context.Context, token string) error
	Verify(ctx context.Context, token string) (*client.User, error)
	Profile(ctx context.Context, token string) (*client.User, error)
	UpdateProfile(ctx context.Context, token string, name, email *string) (*client.User, error)
	Ping(ctx context.Context) (string, error)
}

type App struct {
	config *config.Config
	api    API
	tokens *TokenStore
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		api:    client.New(c.ServerURL, c.RequestTimeout),
		tokens: NewTokenStore(c.TokenFile),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// Run executes the command named by the first positional argument in args.
func (a *App) Run(ctx context.Context, args []string) error {
	positional := flagx.Positional(args, config.Flags)
	if len(positional) == 0 {
		a.help()
		return nil
	}

	switch cmd := positional[0]; cmd {
	case "help":
		a.help()
		return nil
	case "register":
		return a.Register(ctx)
	case "login":
		return a.Login(ctx)
	case "logout":
		return a.Logout(ctx)
	case "whoami", "verify":
		return a.WhoAmI(ctx)
	case "profile":
		return a.Profile(ctx)
	case "update":
		return a.Update(ctx)
	case "ping":
		return a.Ping(ctx)
	default:
		a.help()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *App) help() {
	fmt.Fprintln(a.out, "Usage: client [-s server-url] [-f token-file] [-c config.json] <command>")
	fmt.Fprintln(a.out, "Available commands: register, login, logout, whoami, profile, update, ping")
}
