// Package server wires configuration, storage, the account service and the
// HTTP and gRPC listeners into a runnable application, and handles graceful
// shutdown.
package server

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/dmitrijs2005/gophauth/internal/server/auth"
	"github.com/dmitrijs2005/gophauth/internal/server/config"
	"github.com/dmitrijs2005/gophauth/internal/server/httpapi"
	"github.com/dmitrijs2005/gophauth/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/gophauth/internal/server/revocation"
	"github.com/dmitrijs2005/gophauth/internal/server/services"

	gs "github.com/dmitrijs2005/gophauth/internal/server/grpc"
)

// sqlOpen is a seam for tests.
var sqlOpen = sql.Open

// newRedisClient is a seam for tests.
var newRedisClient = revocation.NewRedisClient

type App struct {
	config   *config.Config
	logger   logging.Logger
	db       *sql.DB
	repos    repomanager.RepositoryManager
	registry revocation.Registry
	store    *revocation.StoreRegistry
	redis    *redis.Client
	accounts *services.AccountService
	handler  http.Handler
	grpc     *gs.GRPCServer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {

	db, err := sqlOpen("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config: c,
		logger: logger,
		db:     db,
		repos:  repomanager.NewPostgresRepositoryManager(),
	}

	if err := app.initRegistry(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	hasher, err := auth.NewPasswordHasher(c.BcryptCost)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	if c.SecretKey == config.DefaultSecretKey {
		logger.Warn(ctx, "Using the built-in development secret key; tokens can be forged until GOPHAUTH_SECRET_KEY is set")
	}

	secret := []byte(c.SecretKey)

	issuer, err := auth.NewTokenIssuer(secret, c.TokenTTL, time.Now)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	validator, err := auth.NewSessionValidator(secret, app.registry, time.Now)
	if err != nil {
		_ = app.Close()
		return nil, err
	}

	app.accounts = services.NewAccountService(db, app.repos, hasher, issuer, validator, app.registry, logger)
	app.handler = httpapi.NewRouter(app.accounts, logger, httpapi.Options{AllowedOrigins: c.AllowedOrigins})
	app.grpc = gs.NewGRPCServer(c.GRPCAddr, logger)

	return app, nil
}

func (app *App) initRegistry(ctx context.Context) error {
	switch app.config.RevocationBackend {
	case revocation.BackendRedis:
		client, err := newRedisClient(ctx, app.config.RedisAddr, app.config.RedisPassword, app.config.RedisDB)
		if err != nil {
			return fmt.Errorf("redis init error: %w", err)
		}
		app.redis = client
		app.registry = revocation.NewRedisRegistry(client, revocation.DefaultRedisPrefix)
	case revocation.BackendPostgres:
		app.store = revocation.NewStoreRegistry(app.repos.RevokedTokens(app.db))
		app.registry = app.store
	case revocation.BackendMemory:
		app.registry = revocation.NewMemoryRegistry()
	default:
		return revocation.ValidateBackend(app.config.RevocationBackend)
	}

	app.logger.Info(ctx, "Revocation registry ready", "backend", app.config.RevocationBackend)
	return nil
}

// Handler is the HTTP handler serving the API.
func (app *App) Handler() http.Handler {
	return app.handler
}

// Migrate applies pending schema migrations.
func (app *App) Migrate(ctx context.Context) error {
	app.logger.Info(ctx, "Running migrations...")
	if err := app.repos.RunMigrations(ctx, app.db); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

// checkDatabase pings the database and reports the result as the gRPC
// health status of the accounts service.
func (app *App) checkDatabase(ctx context.Context) {
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	err := app.db.PingContext(pingCtx)
	serving := err == nil

	if serving != app.grpc.Serving() {
		if err != nil {
			app.logger.Warn(ctx, "Database unreachable, reporting NOT_SERVING", "error", err)
		} else {
			app.logger.Info(ctx, "Database reachable, reporting SERVING")
		}
	}
	app.grpc.SetServing(serving)
}

func (app *App) runHealthMonitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			app.checkDatabase(ctx)
		}
	}
}

func (app *App) initSignalHandler(ctx context.Context, cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		defer signal.Stop(sigs)
		select {
		case s := <-sigs:
			app.logger.Info(ctx, "Received signal", "signal", s.String())
			cancelFunc()
		case <-ctx.Done():
		}
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	srv := &http.Server{
		Addr:              app.config.HTTPAddr,
		Handler:           app.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		app.logger.Info(ctx, "Starting HTTP server", "address", app.config.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			cancelFunc()
			return err
		}
		return nil
	case <-ctx.Done():
	}

	app.logger.Info(ctx, "Stopping HTTP server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), app.config.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}

func (app *App) startGRPCServer(ctx context.Context, cancelFunc context.CancelFunc) error {
	if err := app.grpc.Run(ctx); err != nil {
		cancelFunc()
		return err
	}
	return nil
}

// Run serves until ctx is cancelled, a signal arrives or a listener fails.
// Resources are released before it returns.
func (app *App) Run(ctx context.Context) error {

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(ctx, cancelFunc)

	if app.config.AutoMigrate {
		if err := app.Migrate(ctx); err != nil {
			_ = app.Close()
			return err
		}
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	collect := func(err error) {
		if err != nil {
			app.logger.Error(ctx, err.Error())
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}
	}

	wg.Add(2)
	go func() {
		defer wg.Done()
		collect(app.startHTTPServer(ctx, cancelFunc))
	}()
	go func() {
		defer wg.Done()
		collect(app.startGRPCServer(ctx, cancelFunc))
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.runHealthMonitor(ctx, app.config.HealthCheckInterval)
	}()

	if app.store != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			app.store.RunJanitor(ctx, app.config.RevocationPurgeInterval, app.logger.With("module", "revocation_janitor"))
		}()
	}

	wg.Wait()

	collect(app.Close())
	app.logger.Info(context.Background(), "App stopped")

	return errors.Join(errs...)
}

// Close releases the database and Redis connections.
func (app *App) Close() error {
	var errs []error
	if app.redis != nil {
		errs = append(errs, app.redis.Close())
	}
	if app.db != nil {
		errs = append(errs, app.db.Close())
	}
	return errors.Join(errs...)
}
