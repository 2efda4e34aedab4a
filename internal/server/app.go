// Package server wires the player profile service together: logger, store,
// migrations, session backend, headshot store, services and the session
// sweeper.
package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/playerprofile/internal/clock"
	"github.com/dmitrijs2005/playerprofile/internal/dbx"
	"github.com/dmitrijs2005/playerprofile/internal/logging"
	"github.com/dmitrijs2005/playerprofile/internal/server/blobstore"
	"github.com/dmitrijs2005/playerprofile/internal/server/config"
	"github.com/dmitrijs2005/playerprofile/internal/server/gateway"
	"github.com/dmitrijs2005/playerprofile/internal/server/portal"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/playerprofile/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/playerprofile/internal/server/services"
	"github.com/dmitrijs2005/playerprofile/internal/server/sweeper"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config      *config.Config
	logger      logging.Logger
	gw          *gateway.Gateway
	repomanager repomanager.RepositoryManager
	sweeper     *sweeper.Sweeper
	closers     []func() error
	onStarted   func()

	Accounts *services.AccountService
	Sessions *services.SessionService
	Profiles *services.ProfileService
	Portal   *portal.Portal
}

// NewApp opens the store and builds every component from c. Logs go to
// logOut. Migrations are not applied here; see Migrate.
func NewApp(ctx context.Context, c *config.Config, logOut io.Writer) (_ *App, err error) {
	logger, err := logging.New(c.LogFormat, c.LogLevel, logOut)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	dialect, err := dbx.ParseDialect(c.DatabaseDriver)
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, dialect, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app := &App{
		config:      c,
		logger:      logger,
		gw:          gateway.New(db, c.StoreTimeout),
		repomanager: repomanager.NewSQLRepositoryManager(dialect),
	}
	defer func() {
		if err != nil {
			_ = app.Close()
		}
	}()

	clk := clock.New()

	store, err := app.sessionStore(ctx, clk)
	if err != nil {
		return nil, err
	}

	blobs, err := app.blobStore(ctx)
	if err != nil {
		return nil, err
	}

	app.Accounts = services.NewAccountService(app.gw, app.repomanager, clk, logger)
	app.Sessions = services.NewSessionService(app.Accounts, store, c.SecretKey, c.SessionValidity, clk, logger)
	app.Profiles = services.NewProfileService(app.gw, app.repomanager, clk, logger)
	app.Portal = portal.New(app.Accounts, app.Sessions, app.Profiles, blobs, app.gw, c.HeadshotMaxBytes, logger)

	app.sweeper, err = sweeper.New(c.SweepSchedule, app.Sessions, logger)
	if err != nil {
		return nil, err
	}

	return app, nil
}

func (app *App) sessionStore(ctx context.Context, clk clock.Clock) (services.SessionStore, error) {
	switch app.config.SessionBackend {
	case "redis":
		rc := sessions.DefaultRedisConfig()
		rc.URL = app.config.RedisURL

		client, err := sessions.NewRedisClient(ctx, rc)
		if err != nil {
			return nil, fmt.Errorf("redis init error: %w", err)
		}
		repo := sessions.NewRedisRepository(client, clk.Now)
		app.closers = append(app.closers, repo.Close)
		return services.NewRedisSessionStore(app.gw, repo), nil
	case "", "sql":
		return services.NewSQLSessionStore(app.gw, app.repomanager), nil
	default:
		return nil, fmt.Errorf("unknown session backend %q", app.config.SessionBackend)
	}
}

func (app *App) blobStore(ctx context.Context) (blobstore.Store, error) {
	switch app.config.BlobBackend {
	case "s3":
		return blobstore.NewS3Store(ctx, blobstore.S3Config{
			Region:       app.config.S3Region,
			RootUser:     app.config.S3RootUser,
			RootPassword: app.config.S3RootPassword,
			BaseEndpoint: app.config.S3BaseEndpoint,
			Bucket:       app.config.S3Bucket,
		})
	case "", "fs":
		return blobstore.NewFSStore(app.config.BlobDir, app.config.BlobPublicPrefix)
	default:
		return nil, fmt.Errorf("unknown blob backend %q", app.config.BlobBackend)
	}
}

func (app *App) Logger() logging.Logger {
	return app.logger
}

// Migrate brings the schema up to date.
func (app *App) Migrate(ctx context.Context) error {
	if err := app.repomanager.RunMigrations(ctx, app.gw.DB()); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}
	return nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run migrates the schema, starts the session sweeper and blocks until ctx
// is cancelled or a termination signal arrives. The store is closed on
// return.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "driver", app.config.DatabaseDriver,
		"session_backend", app.config.SessionBackend, "blob_backend", app.config.BlobBackend)

	app.initSignalHandler(cancelFunc)

	if ctx.Err() != nil {
		return app.Close()
	}

	if err := app.Migrate(ctx); err != nil {
		if ctx.Err() != nil {
			// Stopped while still starting up.
			app.logger.Info(context.Background(), "Shutting down...")
			return app.Close()
		}
		app.logger.Error(ctx, err.Error())
		return errors.Join(err, app.Close())
	}

	app.sweeper.Start()
	if app.onStarted != nil {
		app.onStarted()
	}

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	app.sweeper.Stop(stopCtx)

	app.logger.Info(stopCtx, "Shutting down...")
	return app.Close()
}

// Close releases the session backend and the store.
func (app *App) Close() error {
	var errs []error
	for i := len(app.closers) - 1; i >= 0; i-- {
		errs = append(errs, app.closers[i]())
	}
	app.closers = nil
	errs = append(errs, app.gw.Close())
	return errors.Join(errs...)
}
