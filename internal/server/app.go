// Package server wires configuration, storage, services and the HTTP
// transport into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/OscarDom1/community-resource-platform/internal/logging"
	"github.com/OscarDom1/community-resource-platform/internal/server/auth"
	"github.com/OscarDom1/community-resource-platform/internal/server/config"
	"github.com/OscarDom1/community-resource-platform/internal/server/httpserver"
	"github.com/OscarDom1/community-resource-platform/internal/server/repositories/repomanager"
	"github.com/OscarDom1/community-resource-platform/internal/server/services"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpserver.HTTPServer
}

// openDB is a seam for tests.
var openDB = repomanager.Open

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, logging.ParseLevel(c.LogLevel))
	logger.Info(ctx, "Loaded config", "config", c)

	db, err := openDB(ctx, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	app, err := newApp(ctx, c, logger, db, repomanager.NewPostgresRepositoryManager())
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return app, nil
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger, db *sql.DB, rm repomanager.RepositoryManager) (*App, error) {
	if err := rm.RunMigrations(ctx, db); err != nil {
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	issuer, err := auth.NewTokenIssuer(auth.TokenConfig{
		Secret:   []byte(c.SecretKey),
		Validity: c.TokenValidityDuration,
	})
	if err != nil {
		return nil, fmt.Errorf("token issuer error: %w", err)
	}

	us, err := services.NewUserService(db, rm, issuer, c.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("user service error: %w", err)
	}
	rs := services.NewResourceService(db, rm)

	srv := httpserver.NewHTTPServer(c.EndpointAddr, logger, us, rs, issuer, c.ShutdownTimeout)

	return &App{config: c, logger: logger, db: db, server: srv}, nil
}

// Run serves until ctx is cancelled or SIGINT/SIGTERM/SIGQUIT arrives, then
// shuts the server down and closes the database.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	app.logger.Info(ctx, "Starting app...")

	err := app.server.Run(ctx)

	if cerr := app.db.Close(); cerr != nil {
		app.logger.Error(ctx, "db close error", "error", cerr)
	}
	app.logger.Info(ctx, "App stopped")

	return err
}
