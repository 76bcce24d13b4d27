// Package server wires the Libris process: it opens the database, applies
// migrations, builds the services and runs the HTTP (REST, GraphQL, docs) and
// gRPC servers until shutdown.
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

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/libris/internal/dbx"
	"github.com/dmitrijs2005/libris/internal/logging"
	"github.com/dmitrijs2005/libris/internal/server/config"
	"github.com/dmitrijs2005/libris/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/libris/internal/server/rest"
	"github.com/dmitrijs2005/libris/internal/server/services"

	gql "github.com/dmitrijs2005/libris/internal/server/graphql"
	gs "github.com/dmitrijs2005/libris/internal/server/grpc"
)

type App struct {
	config    *config.Config
	logger    logging.Logger
	db        *sql.DB
	lifecycle *services.LifecycleManager
	catalog   *services.CatalogService
}

// NewApp opens the database named by c, migrates it when enabled and builds
// the services. The caller must Close the App.
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	dialect, err := c.Dialect()
	if err != nil {
		return nil, err
	}

	db, err := dbx.Open(ctx, dialect, c.DatabaseDSN, c.Pool())
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewSQLRepositoryManager(dialect)
	if c.RunMigrations {
		if err := rm.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
		logger.Info(ctx, "Migrations applied", "driver", string(dialect))
	}

	opts := []services.Option{
		services.WithLogger(logger.With("module", "services")),
		services.WithLoanPeriod(c.LoanPeriod),
		services.WithOpTimeout(c.OpTimeout),
	}

	return &App{
		config:    c,
		logger:    logger,
		db:        db,
		lifecycle: services.NewLifecycleManager(db, rm, opts...),
		catalog:   services.NewCatalogService(db, rm, opts...),
	}, nil
}

func (app *App) Lifecycle() *services.LifecycleManager { return app.lifecycle }

// Close releases the database handle.
func (app *App) Close() error {
	return app.db.Close()
}

// Handler builds the HTTP surface: REST under /api, GraphQL at /graphql and
// the API docs.
func (app *App) Handler() (http.Handler, error) {
	schema, err := gql.NewSchema(app.lifecycle, app.catalog)
	if err != nil {
		return nil, err
	}
	graphqlHandler := gql.NewHandler(schema, app.logger.With("module", "graphql"))

	restHandler := rest.NewHandler(app.lifecycle, app.catalog, app.logger)
	return rest.NewRouter(restHandler, app.logger, rest.RouterConfig{
		CORSOrigins: app.config.CORSOrigins,
		Mount:       []func(gin.IRoutes){graphqlHandler.Register},
	}), nil
}

func (app *App) initSignalHandler(ctx context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
}

// Run serves HTTP and gRPC until ctx is done, a signal arrives or either
// server fails. A failure of one server stops the other.
func (app *App) Run(ctx context.Context) error {
	ctx, stop := app.initSignalHandler(ctx)
	defer stop()

	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	handler, err := app.Handler()
	if err != nil {
		return err
	}

	httpServer := rest.NewHTTPServer(app.config.HTTPAddr, handler, app.config.ShutdownTimeout, app.logger)
	grpcServer := gs.NewGRPCServer(app.config.GRPCAddr, app.logger, app.lifecycle, app.catalog)

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	run := func(name string, fn func(context.Context) error) {
		defer wg.Done()
		if err := fn(ctx); err != nil {
			app.logger.Error(ctx, "server failed", "server", name, "error", err)
			mu.Lock()
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
			mu.Unlock()
			cancelFunc()
		}
	}

	wg.Add(2)
	go run("http", httpServer.Run)
	go run("grpc", grpcServer.Run)
	wg.Wait()

	app.logger.Info(context.Background(), "App stopped")
	return errors.Join(errs...)
}
