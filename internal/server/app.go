// Package server initializes and runs the caet server: configuration,
// logging, the relational store and its migrations, the upload store, and
// the HTTP API with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/caet/internal/dbx"
	"github.com/dmitrijs2005/caet/internal/logging"
	"github.com/dmitrijs2005/caet/internal/server/config"
	"github.com/dmitrijs2005/caet/internal/server/httpapi"
	"github.com/dmitrijs2005/caet/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/caet/internal/server/services"
	"github.com/dmitrijs2005/caet/internal/server/uploads"
)

type App struct {
	config      *config.Config
	logger      logging.Logger
	db          *sql.DB
	userService *services.UserService
	fileService *services.FileService
}

// logOutput is where the JSON log stream goes; a seam for tests.
var logOutput io.Writer = os.Stdout

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger, err := logging.NewJSONLogger(logOutput, c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("logger init error: %w", err)
	}

	if c.SecretKey == "secretKey" || c.CSRFToken == "mock-csrf-token" {
		logger.Warn(ctx, "running with public default secrets; override -s and -f outside development")
	}

	db, err := dbx.Open(ctx, c.DatabaseDriver, c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm, err := repomanager.NewRepositoryManager(c.DatabaseDriver)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations error: %w", err)
	}

	store, err := newUploadStore(ctx, c)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("upload store init error: %w", err)
	}

	us := services.NewUserService(db, rm, c, logger)
	fs := services.NewFileService(store, logger)

	return &App{config: c, logger: logger, db: db, userService: us, fileService: fs}, nil
}

func newUploadStore(ctx context.Context, c *config.Config) (uploads.Store, error) {
	switch c.UploadBackend {
	case config.UploadBackendDir:
		return uploads.NewDirStore(c.UploadDir)
	case config.UploadBackendS3:
		client, err := uploads.NewS3Client(ctx, c)
		if err != nil {
			return nil, err
		}
		return uploads.NewS3Store(client, c.S3Bucket), nil
	default:
		return nil, fmt.Errorf("unsupported upload backend %q", c.UploadBackend)
	}
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

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	s := httpapi.NewHTTPServer(app.config.EndpointAddrHTTP, app.logger, app.userService, app.fileService, app.db, app.config.CSRFToken)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run serves until a termination signal arrives or ctx is cancelled, then
// closes the database.
func (app *App) Run(ctx context.Context) {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error(ctx, "db close error", "error", err)
	}
	app.logger.Info(ctx, "App stopped")
}
