// Package server wires the softhub backend: configuration, storage, the
// optional S3 mirror, SQS notifications and the HTTP server, and runs it until a shutdown
// signal arrives.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/dmitrijs2005/softhub/internal/logging"
	"github.com/dmitrijs2005/softhub/internal/server/config"
	"github.com/dmitrijs2005/softhub/internal/server/httpapi"
	"github.com/dmitrijs2005/softhub/internal/server/mirror"
	"github.com/dmitrijs2005/softhub/internal/server/notify"
	"github.com/dmitrijs2005/softhub/internal/server/repositories/metadata"
	"github.com/dmitrijs2005/softhub/internal/server/repositories/payloads"
	"github.com/dmitrijs2005/softhub/internal/server/services"
)

type App struct {
	config          *config.Config
	logger          logging.Logger
	softwareService *services.SoftwareService
}

// swapped in tests
var (
	newS3Mirror = func(ctx context.Context, c *config.Config) (mirror.Mirror, error) {
		return mirror.NewS3Mirror(ctx, c)
	}
	newSQSNotifier = func(ctx context.Context, c *config.Config) (notify.Notifier, error) {
		return notify.NewSQSNotifier(ctx, c)
	}
)

// NewApp validates c, prepares the data directories and builds the
// services. It fails when the configuration is unusable.
func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, slog.LevelInfo)
	return newApp(ctx, c, logger)
}

func newApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Prepare(); err != nil {
		return nil, fmt.Errorf("prepare storage: %w", err)
	}

	if !c.UploadTokenConfigured() {
		logger.Error(ctx, "UPLOAD_TOKEN is not set, all uploads will be rejected", "critical", true)
	}

	var m mirror.Mirror
	if c.MirrorEnabled() {
		s3m, err := newS3Mirror(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("s3 mirror init error: %w", err)
		}
		m = s3m
		logger.Info(ctx, "S3 mirror enabled", "bucket", c.S3Bucket, "prefix", c.S3Prefix)
	}

	var n notify.Notifier
	if c.NotifyEnabled() {
		sn, err := newSQSNotifier(ctx, c)
		if err != nil {
			return nil, fmt.Errorf("sqs notifier init error: %w", err)
		}
		n = sn
		logger.Info(ctx, "SQS notifications enabled", "queue_url", c.SQSQueueURL)
	}

	repo := metadata.NewJSONRepository(c.MetadataFile)
	store := payloads.NewStore(c.UploadsDir)
	svc := services.NewSoftwareService(c, repo, store, m, n, logger)

	logger.Info(ctx, "storage ready", "uploads_dir", c.UploadsDir, "metadata_file", c.MetadataFile)

	return &App{config: c, logger: logger, softwareService: svc}, nil
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
	s := httpapi.NewHTTPServer(app.config.Address, app.config.FrontendDir, app.config.ShutdownTimeout, app.logger, app.softwareService)

	if err := s.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

// Run blocks until ctx is cancelled or a termination signal arrives.
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

	app.logger.Info(ctx, "App stopped")
}
