// Package httpapi exposes the software catalogue over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/softhub/internal/logging"
	"github.com/dmitrijs2005/softhub/internal/server/models"
)

// SoftwareService is the part of the software workflow the HTTP layer needs.
type SoftwareService interface {
	Authorize(ctx context.Context, token string) error
	StorePayload(ctx context.Context, originalFilename string, r io.Reader) (*models.StoredPayload, error)
	Discard(ctx context.Context, p *models.StoredPayload)
	Register(ctx context.Context, p *models.StoredPayload, meta models.SoftwareMeta) (*models.SoftwareRecord, error)
	List(ctx context.Context) ([]models.SoftwareRecord, error)
	Resolve(ctx context.Context, serverFilename string) (*models.Download, error)
}

type HTTPServer struct {
	address         string
	frontendDir     string
	shutdownTimeout time.Duration
	software        SoftwareService
	logger          logging.Logger
	engine          *gin.Engine
}

func NewHTTPServer(address, frontendDir string, shutdownTimeout time.Duration, l logging.Logger, svc SoftwareService) *HTTPServer {
	s := &HTTPServer{
		address:         address,
		frontendDir:     frontendDir,
		shutdownTimeout: shutdownTimeout,
		software:        svc,
		logger:          l.With("module", "http_server"),
	}
	s.engine = s.setupRouter()
	return s
}

// Handler returns the configured gin engine.
func (s *HTTPServer) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully, waiting
// at most the shutdown timeout for in-flight requests.
func (s *HTTPServer) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}
	return s.serve(ctx, listen)
}

func (s *HTTPServer) serve(ctx context.Context, listen net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}
