package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	tgDelivery "memokeeper/internal/memo/delivery/telegram"
	"memokeeper/internal/middleware"
	pkgLog "memokeeper/pkg/log"
)

// StatsProvider serves the /stats endpoint figures.
type StatsProvider interface {
	ProcessedCount(ctx context.Context) (int64, error)
	Ping(ctx context.Context) error
}

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	gin         *gin.Engine
	l           pkgLog.Logger
	port        int
	mode        string
	environment string

	telegramHandler tgDelivery.Handler
	stats           StatsProvider
	monitoredGroups int
	rateLimitPerMin int
	mw              middleware.Middleware
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      pkgLog.Logger
	Port        int
	Mode        string
	Environment string

	TelegramHandler tgDelivery.Handler
	Stats           StatsProvider
	MonitoredGroups int
	RateLimitPerMin int
}

// New creates a new HTTPServer instance.
func New(logger pkgLog.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:               logger,
		gin:             gin.New(),
		port:            cfg.Port,
		mode:            cfg.Mode,
		environment:     cfg.Environment,
		telegramHandler: cfg.TelegramHandler,
		stats:           cfg.Stats,
		monitoredGroups: cfg.MonitoredGroups,
		rateLimitPerMin: cfg.RateLimitPerMin,
		mw:              middleware.New(logger),
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv *HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	return nil
}

// Run starts the server and blocks until the context is cancelled, then
// shuts down gracefully.
func (srv *HTTPServer) Run(ctx context.Context) error {
	srv.mapHandlers()

	httpSrv := &http.Server{
		Addr:    fmt.Sprintf(":%d", srv.port),
		Handler: srv.gin,
	}

	errCh := make(chan error, 1)
	go func() {
		srv.l.Infof(ctx, "HTTP server listening on :%d", srv.port)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
