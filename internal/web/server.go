package web

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"net"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/emiliopalmerini/herdstats/internal/report"
	"github.com/emiliopalmerini/herdstats/internal/shared/middleware"
)

//go:embed static/*
var staticFiles embed.FS

// Pinger reports database reachability for the health check.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Options configures a Server.
type Options struct {
	Addr            string
	ShutdownTimeout time.Duration
	Logger          *zap.Logger
}

type Server struct {
	router          *http.ServeMux
	addr            string
	shutdownTimeout time.Duration
	service         *report.Service
	db              Pinger
	logger          *zap.Logger
}

func NewServer(service *report.Service, db Pinger, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ShutdownTimeout <= 0 {
		opts.ShutdownTimeout = 5 * time.Second
	}
	s := &Server{
		router:          http.NewServeMux(),
		addr:            opts.Addr,
		shutdownTimeout: opts.ShutdownTimeout,
		service:         service,
		db:              db,
		logger:          opts.Logger,
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	// Static files
	staticFS, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to create static filesystem: %v", err))
	}
	s.router.Handle("GET /static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))

	s.router.HandleFunc("GET /health", s.handleHealth)

	// Pages
	s.router.HandleFunc("GET /{$}", s.handleIndex)
	for _, kind := range report.Kinds {
		s.router.HandleFunc("GET /"+string(kind), s.handlePage(kind))
	}

	// Single charts
	s.router.HandleFunc("GET /charts/{page}/{file}", s.handleChart)

	// JSON API
	s.router.HandleFunc("GET /api/pages/{page}", s.handleAPIPage)
	s.router.HandleFunc("GET /api/lookups", s.handleAPILookups)
}

// Handler returns the router wrapped in the request middleware.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s.router,
		middleware.RequestID,
		middleware.HTMX,
		middleware.Logging(s.logger),
	)
}

// Start listens on the configured address and serves until ctx is done.
func (s *Server) Start(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve serves on ln until ctx is done, then drains in-flight requests
// for at most the shutdown timeout.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	server := &http.Server{
		Handler:      s.Handler(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	s.logger.Info("starting server", zap.String("addr", ln.Addr().String()))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("server shutdown", zap.Error(err))
		}
	}()

	err := server.Serve(ln)
	if errors.Is(err, http.ErrServerClosed) {
		<-done
		s.logger.Info("server stopped")
		return nil
	}
	cancel()
	<-done
	return err
}
