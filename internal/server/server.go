// Package server exposes the generators, the command catalog and the
// history tracker over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/trly/dockr/internal/catalog"
	"github.com/trly/dockr/internal/compose"
	"github.com/trly/dockr/internal/dockerfile"
	"github.com/trly/dockr/internal/history"
	"github.com/trly/dockr/internal/log"
)

// maxBodyBytes caps request bodies.
const maxBodyBytes = 1 << 20

// Options configures a Server. Nil fields fall back to built-in defaults.
type Options struct {
	Logger        log.Logger
	GeneratorName string
	Presets       *dockerfile.Registry
	Catalog       *catalog.Catalog
	CatalogVars   catalog.Vars
	History       *history.Tracker
	// Now is the clock used for export filenames.
	Now func() time.Time
}

// Server serves the dockr HTTP API.
type Server struct {
	logger      log.Logger
	composeGen  *compose.Generator
	dockerGen   *dockerfile.Generator
	presets     *dockerfile.Registry
	catalog     *catalog.Catalog
	catalogVars catalog.Vars
	history     *history.Tracker
	now         func() time.Time
}

// New creates a server.
func New(opts Options) (*Server, error) {
	if opts.Logger == nil {
		opts.Logger = log.GetLogger()
	}
	if opts.Presets == nil {
		opts.Presets = dockerfile.Builtin()
	}
	if opts.Catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, fmt.Errorf("failed to load command catalog: %w", err)
		}
		opts.Catalog = c
	}
	if opts.History == nil {
		opts.History = history.NewTracker()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &Server{
		logger:      opts.Logger,
		composeGen:  compose.NewGenerator(opts.Logger, opts.GeneratorName),
		dockerGen:   dockerfile.NewGenerator(opts.Logger, opts.GeneratorName),
		presets:     opts.Presets,
		catalog:     opts.Catalog,
		catalogVars: opts.CatalogVars,
		history:     opts.History,
		now:         opts.Now,
	}, nil
}

// Handler returns the router with every route configured.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(s.logger))
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/project/default", s.handleDefaultProject)

		r.Route("/compose", func(r chi.Router) {
			r.Post("/", s.handleCompose)
			r.Post("/download", s.handleComposeDownload)
			r.Post("/dockerfile/download", s.handleSecureDockerfileDownload)
		})

		r.Route("/dockerfile", func(r chi.Router) {
			r.Get("/presets", s.handlePresets)
			r.Get("/presets/{name}", s.handlePreset)
			r.Post("/", s.handleDockerfile)
			r.Post("/download", s.handleDockerfileDownload)
			r.Post("/compose/download", s.handleDockerfileComposeDownload)
		})

		r.Get("/catalog", s.handleCatalog)

		r.Route("/history", func(r chi.Router) {
			r.Get("/", s.handleHistory)
			r.Post("/", s.handleHistoryRecord)
			r.Delete("/", s.handleHistoryClear)
			r.Get("/export", s.handleHistoryExport)
		})
	})

	return r
}

// ListenAndServe listens on addr and serves until ctx is cancelled, then
// shuts down within shutdownTimeout.
func (s *Server) ListenAndServe(ctx context.Context, addr string, shutdownTimeout time.Duration) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln, shutdownTimeout)
}

// Serve serves on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener, shutdownTimeout time.Duration) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("HTTP server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("Shutting down HTTP server", "timeout", shutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
