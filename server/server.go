// Package server is the reference implementation of the resources API: an
// HTTP server that keeps its collection in memory and validates every
// document that crosses the wire, in both directions. It exists so that the
// conformance suite has a known-good implementation to be developed and
// checked against.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/schul-cloud/resources-contract-tests/jsonapi"
	"github.com/schul-cloud/resources-contract-tests/server/store"
)

const shutdownTimeout = time.Second * 5

// Config carries the server settings. A nil Logger selects JSON logging to
// standard output.
type Config struct {
	Port    int
	Verbose bool
	Logger  *slog.Logger
}

// Server owns the resource collection and the HTTP routing around it. It
// implements http.Handler, so besides Serve it can also be mounted directly
// into an httptest server; that is how the suite's own tests run it.
type Server struct {
	cfg    Config
	logger *slog.Logger
	store  *store.Store
	router *chi.Mux
}

// New assembles a server with an empty collection. It does not start
// listening; use Serve for that.
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		level := slog.LevelInfo
		if cfg.Verbose {
			level = slog.LevelDebug
		}
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		store:  store.New(),
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() *chi.Mux {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(s.logRequests)
	r.Use(s.recoverPanics)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteError(w, http.StatusNotFound,
			jsonapi.NewError(http.StatusNotFound, fmt.Sprintf("no route for %s %s", r.Method, r.URL.Path)))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		jsonapi.WriteError(w, http.StatusMethodNotAllowed,
			jsonapi.NewError(http.StatusMethodNotAllowed, fmt.Sprintf("%s is not supported here", r.Method)))
	})

	r.Route("/v1", func(r chi.Router) {
		r.Route("/resources", func(r chi.Router) {
			r.Get("/", s.listResources)
			r.Post("/", s.createResource)
			r.Delete("/", s.deleteAllResources)
			r.Get("/{id}", s.getResource)
			r.Put("/{id}", s.updateResource)
			r.Delete("/{id}", s.deleteResource)
		})
	})
	return r
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Serve listens on the configured port until the process receives SIGINT or
// SIGTERM, then shuts down gracefully.
func (s *Server) Serve() error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.cfg.Port),
		Handler: s.router,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		s.logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(ctx)
}
