// Package server wires the store, services, handlers and middleware together
// and runs the HTTP server.
//
// COMPOSITION ROOT:
// New is the only place that knows about every layer:
//
//	sqlite.DB → UserService, ExerciseService → UserHandler, ExerciseHandler → chi routes
//
// Everything below it receives interfaces, so each layer can be tested alone.
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
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/sakif/exercise-tracker/internal/config"
	"github.com/sakif/exercise-tracker/internal/handler"
	"github.com/sakif/exercise-tracker/internal/middleware"
	sqliteRepo "github.com/sakif/exercise-tracker/internal/repository/sqlite"
	"github.com/sakif/exercise-tracker/internal/service"
)

// Server owns the router and the database connection. The connection is
// closed when Start returns, or by Close if Start is never called.
type Server struct {
	router   *chi.Mux
	config   config.Config
	logger   *slog.Logger
	db       *sqliteRepo.DB
	registry *prometheus.Registry
}

// New opens the store and registers every route.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router:   chi.NewRouter(),
		config:   cfg,
		logger:   logger,
		db:       db,
		registry: prometheus.NewRegistry(),
	}

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures middleware and routes.
//
// ROUTES:
//
//	POST /api/users                   → create user
//	GET  /api/users                   → list users
//	POST /api/users/{_id}/exercises   → add exercise
//	GET  /api/users/{_id}/logs        → exercise log (?from&to&limit)
//	GET  /healthz                     → store reachability
//	GET  /metrics                     → Prometheus scrape endpoint
//	GET  /                            → HTML forms (when TemplateDir is set)
//	GET  /static/*                    → static assets (when StaticDir is set)
//
// MIDDLEWARE ORDER:
// RequestID runs first so Logger can report it. Recoverer sits inside Logger
// and Metrics so a panic is still logged and counted as a 500.
func (s *Server) setupRoutes() error {
	s.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(s.registry)

	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(metrics.Middleware)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.CORS(s.config.CORSOrigin))

	if s.config.StaticDir != "" {
		fileServer := http.FileServer(http.Dir(s.config.StaticDir))
		s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))
	}

	if s.config.TemplateDir != "" {
		pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
		if err != nil {
			return fmt.Errorf("creating page handler: %w", err)
		}
		s.router.Get("/", pageHandler.HandleIndex)
	}

	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	s.router.Get("/healthz", healthHandler.HandleHealth)
	s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	// s.db implements both UserRepository and ExerciseRepository.
	userService := service.NewUserService(s.db, s.logger)
	exerciseService := service.NewExerciseService(s.db, userService, s.logger)

	userHandler := handler.NewUserHandler(userService, s.logger)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/users", userHandler.HandleCreate)
		r.Get("/users", userHandler.HandleList)
		r.Post("/users/{"+handler.ParamUserID+"}/exercises", exerciseHandler.HandleAdd)
		r.Get("/users/{"+handler.ParamUserID+"}/logs", exerciseHandler.HandleLog)
	})

	return nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database. Only needed when Start is never called.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start serves until ctx is cancelled or SIGINT/SIGTERM arrives, then shuts
// down gracefully and closes the database.
//
// SHUTDOWN:
// Two goroutines run in an errgroup. One serves; the other waits for the
// signal context and calls Shutdown, which lets in-flight requests finish
// within ShutdownTimeout. If ListenAndServe fails (port in use), the group
// context is cancelled and the shutdown goroutine exits too.
func (s *Server) Start(ctx context.Context) error {
	defer s.db.Close()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:         s.config.Addr(),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		s.logger.Info("server starting",
			slog.String("addr", srv.Addr),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		s.logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
		return nil
	})

	return g.Wait()
}
