// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the
// entire dependency chain is assembled in one place:
//
//	sqlite.DB → repositories → services → handlers → routes
//
// Each layer only receives what it needs: services get repository
// interfaces (not the concrete sqlite.DB), handlers get services (not
// repositories), and nothing here leaks into the layers themselves.
// Keeping the wiring out of main.go makes it testable and keeps main
// minimal.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/course-api/internal/auth"
	"github.com/sakif/course-api/internal/handler"
	"github.com/sakif/course-api/internal/middleware"
	sqliteRepo "github.com/sakif/course-api/internal/repository/sqlite"
	"github.com/sakif/course-api/internal/service"
)

// Config holds server configuration. A struct (instead of individual
// parameters) means new options don't change function signatures.
type Config struct {
	Port       int
	DBPath     string // path to the SQLite database file
	BcryptCost int    // 0 means the auth package default
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown — skipping that can leave the WAL
// unflushed.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with all dependencies wired.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	s.setupRoutes()

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                  → welcome message (JSON)
//	GET    /api/users         → current identity            [auth]
//	POST   /api/users         → register a user
//	GET    /api/courses       → list courses with owners
//	GET    /api/courses/{id}  → one course with owner
//	POST   /api/courses       → create course               [auth]
//	PUT    /api/courses/{id}  → update course               [auth, owner]
//	DELETE /api/courses/{id}  → delete course               [auth, owner]
//
// MIDDLEWARE ORDER MATTERS — middleware executes in the order it's added:
// RequestID → RealIP → Recoverer → request logging → CORS, then
// RequireAuth per-route on the gated endpoints.
func (s *Server) setupRoutes() {
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500

	s.router.Use(middleware.Logger(s.logger))

	// The Authorization header must be allowed through CORS or browsers
	// will strip the Basic credentials on cross-origin calls.
	s.router.Use(cors.New(cors.Options{
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}).Handler)

	// === DEPENDENCY WIRING ===
	passwords := auth.NewPasswordService(s.config.BcryptCost)
	userService := service.NewUserService(s.db.Users(), passwords, s.logger)
	courseService := service.NewCourseService(s.db.Courses(), s.logger)

	validate := handler.NewValidator()
	userHandler := handler.NewUserHandler(userService, validate, s.logger)
	courseHandler := handler.NewCourseHandler(courseService, validate, s.logger)

	// UserService implements auth.Authenticator — the middleware
	// re-verifies the Basic credentials on every gated request.
	requireAuth := auth.RequireAuth(userService, s.logger)

	s.router.Get("/", handler.HandleRoot)

	s.router.Route("/api", func(r chi.Router) {
		r.With(requireAuth).Get("/users", userHandler.HandleGetCurrent)
		r.Post("/users", userHandler.HandleCreate)

		r.Get("/courses", courseHandler.HandleList)
		r.Get("/courses/{id}", courseHandler.HandleGetByID)
		r.With(requireAuth).Post("/courses", courseHandler.HandleCreate)
		r.With(requireAuth).Put("/courses/{id}", courseHandler.HandleUpdate)
		r.With(requireAuth).Delete("/courses/{id}", courseHandler.HandleDelete)
	})
}

// Start starts the HTTP server and handles graceful shutdown:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases file lock)
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
