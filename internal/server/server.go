// Package server wires the dependency graph and owns the HTTP lifecycle:
// store → services → handlers → routes, plus startup seeding and graceful
// shutdown. main.go stays minimal; everything is assembled here.
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
	"github.com/go-chi/cors"

	"github.com/wolber/school-portal/internal/auth"
	"github.com/wolber/school-portal/internal/config"
	"github.com/wolber/school-portal/internal/handler"
	"github.com/wolber/school-portal/internal/middleware"
	sqliteRepo "github.com/wolber/school-portal/internal/repository/sqlite"
	"github.com/wolber/school-portal/internal/service"
)

// Forbidden-route messages, returned verbatim in the error body.
const (
	msgForbidden         = "Accès refusé"
	msgForbiddenAdmin    = "Accès refusé. Vous n'êtes pas administrateur."
	msgForbiddenUserList = "Accès refusé. Seul un administrateur peut voir cette liste."
)

// Server owns the router, the database connection, and the config.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the store, builds the service and handler graph, and seeds the
// bootstrap admin. The returned server is ready to Start.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
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

	if err := s.setupRoutes(); err != nil {
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// Handler exposes the router, mainly for httptest servers.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes assembles middleware, services, handlers, and the route
// table, then seeds the admin account.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	if len(s.config.CorsOrigins) > 0 {
		s.router.Use(cors.Handler(cors.Options{
			AllowedOrigins: s.config.CorsOrigins,
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
			MaxAge:         300,
		}))
	}

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}

	authService := service.NewAuthService(s.db.Users(), tokens, s.logger)
	courseService := service.NewCourseService(s.db.Courses(), s.logger)
	classService := service.NewClassService(s.db.Classes(), s.logger)
	messageService := service.NewMessageService(s.db.Messages(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	courseHandler := handler.NewCourseHandler(courseService, s.logger)
	classHandler := handler.NewClassHandler(classService, s.logger)
	messageHandler := handler.NewMessageHandler(messageService, s.logger)

	requireAuth := auth.RequireAuth(tokens)

	// Public routes
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Get("/classes", classHandler.HandleList)

	// Token-protected routes, any role
	s.router.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Get("/courses", courseHandler.HandleList)
		r.Post("/messages", messageHandler.HandlePost)
		r.Get("/messages", messageHandler.HandleList)
	})

	// Admin-gated routes. Each keeps its historical refusal message.
	s.router.Group(func(r chi.Router) {
		r.Use(requireAuth, auth.RequireAdmin(msgForbiddenAdmin))
		r.Post("/create-admin", authHandler.HandleCreateAdmin)
	})
	s.router.Group(func(r chi.Router) {
		r.Use(requireAuth, auth.RequireAdmin(msgForbiddenUserList))
		r.Get("/list-users", authHandler.HandleListUsers)
	})
	s.router.Group(func(r chi.Router) {
		r.Use(requireAuth, auth.RequireAdmin(msgForbidden))
		r.Post("/courses", courseHandler.HandleCreate)
		r.Post("/classes", classHandler.HandleCreate)
	})

	// Seed the bootstrap admin once the schema exists. The existence check
	// makes this idempotent across restarts.
	seedCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := authService.SeedAdmin(seedCtx, s.config.SeedAdmin); err != nil {
		return fmt.Errorf("seeding admin: %w", err)
	}

	return nil
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully and closes the store.
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
