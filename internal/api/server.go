// Copyright (c) 2026 BoiBritto. All rights reserved.

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/boibritto/boibritto-api/internal/core/book"
	"github.com/boibritto/boibritto-api/internal/core/chapter"
	"github.com/boibritto/boibritto-api/internal/library/collection"
	"github.com/boibritto/boibritto-api/internal/library/reading"
	"github.com/boibritto/boibritto-api/internal/moderation/report"
	"github.com/boibritto/boibritto-api/internal/platform/config"
	"github.com/boibritto/boibritto-api/internal/platform/constants"
	"github.com/boibritto/boibritto-api/internal/platform/middleware"
	"github.com/boibritto/boibritto-api/internal/social/blog"
	"github.com/boibritto/boibritto-api/internal/social/comment"
	"github.com/boibritto/boibritto-api/internal/social/discussion"
	"github.com/boibritto/boibritto-api/internal/users/account"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Account handles auth sync and user profiles.
	Account *account.Handler

	// Book handles user-authored books and their likes.
	Book *book.Handler

	// Chapter handles book chapters and their likes.
	Chapter *chapter.Handler

	// Discussion handles community discussion threads.
	Discussion *discussion.Handler

	// Comment handles the threaded comments under discussions.
	Comment *comment.Handler

	// Blog handles member blogs and their likes.
	Blog *blog.Handler

	// Collection handles curated Google Books collections.
	Collection *collection.Handler

	// Reading handles the personal reading tracker.
	Reading *reading.Handler

	// Report handles moderation report intake.
	Report *report.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, resolver middleware.AccountResolver, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.ResolveAccount(resolver))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Account.AuthRoutes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/books", h.Book.Routes())
		api.Mount("/discussions", h.Discussion.Routes())
		api.Mount("/blogs", h.Blog.Routes())
		api.Mount("/collections", h.Collection.Routes())
		api.Mount("/reading", h.Reading.Routes())
		api.Mount("/reports", h.Report.Routes())

		// Chapters and comments span two URL prefixes each, so they
		// register directly instead of mounting a subrouter.
		h.Chapter.RegisterRoutes(api)
		h.Comment.RegisterRoutes(api)
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
