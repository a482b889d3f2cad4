// Copyright (c) 2026 BoiBritto. All rights reserved.

// Command api is the entry point for the BoiBritto HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boibritto/boibritto-api/internal/api"
	"github.com/boibritto/boibritto-api/internal/core/book"
	"github.com/boibritto/boibritto-api/internal/core/chapter"
	"github.com/boibritto/boibritto-api/internal/library/collection"
	"github.com/boibritto/boibritto-api/internal/library/reading"
	"github.com/boibritto/boibritto-api/internal/moderation/report"
	"github.com/boibritto/boibritto-api/internal/platform/config"
	"github.com/boibritto/boibritto-api/internal/platform/constants"
	"github.com/boibritto/boibritto-api/internal/platform/migration"
	pgstore "github.com/boibritto/boibritto-api/internal/platform/postgres"
	redisstore "github.com/boibritto/boibritto-api/internal/platform/redis"
	"github.com/boibritto/boibritto-api/internal/platform/sec"
	"github.com/boibritto/boibritto-api/internal/social/blog"
	"github.com/boibritto/boibritto-api/internal/social/comment"
	"github.com/boibritto/boibritto-api/internal/social/discussion"
	"github.com/boibritto/boibritto-api/internal/users/account"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "boibritto"))
	slog.SetDefault(log)

	log.Info("[BoiBritto] service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "boibritto"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// Application-lifetime context for background routines (rate limiter
	// cleanup). Cancelled once shutdown begins.
	appCtx, appCancel := context.WithCancel(context.Background())
	defer appCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Token Verification ─────────────────────────────────────────────
	verifier, err := sec.NewTokenVerifier(cfg.AuthPubKeyPath, cfg.AuthIssuer)
	must(log, err, "initialize token verifier")

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
	}, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	accountRepository := account.NewAccountRepository(pool)
	identityCache := account.NewIdentityCache(rdb)
	accountService := account.NewService(accountRepository, identityCache, log)

	bookRepository := book.NewBookRepository(pool)
	bookService := book.NewService(bookRepository, log)

	chapterRepository := chapter.NewChapterRepository(pool)
	chapterService := chapter.NewService(chapterRepository, bookRepository, log)
	bookService.WithChapterLister(chapterService)

	discussionRepository := discussion.NewDiscussionRepository(pool)
	discussionService := discussion.NewService(discussionRepository, log)

	commentRepository := comment.NewCommentRepository(pool)
	commentService := comment.NewService(commentRepository, discussionRepository, log)

	blogRepository := blog.NewBlogRepository(pool)
	blogService := blog.NewService(blogRepository, log)

	collectionRepository := collection.NewCollectionRepository(pool)
	collectionService := collection.NewService(collectionRepository, log)

	readingRepository := reading.NewReadingRepository(pool)
	readingService := reading.NewService(readingRepository, log)

	reportRepository := report.NewReportRepository(pool)
	reportService := report.NewService(reportRepository, log)

	// The profile overview aggregates the member's latest activity from
	// the library and social domains.
	accountService.WithOverviewSources(collectionService, readingService, blogService)

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:   liveness,
		Readiness:  readiness,
		Account:    account.NewHandler(accountService),
		Book:       book.NewHandler(bookService),
		Chapter:    chapter.NewHandler(chapterService),
		Discussion: discussion.NewHandler(discussionService),
		Comment:    comment.NewHandler(commentService),
		Blog:       blog.NewHandler(blogService),
		Collection: collection.NewHandler(collectionService),
		Reading:    reading.NewHandler(readingService),
		Report:     report.NewHandler(reportService),
	}

	server := api.NewServer(appCtx, cfg, log, verifier, accountService, handlers)

	// ── 10. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
