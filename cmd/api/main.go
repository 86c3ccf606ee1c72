// Copyright (c) 2026 RateUp. All rights reserved.

// Command api is the entry point for the RateUp HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables (and .env when present).
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis when REDIS_URL is set.
//  5. Run database migrations (idempotent).
//  6. Seed the administrator account when configured.
//  7. Wire HTTP handlers.
//  8. Start HTTP server with graceful shutdown.
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

	"github.com/joho/godotenv"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nifoox/rateup/internal/api"
	"github.com/nifoox/rateup/internal/catalog/game"
	"github.com/nifoox/rateup/internal/home"
	"github.com/nifoox/rateup/internal/platform/config"
	"github.com/nifoox/rateup/internal/platform/constants"
	"github.com/nifoox/rateup/internal/platform/migration"
	pgstore "github.com/nifoox/rateup/internal/platform/postgres"
	redisstore "github.com/nifoox/rateup/internal/platform/redis"
	"github.com/nifoox/rateup/internal/platform/sec"
	"github.com/nifoox/rateup/internal/social/comment"
	"github.com/nifoox/rateup/internal/social/review"
	"github.com/nifoox/rateup/internal/social/vote"
	"github.com/nifoox/rateup/internal/users/account"
	"github.com/nifoox/rateup/internal/users/auth"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	log := newLogger(slog.LevelInfo)
	slog.SetDefault(log)

	log.Info("service_initializing")

	// ── 2. Configuration ──────────────────────────────────────────────────
	if err := godotenv.Load(); err != nil {
		log.Debug("dotenv_not_loaded", slog.Any("error", err))
	}

	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		log = newLogger(slog.LevelDebug)
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
		slog.Bool("cache_enabled", cfg.RedisURL != ""),
	)

	if cfg.JWTSecret == "" {
		log.Warn("jwt_secret_missing", slog.String("effect", "login and token verification will fail with CONFIG_ERROR"))
	}

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing_postgres_pool")
		pool.Close()
	}()

	// ── 4. Redis (optional) ───────────────────────────────────────────────
	var (
		rdb   *goredis.Client
		cache home.Cache = home.NopCache{}
	)
	if cfg.RedisURL != "" {
		rdb, err = redisstore.NewClient(startupCtx, cfg.RedisURL, log)
		if err != nil {
			log.Warn("redis_unavailable_cache_disabled", slog.Any("error", err))
			rdb = nil
		} else {
			cache = home.NewRedisCache(rdb, cfg.HomeCacheTTL)
			defer func() {
				log.Info("closing_redis_client")
				if cerr := rdb.Close(); cerr != nil {
					log.Error("redis_close_error", slog.Any("error", cerr))
				}
			}()
		}
	}

	// ── 5. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 6. Security primitives ────────────────────────────────────────────
	hasher := sec.NewHasher(sec.DefaultHasherParams)
	tokens := sec.NewTokenService(cfg.JWTSecret, sec.WithIssuer(cfg.JWTIssuer))

	// ── 7. Health handlers (wired with real dependency checkers) ──────────
	health := api.HealthDependencies{
		CheckDatabase: func(ctx context.Context) error {
			return pgstore.Ping(ctx, pool)
		},
	}
	if rdb != nil {
		health.CheckCache = func(ctx context.Context) error {
			return redisstore.Ping(ctx, rdb)
		}
	}
	liveness, readiness := api.NewHealthHandlers(health, log)

	// ── 8. Domain Wiring ──────────────────────────────────────────────────
	authService := auth.NewService(auth.NewUserRepository(pool), hasher, tokens, log)
	accountService := account.NewService(account.NewAccountRepository(pool), authService, hasher, log)

	gameService := game.NewService(game.NewPostgresRepository(pool), log)

	ledger := vote.NewLedger(vote.NewPostgresStore(pool), log)
	reviewRepository := review.NewPostgresRepository(pool)
	commentService := comment.NewService(comment.NewPostgresRepository(pool), reviewRepository, log)
	reviewService := review.NewService(reviewRepository, gameService, ledger, commentService, log)

	homeService := home.NewService(gameService, reviewService, cache, log)

	if cfg.HasSeedAdmin() {
		created, err := authService.SeedAdmin(startupCtx, auth.RegisterInput{
			Username: cfg.AdminUsername,
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
		})
		must(log, err, "seed administrator")
		log.Info("admin_seed_checked", slog.Bool("created", created), slog.String("email", cfg.AdminEmail))
	}

	// ── 9. HTTP Server ────────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      auth.NewHandler(authService),
		Users:     account.NewHandler(accountService),
		Games:     game.NewHandler(gameService),
		Reviews: review.NewHandler(
			reviewService,
			vote.NewHandler(ledger, reviewService),
			comment.NewHandler(commentService),
		),
		Home: home.NewHandler(homeService),
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, tokens, handlers)

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
		log.Info("shutdown_signal_received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server_startup_error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting_down_server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown_error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server_stopped_cleanly")
}

func newLogger(level slog.Level) *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})).With(slog.String("app", constants.AppName))
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is limited to startup wiring. After startup, all errors are returned
// and handled explicitly.
func must(log *slog.Logger, err error, step string) {
	if err != nil {
		log.Error("startup_failure",
			slog.String("step", step),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
