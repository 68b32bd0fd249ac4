// Package main is the entry point for the planner API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/lmittmann/tint"
	"github.com/pressly/goose/v3"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/plannerhq/planner-api/internal/config"
	"github.com/plannerhq/planner-api/internal/handler"
	"github.com/plannerhq/planner-api/internal/mail"
	"github.com/plannerhq/planner-api/internal/mail/render"
	"github.com/plannerhq/planner-api/internal/middleware"
	"github.com/plannerhq/planner-api/internal/outbox"
	"github.com/plannerhq/planner-api/internal/repo"
	"github.com/plannerhq/planner-api/internal/service"
	"github.com/plannerhq/planner-api/migrations"
	"github.com/plannerhq/planner-api/spec"
)

// maxRequestBodyBytes caps incoming request bodies. The largest legitimate
// payload is a trip creation with a long invite list, well under 1 MiB.
const maxRequestBodyBytes = 1 << 20

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load()
	if err != nil {
		// Use plain stderr before the logger is configured.
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	// JSON handler writes machine-readable output suitable for log aggregators.
	// LOG_FORMAT=text switches to tint's colored output for local development.
	var logLevel slog.Level
	if err := logLevel.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		logLevel = slog.LevelInfo
	}
	var slogHandler slog.Handler
	if cfg.LogFormat == "text" {
		slogHandler = tint.NewHandler(os.Stdout, &tint.Options{Level: logLevel})
	} else {
		slogHandler = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	}
	logger := slog.New(slogHandler)
	slog.SetDefault(logger)

	// --- Database ---------------------------------------------------------
	// pgxpool manages a pool of Postgres connections.
	// New() does not open connections immediately, the first query does.
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Verify the DB is reachable before accepting traffic.
	if err := pool.Ping(context.Background()); err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	slog.Info("database connection established")

	// --- Migrations -------------------------------------------------------
	// goose needs a database/sql handle; open a short-lived one alongside
	// the pgx pool just for the migration run.
	if err := runMigrations(cfg.DatabaseURL); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied")

	// --- Repositories -----------------------------------------------------
	tripRepo := repo.NewTripRepo(pool)
	participantRepo := repo.NewParticipantRepo(pool)
	activityRepo := repo.NewActivityRepo(pool)
	linkRepo := repo.NewLinkRepo(pool)
	outboxRepo := repo.NewOutboxRepo(pool)

	// --- Mail -------------------------------------------------------------
	renderer, err := render.New(cfg.MailLocale)
	if err != nil {
		slog.Error("failed to initialize mail renderer", "error", err)
		os.Exit(1)
	}
	composer := mail.NewComposer(renderer, cfg.APIBaseURL)

	dispatcher, err := mail.NewSMTPDispatcher(mail.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	})
	if err != nil {
		slog.Error("failed to create SMTP dispatcher", "error", err)
		os.Exit(1)
	}

	// --- Outbox worker ----------------------------------------------------
	worker := outbox.New(outboxRepo, dispatcher, outbox.Config{
		FromName:    cfg.MailFromName,
		FromAddress: cfg.MailFromAddress,
		Logger:      logger,
	})
	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	go worker.Run(workerCtx)

	// --- Services ---------------------------------------------------------
	tripService := service.NewTripService(tripRepo, participantRepo, composer, worker)
	inviteService := service.NewInviteService(tripRepo, participantRepo, composer, worker)
	participantService := service.NewParticipantService(tripRepo, participantRepo)
	activityService := service.NewActivityService(tripRepo, activityRepo)
	linkService := service.NewLinkService(tripRepo, linkRepo)

	// --- Router -----------------------------------------------------------
	// Middleware order matters: RequestID first so every later stage can see
	// the trace ID, Recoverer after the logger so panics still get logged.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.CORSOrigins))
	r.Use(middleware.NewMaxBodySizeHandler(maxRequestBodyBytes))
	r.Use(middleware.NewMetricsHandler())

	srv := handler.NewServer(tripService, inviteService, participantService, activityService, linkService, cfg.WebBaseURL)
	srv.RegisterRoutes(r)

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		w.Write(spec.OpenAPI)
	})

	// --- HTTP Server ------------------------------------------------------
	// Explicit timeouts prevent slowloris and resource exhaustion attacks.
	httpSrv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, then give in-flight requests
	// up to 15 seconds to complete before forcefully closing.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", httpSrv.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	// Stop the outbox worker first; pending rows stay in the table and are
	// picked up on the next boot.
	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}

// runMigrations applies all pending goose migrations from the embedded FS.
func runMigrations(databaseURL string) error {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return err
	}
	return goose.Up(db, ".")
}
