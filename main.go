package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	_ "github.com/uptrace/bun/driver/sqliteshim"

	"lpt-event/internal/config"
	"lpt-event/internal/database/migrations"
	"lpt-event/internal/events"
	eventdb "lpt-event/internal/events/db"
	"lpt-event/internal/events/event_api"
	"lpt-event/internal/events/qr"
	"lpt-event/internal/kafka"
	"lpt-event/internal/logger"
)

func connectDatabase(cfg *config.Config, logger *logger.Logger) *bun.DB {
	if cfg.Database.Driver == "postgres" {
		if cfg.Database.PostgresDSN == "" {
			logger.Fatal("CONFIG", "POSTGRES_DSN not set")
		}

		var sqldb *sql.DB
		var err error
		maxRetries := 5

		for i := 0; i < maxRetries; i++ {
			logger.Info("DATABASE", fmt.Sprintf("Attempting to connect to PostgreSQL (attempt %d/%d)", i+1, maxRetries))
			sqldb, err = sql.Open("postgres", cfg.Database.PostgresDSN)
			if err != nil {
				logger.Error("DATABASE", fmt.Sprintf("Failed to open PostgreSQL: %v", err))
				time.Sleep(2 * time.Second)
				continue
			}

			err = sqldb.Ping()
			if err == nil {
				break
			}

			logger.Error("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL: %v", err))
			if i < maxRetries-1 {
				time.Sleep(2 * time.Second)
			}
		}

		if err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to PostgreSQL after %d attempts: %v", maxRetries, err))
		}

		sqldb.SetMaxOpenConns(cfg.Database.MaxOpenConns)
		sqldb.SetMaxIdleConns(cfg.Database.MaxIdleConns)
		sqldb.SetConnMaxLifetime(cfg.Database.MaxLifetime)

		logger.Info("DATABASE", "PostgreSQL connection successful")
		return bun.NewDB(sqldb, pgdialect.New())
	}

	sqldb, err := sql.Open("sqlite", cfg.Database.SQLiteDSN)
	if err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to open SQLite database: %v", err))
	}
	if err := sqldb.Ping(); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to connect to SQLite: %v", err))
	}

	logger.Info("DATABASE", fmt.Sprintf("SQLite connection successful (%s)", cfg.Database.SQLiteDSN))
	return bun.NewDB(sqldb, sqlitedialect.New())
}

func prepareSchema(ctx context.Context, cfg *config.Config, bunDB *bun.DB, db *eventdb.DB, logger *logger.Logger) {
	if !cfg.Database.AutoMigrate {
		logger.Info("DATABASE", "Auto-migration disabled, assuming schema is in place")
		return
	}

	if cfg.Database.Driver == "postgres" {
		opts := migrations.DefaultOptions()
		opts.SeedData = cfg.Database.SeedDemoData
		runner := migrations.NewRunner(bunDB, opts)
		if err := runner.RunMigrations(); err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Failed to run migrations: %v", err))
		}
		logger.Info("DATABASE", "Migrations applied")
		return
	}

	if err := db.CreateSchema(ctx); err != nil {
		logger.Fatal("DATABASE", fmt.Sprintf("Failed to create schema: %v", err))
	}
	if cfg.Database.SeedDemoData {
		seeded, err := db.SeedDemoEvents(ctx)
		if err != nil {
			logger.Fatal("DATABASE", fmt.Sprintf("Failed to seed demo events: %v", err))
		}
		if seeded {
			logger.Info("DATABASE", "Seeded demo events")
		}
	}
}

func main() {
	logger := logger.NewLogger()
	defer logger.Close()

	logger.Info("APP", "Starting Event Service initialization")

	if err := godotenv.Load(); err != nil {
		logger.Warn("CONFIG", ".env file not found, using environment variables")
	} else {
		logger.Info("CONFIG", "Loaded environment variables from .env file")
	}

	cfg := config.Load()
	ctx := context.Background()

	bunDB := connectDatabase(cfg, logger)
	defer bunDB.Close()

	db := &eventdb.DB{Bun: bunDB}
	prepareSchema(ctx, cfg, bunDB, db, logger)

	var publisher events.ChangePublisher
	if cfg.Kafka.Enabled {
		if err := kafka.EnsureTopicsExist(cfg.Kafka.Brokers, kafka.ChangeTopics()); err != nil {
			logger.Warn("KAFKA", fmt.Sprintf("Topic creation might have failed: %v", err))
		}
		producer := kafka.NewProducer(cfg.Kafka.Brokers)
		defer producer.Close()
		publisher = producer
		logger.Info("KAFKA", "Change feed producer initialized")
	} else {
		logger.Info("KAFKA", "Change feed disabled")
	}

	eventService := events.NewEventService(db, publisher, logger)

	handler := event_api.NewHandler(eventService, logger)
	qrHandler := event_api.NewQRHandler(eventService, qr.NewGenerator(cfg.App.PublicBaseURL), logger)

	logger.Info("HTTP", "Setting up router")
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
		qrHandler.RegisterRoutes(r)
	})
	logger.Info("ROUTER", "Event routes registered under /api/events")

	server := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		logger.Info("HTTP", fmt.Sprintf("Event Service running on %s", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP", fmt.Sprintf("HTTP server error: %v", err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	logger.Info("APP", "Service started successfully, waiting for shutdown signal")
	<-stop

	logger.Info("APP", "Shutdown signal received, initiating graceful shutdown")
	ctxShutdown, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("HTTP", fmt.Sprintf("Server shutdown failed: %v", err))
	} else {
		logger.Info("HTTP", "Event Service shutdown complete")
	}
}
