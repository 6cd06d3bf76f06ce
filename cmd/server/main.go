package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/vinledger/vinledger/internal"
	"github.com/vinledger/vinledger/internal/handler"
	"github.com/vinledger/vinledger/internal/reminder"
	"github.com/vinledger/vinledger/internal/repository"
	"github.com/vinledger/vinledger/internal/routes"
	"github.com/vinledger/vinledger/internal/telemetry"
)

func run() error {
	ctx := context.Background()

	cfg, err := internal.NewConfig()
	if err != nil {
		return fmt.Errorf("config initialization failed: %w", err)
	}

	logger := internal.NewLogger(os.Stdout, cfg.Env, cfg.LogLevel)

	// database/sql connection for migrations only
	logger.Info("Connecting to database...")
	sqlDB, err := sql.Open("pgx", cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := internal.RunMigrations(sqlDB); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	logger.Info("Database migrations completed")

	pool, err := pgxpool.New(ctx, cfg.DatabaseUrl)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}
	defer pool.Close()

	store := repository.New(pool)

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := telemetry.NewMetrics(registry)

	reminderService := reminder.NewService(store, store, store, metrics, logger)

	r := routes.New(routes.Deps{
		Reminders: handler.NewReminderHandler(reminderService),
		Emails:    handler.NewEmailLogHandler(store),
		Settings:  handler.NewSettingsHandler(store, store),
		Metrics:   metrics,
		Registry:  registry,
		Logger:    logger,
	})

	addr := fmt.Sprintf(":%d", cfg.Port)
	logger.Info("Server listening", "addr", addr, "env", cfg.Env)
	return http.ListenAndServe(addr, r)
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
