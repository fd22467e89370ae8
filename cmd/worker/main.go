package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stitchdesk/crm/internal/config"
	"github.com/stitchdesk/crm/internal/database"
	"github.com/stitchdesk/crm/internal/jobs"
	"github.com/stitchdesk/crm/internal/logger"
	"github.com/stitchdesk/crm/internal/repository"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting worker",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.String("db_driver", cfg.Database.Driver),
	)

	db, err := database.NewDatabase(&cfg.Database, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	defer sqlDB.Close()

	// Development databases are migrated from the models
	if cfg.App.Environment == "development" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to auto-migrate: %w", err)
		}
		log.Info("Database auto-migrated")
	}

	if !cfg.Jobs.IntegrityAuditEnabled {
		log.Warn("No jobs enabled, exiting")
		return nil
	}

	scheduler := jobs.NewScheduler(log)
	err = jobs.RegisterIntegrityAuditJob(
		scheduler,
		repository.NewGraphLoader(db),
		logger.WithJob(log, jobs.IntegrityAuditJobName),
		cfg.Jobs.IntegrityAuditSchedule,
		cfg.Jobs.IntegrityAuditTimeoutDuration(),
		true,
	)
	if err != nil {
		return fmt.Errorf("failed to register integrity audit: %w", err)
	}
	scheduler.Start()
	log.Info("Scheduler started",
		zap.Any("schedules", scheduler.Schedules()),
		zap.Duration("timeout", cfg.Jobs.IntegrityAuditTimeoutDuration()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	log.Info("Shutdown signal received")

	<-scheduler.Stop().Done()
	log.Info("Scheduler stopped")
	return nil
}
