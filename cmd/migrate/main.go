package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"

	_ "github.com/lib/pq"
	"github.com/pressly/goose/v3"
	"github.com/stitchdesk/crm/internal/config"
	"github.com/stitchdesk/crm/internal/database"
	"github.com/stitchdesk/crm/migrations"
	"go.uber.org/zap"
)

// sourceDir is where "create" writes new files. Every other command reads
// the migrations embedded in the binary.
const sourceDir = "./migrations"

var commands = []string{"up", "up-by-one", "up-to", "down", "down-to", "redo", "reset", "status", "version", "create"}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Migration error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 || !slices.Contains(commands, os.Args[1]) {
		return fmt.Errorf("usage: migrate %v [args]", commands)
	}
	command, arguments := os.Args[1], os.Args[2:]

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The SQL files are PostgreSQL only; sqlite schemas come from the models
	if cfg.Database.Driver == config.DriverSQLite {
		if command != "up" {
			return fmt.Errorf("sqlite only supports the up command")
		}
		return autoMigrateSQLite(&cfg.Database)
	}

	db, err := sql.Open("postgres", cfg.Database.ConnectionString())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("failed to set dialect: %w", err)
	}

	dir := "."
	goose.SetBaseFS(migrations.FS)
	if command == "create" {
		if len(arguments) == 0 {
			return fmt.Errorf("create requires a migration name")
		}
		goose.SetBaseFS(nil)
		dir = sourceDir
		arguments = []string{arguments[0], "sql"}
	}

	if err := goose.RunContext(ctx, command, db, dir, arguments...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

func autoMigrateSQLite(cfg *config.DatabaseConfig) error {
	db, err := database.NewDatabase(cfg, zap.NewNop())
	if err != nil {
		return err
	}
	if err := database.AutoMigrate(db); err != nil {
		return fmt.Errorf("failed to migrate sqlite database: %w", err)
	}
	fmt.Printf("SQLite schema at %s is up to date\n", cfg.Path)
	return nil
}
