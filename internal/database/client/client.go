package client

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/BiblioGo/LibraryApp/internal/config"
)

// Client is the raw PostgreSQL connection pool. It backs the sqlx storages
// (reporting, audit) and is the pool golang-migrate runs against.
type Client struct {
	DB     *sqlx.DB
	logger *slog.Logger
}

// NewClient opens the PostgreSQL pool and applies pending migrations.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	start := time.Now()

	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Error("failed to open PostgreSQL connection", "error", err)
		return nil, fmt.Errorf("open database connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		logger.Error("failed to ping database", "error", err)
		return nil, fmt.Errorf("ping database: %w", err)
	}

	logger.Info("PostgreSQL connection established successfully",
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if err := applyMigrations(cfg.MigrationsURL, cfg.DatabaseURL, logger); err != nil {
		return nil, fmt.Errorf("apply migrations: %w", err)
	}

	return &Client{DB: db, logger: logger}, nil
}

// applyMigrations runs all pending schema migrations.
func applyMigrations(migrationsURL, databaseURL string, logger *slog.Logger) error {
	m, err := migrate.New(migrationsURL, databaseURL)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}

	err = m.Up()
	switch {
	case err == nil:
		logger.Info("migrations applied successfully")
	case err == migrate.ErrNoChange:
		logger.Info("no migrations to apply, schema is up to date")
	default:
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (c *Client) Close() error {
	start := time.Now()
	if err := c.DB.Close(); err != nil {
		c.logger.Error("failed to close database connection", "error", err)
		return err
	}
	c.logger.Info("database connection closed", "duration_ms", time.Since(start).Milliseconds())
	return nil
}
