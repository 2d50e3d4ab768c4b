package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is a Postgres instance with the settlement schema applied, for package tests
type Database struct {
	DB        *gorm.DB
	container *postgres.PostgresContainer
}

// StartDatabase connects to the database named by the TEST_DB_* environment variables,
// or starts a throwaway Postgres container when TEST_DB_HOST is unset.
func StartDatabase(ctx context.Context) (*Database, error) {
	db := &Database{}

	dsn, err := db.dsn(ctx)
	if err != nil {
		return nil, err
	}

	db.DB, err = gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := applySchema(db.DB); err != nil {
		db.Terminate(ctx)
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return db, nil
}

func (d *Database) dsn(ctx context.Context) (string, error) {
	// Check if we should use an external database (for CI or local development)
	if host := os.Getenv("TEST_DB_HOST"); host != "" {
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			host,
			getenv("TEST_DB_PORT", "5432"),
			getenv("TEST_DB_USER", "postgres"),
			getenv("TEST_DB_PASSWORD", "postgres"),
			getenv("TEST_DB_NAME", "test_db"),
		)
		fmt.Printf("Using external database: %s\n", host)
		return dsn, nil
	}

	container, err := postgres.Run(ctx,
		"postgres:18-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return "", fmt.Errorf("failed to start PostgreSQL container: %w", err)
	}
	d.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		d.Terminate(ctx)
		return "", fmt.Errorf("failed to get connection string: %w", err)
	}
	return dsn, nil
}

// Terminate stops the container, if one was started
func (d *Database) Terminate(ctx context.Context) {
	if d.container == nil {
		return
	}
	if err := d.container.Terminate(ctx); err != nil {
		fmt.Printf("Failed to terminate PostgreSQL container: %v\n", err)
	}
}

func applySchema(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	schemaSQL, err := os.ReadFile(SchemaPath()) //nolint:gosec,G304
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}
	if _, err := sqlDB.Exec(string(schemaSQL)); err != nil {
		return fmt.Errorf("failed to execute schema: %w", err)
	}
	return nil
}

// SchemaPath returns the location of db/init_pg_db.sql
func SchemaPath() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..", "db", "init_pg_db.sql")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
