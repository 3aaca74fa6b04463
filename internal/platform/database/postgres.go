package database

import (
	"context"
	"database/sql"
	_ "embed"
	"fmt"
	"time"

	"stepik_backend/internal/platform/config"
	"stepik_backend/internal/platform/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
)

//go:embed schema.sql
var schema string

var DB *sql.DB

func Connect(log *logger.Logger) error {
	var err error
	DB, err = Open(config.AppConfig.DBConnStr)
	if err != nil {
		return err
	}
	log.Info("connected to PostgreSQL", "host", config.AppConfig.DBHost, "db", config.AppConfig.DBName)
	return nil
}

// Open returns a pooled, pinged handle for the given DSN.
func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err = db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	return db, nil
}

// Migrate applies the idempotent schema.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("applying schema: %w", err)
	}
	return nil
}

func Close(log *logger.Logger) {
	if DB != nil {
		DB.Close()
		log.Info("database connection closed")
	}
}
