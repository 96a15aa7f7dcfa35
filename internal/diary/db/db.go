// Package db поднимает базу данных дневника: миграции, затем пул соединений.
package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"whispr/internal/diary/config"
	"whispr/pkg/db/postgres"
	"whispr/pkg/logger"
)

// Константы для сообщений logger.
const (
	LogDBInitializing    = "initializing diary database"
	LogDBInitialized     = "diary database initialized successfully"
	LogMigrationStarting = "starting database migrations for diary service"
)

// Константы для сообщений об ошибках.
const (
	ErrDBMigrations      = "failed to apply diary database migrations"
	ErrDBConnection      = "failed to connect to diary database"
	ErrDBCheckConnection = "error checking the database connection"
)

// DB представляет соединение с базой данных дневника.
type DB struct {
	database *postgres.Database
}

// Migrate применяет миграции из cfg.MigrationsDir.
func Migrate(ctx context.Context, cfg *config.PostgresConfig) error {
	source, err := postgres.MigrationsSource(cfg.MigrationsDir)
	if err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}

	logger.Log(ctx).Info(ctx, LogMigrationStarting, zap.String("migrations_path", source))
	if err := postgres.MigrateDSN(ctx, cfg.GetConnectionURL(), source); err != nil {
		return fmt.Errorf("%s: %w", ErrDBMigrations, err)
	}
	return nil
}

// New применяет миграции и открывает пул соединений.
func New(ctx context.Context, cfg *config.PostgresConfig) (*DB, error) {
	log := logger.Log(ctx)

	log.Info(ctx, LogDBInitializing,
		zap.String("host", cfg.Host),
		zap.Int("port", cfg.Port),
		zap.String("database", cfg.Database),
		zap.Int("min_conn", cfg.MinConn),
		zap.Int("max_conn", cfg.MaxConn))

	if err := Migrate(ctx, cfg); err != nil {
		return nil, err
	}

	database, err := postgres.New(ctx, cfg.GetDSN(), postgres.PoolOptions{
		MinConns: cfg.MinConn,
		MaxConns: cfg.MaxConn,
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", ErrDBConnection, err)
	}

	log.Info(ctx, LogDBInitialized)

	return &DB{database: database}, nil
}

// Close закрывает соединение с базой данных.
func (db *DB) Close(ctx context.Context) {
	db.database.Close(ctx)
}

// Pool возвращает пул соединений с базой данных.
func (db *DB) Pool() *pgxpool.Pool {
	return db.database.Pool()
}

// Ping проверяет соединение с базой данных.
func (db *DB) Ping(ctx context.Context) error {
	if err := db.database.Ping(ctx); err != nil {
		return fmt.Errorf("%s: %w", ErrDBCheckConnection, err)
	}
	return nil
}
