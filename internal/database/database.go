// Package database manages connections to the profile's PostgreSQL server
// and the idempotent creation of the target database.
package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"onboarding/backend/internal/config"
)

// SQLSTATE for duplicate_database, returned by CREATE DATABASE when the
// database already exists.
const duplicateDatabaseCode = "42P04"

// Connect opens a connection pool against the profile's database and
// verifies it with a ping.
func Connect(ctx context.Context, cfg *config.Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// connectMaintenance connects to the server's maintenance database. It
// reuses the profile's connection settings, DATABASE_URL included, with only
// the database name swapped, so provisioning always targets the same server
// the other stages connect to.
func connectMaintenance(ctx context.Context, cfg *config.Config) (*pgx.Conn, error) {
	connConfig, err := pgx.ParseConfig(cfg.ConnString())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	connConfig.Database = "postgres"

	conn, err := pgx.ConnectConfig(ctx, connConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database server: %w", err)
	}
	return conn, nil
}

// EnsureDatabase creates the profile's database if it does not exist yet.
// Creation is attempted unconditionally; a duplicate_database error from the
// server is treated as success, so two concurrent bootstrap runs cannot both
// fail. It returns true when this call created the database.
func EnsureDatabase(ctx context.Context, cfg *config.Config) (bool, error) {
	conn, err := connectMaintenance(ctx, cfg)
	if err != nil {
		return false, err
	}
	defer conn.Close(ctx)

	// CREATE DATABASE cannot be parameterized; quote the identifier.
	stmt := fmt.Sprintf("CREATE DATABASE %s", pgx.Identifier{cfg.DBName}.Sanitize())
	if _, err := conn.Exec(ctx, stmt); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == duplicateDatabaseCode {
			return false, nil
		}
		return false, fmt.Errorf("failed to create database %s: %w", cfg.DBName, err)
	}

	return true, nil
}

// Exists reports whether the profile's database exists on the server. The
// comparison against pg_database is case-sensitive.
func Exists(ctx context.Context, cfg *config.Config) (bool, error) {
	conn, err := connectMaintenance(ctx, cfg)
	if err != nil {
		return false, err
	}
	defer conn.Close(ctx)

	var exists bool
	err = conn.QueryRow(ctx,
		"SELECT EXISTS (SELECT 1 FROM pg_database WHERE datname = $1)",
		cfg.DBName,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to list databases: %w", err)
	}

	return exists, nil
}
