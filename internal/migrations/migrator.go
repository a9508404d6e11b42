// Package migrations is an in-process schema migration engine over embedded
// SQL files. Applied versions are recorded in a schema_migrations history
// table; each migration runs inside its own transaction.
package migrations

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"onboarding/backend/internal/logging"
)

// historyTable records applied migration versions. The table is owned by
// the migrator; nothing else reads or writes it.
const historyTable = "schema_migrations"

// Migrator applies and rolls back migrations against a PostgreSQL database.
type Migrator struct {
	db     *pgxpool.Pool
	source Source
	logger *logging.Logger
}

// New creates a Migrator reading migrations from source.
func New(db *pgxpool.Pool, source Source, logger *logging.Logger) *Migrator {
	return &Migrator{db: db, source: source, logger: logger}
}

// Up applies every pending migration in version order and returns how many
// were applied. The first failure aborts the run; already-applied migrations
// stay applied.
func (m *Migrator) Up(ctx context.Context) (int, error) {
	if err := m.ensureHistoryTable(ctx); err != nil {
		return 0, err
	}

	all, applied, err := m.loadWithApplied(ctx)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, mig := range all {
		if applied[mig.Version] {
			m.logger.Debug("Skipping applied migration %s: %s", mig.Version, mig.Name)
			continue
		}
		if err := m.apply(ctx, mig); err != nil {
			return count, err
		}
		m.logger.Info("Applied migration %s: %s", mig.Version, mig.Name)
		count++
	}

	return count, nil
}

// Down rolls back the most recently applied migration and returns its
// version. It fails if nothing is applied or the migration has no down
// script.
func (m *Migrator) Down(ctx context.Context) (string, error) {
	if err := m.ensureHistoryTable(ctx); err != nil {
		return "", err
	}

	all, applied, err := m.loadWithApplied(ctx)
	if err != nil {
		return "", err
	}

	for i := len(all) - 1; i >= 0; i-- {
		mig := all[i]
		if !applied[mig.Version] {
			continue
		}
		if mig.DownSQL == "" {
			return "", fmt.Errorf("migration %s (%s) has no down script", mig.Version, mig.Name)
		}
		if err := m.rollback(ctx, mig); err != nil {
			return "", err
		}
		m.logger.Info("Rolled back migration %s: %s", mig.Version, mig.Name)
		return mig.Version, nil
	}

	return "", fmt.Errorf("no applied migrations to roll back")
}

// Version returns the highest applied migration version, or the empty string
// when no migration is applied. It is read-only; a database without a
// history table simply has no applied migrations.
func (m *Migrator) Version(ctx context.Context) (string, error) {
	all, applied, err := m.loadWithApplied(ctx)
	if err != nil {
		return "", err
	}

	current := ""
	for _, mig := range all {
		if applied[mig.Version] {
			current = mig.Version
		}
	}
	return current, nil
}

// Pending returns the migrations not yet applied, in apply order. Like
// Version, it never writes to the database.
func (m *Migrator) Pending(ctx context.Context) ([]Migration, error) {
	all, applied, err := m.loadWithApplied(ctx)
	if err != nil {
		return nil, err
	}

	var pending []Migration
	for _, mig := range all {
		if !applied[mig.Version] {
			pending = append(pending, mig)
		}
	}
	return pending, nil
}

func (m *Migrator) ensureHistoryTable(ctx context.Context) error {
	_, err := m.db.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+historyTable+` (
		version TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`)
	if err != nil {
		return fmt.Errorf("failed to ensure history table: %w", err)
	}
	return nil
}

// historyTableExists checks for the history table without creating it.
func (m *Migrator) historyTableExists(ctx context.Context) (bool, error) {
	var exists bool
	err := m.db.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, historyTable).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check history table: %w", err)
	}
	return exists, nil
}

func (m *Migrator) loadWithApplied(ctx context.Context) ([]Migration, map[string]bool, error) {
	all, err := m.source.Load()
	if err != nil {
		return nil, nil, err
	}

	exists, err := m.historyTableExists(ctx)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return all, map[string]bool{}, nil
	}

	rows, err := m.db.Query(ctx, `SELECT version FROM `+historyTable)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]bool)
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, nil, err
		}
		applied[version] = true
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return all, applied, nil
}

// apply runs a migration's up script and records it, both inside one
// transaction so a failed script leaves no history row behind.
func (m *Migrator) apply(ctx context.Context, mig Migration) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.UpSQL); err != nil {
		return fmt.Errorf("migration %s (%s) failed: %w", mig.Version, mig.Name, err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO `+historyTable+` (version, name) VALUES ($1, $2)`,
		mig.Version, mig.Name,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", mig.Version, err)
	}

	return tx.Commit(ctx)
}

func (m *Migrator) rollback(ctx context.Context, mig Migration) error {
	tx, err := m.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, mig.DownSQL); err != nil {
		return fmt.Errorf("rollback of migration %s (%s) failed: %w", mig.Version, mig.Name, err)
	}
	if _, err := tx.Exec(ctx,
		`DELETE FROM `+historyTable+` WHERE version = $1`, mig.Version,
	); err != nil {
		return fmt.Errorf("failed to remove migration record %s: %w", mig.Version, err)
	}

	return tx.Commit(ctx)
}
