// Package bootstrap runs the environment bootstrap workflow: ensure the
// profile's database exists, bring the schema to the latest revision, then
// optionally import the dataset. Stages run in that order and the first
// failure aborts the sequence; recovery is rerunning the whole workflow.
package bootstrap

import (
	"context"
	"fmt"

	"onboarding/backend/internal/config"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/logging"
)

// Provisioner ensures the target database exists.
type Provisioner interface {
	// EnsureDatabase creates the database if absent and reports whether
	// this call created it.
	EnsureDatabase(ctx context.Context) (bool, error)
}

// Migrator brings the schema to the latest revision.
type Migrator interface {
	// Up applies pending migrations and returns how many were applied.
	Up(ctx context.Context) (int, error)
}

// Importer loads the dataset into the migrated database.
type Importer interface {
	Import(ctx context.Context) error
}

// ProvisionerFunc adapts a function to the Provisioner interface.
type ProvisionerFunc func(ctx context.Context) (bool, error)

func (f ProvisionerFunc) EnsureDatabase(ctx context.Context) (bool, error) {
	return f(ctx)
}

// MigratorFunc adapts a function to the Migrator interface.
type MigratorFunc func(ctx context.Context) (int, error)

func (f MigratorFunc) Up(ctx context.Context) (int, error) {
	return f(ctx)
}

// ImporterFunc adapts a function to the Importer interface.
type ImporterFunc func(ctx context.Context) error

func (f ImporterFunc) Import(ctx context.Context) error {
	return f(ctx)
}

// Options selects the optional tail of the workflow.
type Options struct {
	// Import runs the dataset import after migrating.
	Import bool
}

// Runner executes the bootstrap stages against one profile.
type Runner struct {
	cfg         *config.Config
	logger      *logging.Logger
	provisioner Provisioner
	migrator    Migrator
	importer    Importer
}

// NewRunner creates a Runner. The importer may be nil when Options.Import
// will not be requested.
func NewRunner(
	cfg *config.Config,
	logger *logging.Logger,
	provisioner Provisioner,
	migrator Migrator,
	importer Importer,
) *Runner {
	return &Runner{
		cfg:         cfg,
		logger:      logger,
		provisioner: provisioner,
		migrator:    migrator,
		importer:    importer,
	}
}

// Run executes the workflow. Stage failures come back as DependencyError
// with the underlying cause intact.
func (r *Runner) Run(ctx context.Context, opts Options) error {
	r.logger.Info("Bootstrapping %s environment (database %s)", r.cfg.Profile, r.cfg.DBName)

	created, err := r.provisioner.EnsureDatabase(ctx)
	if err != nil {
		return errdefs.Dependency("database setup", err)
	}
	if created {
		r.logger.Info("Database %s created", r.cfg.DBName)
	} else {
		r.logger.Info("Database %s already exists, skipping creation", r.cfg.DBName)
	}

	applied, err := r.migrator.Up(ctx)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}
	if applied == 0 {
		r.logger.Info("Schema already up to date")
	} else {
		r.logger.Info("Applied %d migrations", applied)
	}

	if opts.Import {
		if r.importer == nil {
			return fmt.Errorf("import requested but no importer configured")
		}
		if err := r.importer.Import(ctx); err != nil {
			return errdefs.Dependency("import", err)
		}
		r.logger.Info("Dataset import complete")
	}

	r.logger.Info("Bootstrap complete for %s", r.cfg.Profile)
	return nil
}
