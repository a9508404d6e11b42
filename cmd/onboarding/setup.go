package main

import (
	"context"

	"github.com/spf13/cobra"

	"onboarding/backend/internal/bootstrap"
	"onboarding/backend/internal/database"
	"onboarding/backend/internal/importer"
	"onboarding/backend/internal/migrations"
	"onboarding/backend/internal/repository"
)

var setupImport bool

var setupCmd = &cobra.Command{
	Use:   "setup [profile]",
	Short: "Create the profile's database and migrate it to the latest revision",
	Long: `Create the profile's database if it does not exist and apply all pending
schema migrations. With --import, the skin cancer dataset is imported
afterwards. Rerunning setup is always safe.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSetup,
}

func init() {
	setupCmd.Flags().BoolVar(&setupImport, "import", false, "import the skin cancer dataset after migrating")
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadProfile(args)
	if err != nil {
		return err
	}

	// Each stage opens its own pool: the target database only exists once
	// the provisioner has run.
	runner := bootstrap.NewRunner(cfg, logger,
		bootstrap.ProvisionerFunc(func(ctx context.Context) (bool, error) {
			return database.EnsureDatabase(ctx, cfg)
		}),
		bootstrap.MigratorFunc(func(ctx context.Context) (int, error) {
			pool, err := database.Connect(ctx, cfg)
			if err != nil {
				return 0, err
			}
			defer pool.Close()
			return migrations.New(pool, migrations.DefaultSource(), logger).Up(ctx)
		}),
		bootstrap.ImporterFunc(func(ctx context.Context) error {
			pool, err := database.Connect(ctx, cfg)
			if err != nil {
				return err
			}
			defer pool.Close()
			store := repository.NewPostgresStore(pool)
			_, err = importer.New(store, logger).RunDefault(ctx)
			return err
		}),
	)

	return runner.Run(cmd.Context(), bootstrap.Options{Import: setupImport})
}
