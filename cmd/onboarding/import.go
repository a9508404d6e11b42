package main

import (
	"github.com/spf13/cobra"

	"onboarding/backend/internal/database"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/importer"
	"onboarding/backend/internal/repository"
)

var importFile string

var importCmd = &cobra.Command{
	Use:   "import [profile]",
	Short: "Import the skin cancer dataset into the migrated database",
	Long: `Replace the contents of the skin_cancer_data table with the dataset
shipped in the binary, or with --file, a CSV on disk. The database must
already be set up and migrated.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runImport,
}

func init() {
	importCmd.Flags().StringVar(&importFile, "file", "", "CSV file to import instead of the embedded dataset")
	rootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadProfile(args)
	if err != nil {
		return err
	}
	logger.Info("Running import in %s environment", cfg.Profile)
	logger.Info("Using database: %s", cfg.MaskedConnString())

	ctx := cmd.Context()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return errdefs.Dependency("import", err)
	}
	defer pool.Close()

	imp := importer.New(repository.NewPostgresStore(pool), logger)

	var result *importer.Result
	if importFile != "" {
		result, err = imp.RunFile(ctx, importFile)
	} else {
		result, err = imp.RunDefault(ctx)
	}
	if err != nil {
		return errdefs.Dependency("import", err)
	}

	logger.Info("Import finished: %d imported, %d skipped, %d replaced",
		result.Imported, result.Skipped, result.Deleted)
	return nil
}
