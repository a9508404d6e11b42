package main

import (
	"github.com/spf13/cobra"

	"onboarding/backend/internal/database"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/migrations"
)

var statusCmd = &cobra.Command{
	Use:   "status [profile]",
	Short: "Report database existence and migration state",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadProfile(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	exists, err := database.Exists(ctx, cfg)
	if err != nil {
		return errdefs.Dependency("database", err)
	}
	if !exists {
		cmd.Printf("Database %s does not exist. Run setup first.\n", cfg.DBName)
		return nil
	}

	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return errdefs.Dependency("database", err)
	}
	defer pool.Close()

	m := migrations.New(pool, migrations.DefaultSource(), logger)
	version, err := m.Version(ctx)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}
	pending, err := m.Pending(ctx)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}

	cmd.Printf("Database:        %s\n", cfg.DBName)
	if version == "" {
		cmd.Println("Schema version:  none")
	} else {
		cmd.Printf("Schema version:  %s\n", version)
	}
	cmd.Printf("Pending:         %d\n", len(pending))
	return nil
}
