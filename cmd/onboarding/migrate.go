package main

import (
	"strings"
	"time"

	"github.com/spf13/cobra"

	"onboarding/backend/internal/database"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage schema migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up [profile]",
	Short: "Apply all pending migrations",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMigrateUp,
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [profile]",
	Short: "Roll back the most recent migration",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runMigrateDown,
}

var migrateNewDir string

var migrateNewCmd = &cobra.Command{
	Use:   "new <message>",
	Short: "Generate a new pair of revision files for review",
	Long: `Generate timestamped .up.sql and .down.sql stubs named after the message.
The stubs are written for human editing and are never applied automatically.`,
	RunE: runMigrateNew,
}

func init() {
	migrateNewCmd.Flags().StringVar(&migrateNewDir, "dir", migrations.DefaultDir, "directory to write revision files to")
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateNewCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrateUp(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadProfile(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}
	defer pool.Close()

	applied, err := migrations.New(pool, migrations.DefaultSource(), logger).Up(ctx)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}
	if applied == 0 {
		logger.Info("Schema already up to date")
	} else {
		logger.Info("Applied %d migrations", applied)
	}
	return nil
}

func runMigrateDown(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadProfile(args)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}
	defer pool.Close()

	version, err := migrations.New(pool, migrations.DefaultSource(), logger).Down(ctx)
	if err != nil {
		return errdefs.Dependency("migration", err)
	}
	logger.Info("Schema now below version %s", version)
	return nil
}

func runMigrateNew(cmd *cobra.Command, args []string) error {
	message := strings.TrimSpace(strings.Join(args, " "))

	upPath, downPath, err := migrations.Generate(migrateNewDir, message, time.Now())
	if err != nil {
		return err
	}

	cmd.Printf("Created %s\n", upPath)
	cmd.Printf("Created %s\n", downPath)
	cmd.Println("Review and edit both files before running migrate up.")
	return nil
}
