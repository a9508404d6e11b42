package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"onboarding/backend/internal/config"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/logging"
)

// rootCmd is the entry point of the onboarding CLI. Every subcommand takes
// an optional profile argument (local, dev or prod) defaulting to local.
var rootCmd = &cobra.Command{
	Use:   "onboarding",
	Short: "Bootstrap and serve the onboarding backend",
	Long: `Bootstrap and serve the onboarding backend.

Each subcommand takes an optional environment profile (` +
		strings.Join(config.Profiles(), ", ") + `; default ` + config.DefaultProfile + `)
selecting which env/<profile>.env file and which database are targeted.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the CLI. Any failure is printed and reported as a non-nil
// error so main can exit 1.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if err == nil {
		return nil
	}
	if errdefs.IsUsage(err) {
		fmt.Fprintf(os.Stderr, "Usage error: %v\n", err)
	} else {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// profileArg returns the positional profile argument or the default.
func profileArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return config.DefaultProfile
}

// loadProfile validates the profile, loads its configuration and builds a
// logger honoring LOG_LEVEL and DEBUG.
func loadProfile(args []string) (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(profileArg(args))
	if err != nil {
		return nil, nil, err
	}

	level := logging.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = logging.LevelDebug
	}
	logger := logging.NewLoggerWithLevel(level)
	logger.Debug("Configuration loaded for profile %s: %s", cfg.Profile, cfg.MaskedConnString())

	return cfg, logger, nil
}
