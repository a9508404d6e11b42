package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"onboarding/backend/internal/api"
	"onboarding/backend/internal/database"
	"onboarding/backend/internal/errdefs"
	"onboarding/backend/internal/logging"
	"onboarding/backend/internal/repository"
)

var (
	serveHost  string
	servePort  int
	serveDebug bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [profile]",
	Short: "Start the HTTP API server",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "host to bind to (overrides SERVER_HOST)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to bind to (overrides SERVER_PORT)")
	serveCmd.Flags().BoolVar(&serveDebug, "debug", false, "enable debug mode and debug logging")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, err := loadProfile(args)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("host") {
		cfg.ServerHost = serveHost
	}
	if cmd.Flags().Changed("port") {
		cfg.ServerPort = servePort
	}
	if serveDebug {
		cfg.Debug = true
		logger = logging.NewLoggerWithLevel(logging.LevelDebug)
	}

	ctx := cmd.Context()
	pool, err := database.Connect(ctx, cfg)
	if err != nil {
		return errdefs.Dependency("server", err)
	}
	defer pool.Close()
	logger.Info("Database connected")

	e := api.NewEcho(cfg, repository.NewPostgresStore(pool))

	server := &http.Server{
		Addr:         cfg.ServerAddr(),
		Handler:      e,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("Server starting on %s (profile %s)", cfg.ServerAddr(), cfg.Profile)
		serverErrors <- server.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return errdefs.Dependency("server", err)
		}
	case <-ctx.Done():
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error: %v", err)
			if err := server.Close(); err != nil {
				logger.Error("Server close error: %v", err)
			}
		}
		logger.Info("Server stopped gracefully")
	}

	return nil
}
