package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hammad983ae/sustaino-sub002/internal/assessment"
	"github.com/hammad983ae/sustaino-sub002/internal/server"
	"github.com/hammad983ae/sustaino-sub002/internal/store"
	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var configLocation string
	var envFile string
	var logLevel string
	var maxUploadSize string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the valuation and development API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := server.LoadDotEnv(envFile); err != nil {
				return err
			}
			cfg, err := server.LoadConfig(configLocation)
			if err != nil {
				return err
			}
			if err := applyUploadSize(cfg, maxUploadSize); err != nil {
				return err
			}

			logger, err := initializeLogger(cfg.Logging, logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return runServer(ctx, logger, cfg)
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultServerConfigFile, "path to server configuration file")
	cmd.Flags().StringVar(&envFile, "env-file", ".env", "path to a .env file with SUSTAINO_* overrides")
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level override (debug, info, warn, error)")
	cmd.Flags().StringVar(&maxUploadSize, "max-upload-size", "", "upload size limit override (e.g. 512KB, 10MB)")
	return cmd
}

// applyUploadSize overrides the configured upload limit when a flag value is given.
func applyUploadSize(cfg *server.Config, value string) error {
	if value == "" {
		return nil
	}
	size, err := server.ParseSize(value)
	if err != nil {
		return fmt.Errorf("invalid --max-upload-size: %w", err)
	}
	cfg.SetUploadSizeBytes(size)
	return nil
}

func runServer(ctx context.Context, logger *zap.Logger, cfg *server.Config) error {
	const op = "main.serve"

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	tables, err := zoning.LoadTables(cfg.TablesFile)
	if err != nil {
		return err
	}
	runner, err := assessment.NewRunner(logger, valuation.DefaultWeightTable(), tables)
	if err != nil {
		return err
	}

	opts := server.Options{
		MaxUploadSize:  cfg.UploadSizeBytes(),
		Version:        version,
		AllowedOrigins: cfg.AllowedOrigins,
	}
	if cfg.Database.DSN != "" {
		recordStore, err := store.Open(logger, cfg.Database.Driver, cfg.Database.DSN)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := recordStore.Close(); closeErr != nil {
				logger.Warn("failed to close record store",
					zap.String("op", op),
					zap.Error(closeErr),
				)
			}
		}()
		opts.Store = recordStore
	} else {
		logger.Info("no database configured, record endpoints disabled",
			zap.String("op", op),
		)
	}

	srv := &http.Server{
		Addr:              cfg.Address,
		Handler:           server.NewHandler(logger, runner, opts),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", op),
			zap.String("address", cfg.Address),
			zap.Int64("maxUploadSize", cfg.UploadSizeBytes()),
		)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down",
		zap.String("op", op),
	)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
