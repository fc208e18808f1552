package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kimjbstar/korea-public-village-forecast/internal/config"
	"github.com/kimjbstar/korea-public-village-forecast/pkg/logger"
	"github.com/kimjbstar/korea-public-village-forecast/pkg/telemetry"
)

var (
	configPath string
	log        *logger.Logger
	tele       *telemetry.Telemetry
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "forecast-cli",
		Short: "Korea Meteorological Administration village forecast client",
		Long: `Query the KMA village forecast service (observations, ultra-short-term and
village forecasts, publication versions), convert between lat/lng and the
forecast grid, or serve the same operations over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initializeServices(cmd.Context())
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			shutdownServices()
			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to configuration file (default: ./config.yaml)")

	cmd.AddCommand(serverCmd())
	cmd.AddCommand(observationCmd())
	cmd.AddCommand(forecastCmd())
	cmd.AddCommand(versionCmd())
	cmd.AddCommand(gridCmd())

	return cmd
}

func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigChan
		if log != nil {
			log.Info("Received shutdown signal", zap.String("signal", sig.String()))
		}
		cancel()
	}()

	return rootCmd().ExecuteContext(ctx)
}

func initializeServices(ctx context.Context) error {
	// 1. Load config
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// 2. Set config
	// Having config in atomic allows changing it during runtime
	config.SetConfig(cfg)

	// 3. Initialize logger
	log, err = logger.New(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	// 4. Initialize telemetry; tracing is optional, so fall back to a no-op tracer
	tele, err = telemetry.New(ctx, cfg.Telemetry, cfg.Version)
	if err != nil {
		log.Warn("Failed to initialize telemetry", zap.Error(err))
		tele = telemetry.NewDisabled()
	}

	return nil
}

func shutdownServices() {
	if tele != nil {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := tele.Shutdown(ctx); err != nil && log != nil {
			log.Warn("Failed to shut down telemetry", zap.Error(err))
		}
	}
	if log != nil {
		_ = log.Sync()
	}
}
