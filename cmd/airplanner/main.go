package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"air-trip-planner/internal/config"
	"air-trip-planner/internal/planclient"
	"air-trip-planner/internal/submission"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "airplanner",
		Short:         "A.I.R trip planner: form, planning service and Telegram bot",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newWebCmd(),
		newServiceCmd(),
		newTelegramCmd(),
		newPlanCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads .env and the configuration and builds the root logger.
func setup(cmd *cobra.Command) (*config.Config, zerolog.Logger, context.Context, error) {
	if err := godotenv.Load(); err != nil {
		fmt.Fprintf(os.Stderr, "No .env file loaded: %v\n", err)
	}

	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", cfg.LogLevel, err)
	}

	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Logger()
	ctx := logger.WithContext(cmd.Context())
	return cfg, logger, ctx, nil
}

// newSubmitter wires the orchestrator to the configured planning endpoint.
func newSubmitter(cfg *config.Config, logger zerolog.Logger) *submission.Submitter {
	client := planclient.NewClient(cfg.PlannerEndpoint, cfg.RequestTimeout)
	return submission.NewSubmitter(client, submission.Options{
		Mode:          cfg.FailureMode,
		FallbackDelay: cfg.FallbackDelay,
		Logger:        logger,
	})
}
