package main

import (
	"fmt"

	"air-trip-planner/internal/llm"
	"air-trip-planner/internal/planner"
	"air-trip-planner/internal/server"

	"github.com/spf13/cobra"
)

func newServiceCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "service",
		Short: "Run the planning service that answers POST /generate-trip-plan",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}
			if err := cfg.RequireService(); err != nil {
				return err
			}

			var generators []llm.TextGenerator
			if cfg.GoogleAPIKey != "" {
				geminiClient, err := llm.NewGeminiClient(ctx, cfg.GoogleAPIKey)
				if err != nil {
					return fmt.Errorf("failed to initialize Gemini client: %w", err)
				}
				defer geminiClient.Close()

				for _, name := range cfg.GeminiModels {
					generators = append(generators, geminiClient.Model(name))
				}
			}
			if cfg.GroqAPIKey != "" {
				generators = append(generators, llm.NewGroqClient(cfg.GroqAPIKey, cfg.GroqModel))
			}

			names := make([]string, len(generators))
			for i, g := range generators {
				names[i] = g.Name()
			}
			logger.Info().Strs("models", names).Msg("generator chain ready")

			tripPlanner := planner.NewPlanner(logger, generators...)
			srv := server.New(logger, server.Config{
				Addr:           cfg.ServiceAddr,
				AllowedOrigins: cfg.AllowedOrigins,
			}, tripPlanner)
			return srv.Start(ctx)
		},
	}
}
