package main

import (
	"air-trip-planner/internal/web"

	"github.com/spf13/cobra"
)

func newWebCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "web",
		Short: "Serve the trip planning form",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}

			if cfg.PlannerEndpoint == "" {
				logger.Warn().Str("failure_mode", string(cfg.FailureMode)).Msg("PLANNER_ENDPOINT not set, every submission takes the failure path")
			}

			ui := web.NewWebUI(logger, web.Config{Addr: cfg.WebAddr}, newSubmitter(cfg, logger))
			return ui.Start(ctx)
		},
	}
}
