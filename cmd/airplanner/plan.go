package main

import (
	"errors"
	"fmt"

	"air-trip-planner/internal/render"
	"air-trip-planner/internal/trip"

	"github.com/spf13/cobra"
)

func newPlanCmd() *cobra.Command {
	var req trip.PlanRequest

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Submit one plan request from the command line and print the result",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, logger, ctx, err := setup(cmd)
			if err != nil {
				return err
			}

			outcome, err := newSubmitter(cfg, logger).Submit(ctx, req)
			if err != nil {
				return err
			}
			if !outcome.View.ShowResult() {
				return errors.New(outcome.Alert)
			}

			if outcome.View.Synthesized {
				fmt.Fprintln(cmd.OutOrStdout(), "(planner unreachable, showing a locally generated itinerary)")
			}
			fmt.Fprint(cmd.OutOrStdout(), render.Markdown(render.Render(*outcome.View.Itinerary)))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&req.Destination, "destination", "d", "", "destination")
	flags.StringVar(&req.Duration, "days", "", "trip length in days")
	flags.StringVarP(&req.Budget, "budget", "b", "", "budget per day in KRW")
	flags.StringSliceVarP(&req.Transport, "transport", "t", nil, "transport modes, comma separated")
	flags.StringVar(&req.Style, "style", "", "travel style")
	flags.StringVar(&req.Preference, "preference", "", "extra preferences")

	return cmd
}
