package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/routeeta/core/model"
)

func newPredictCmd(opts *rootOptions) *cobra.Command {
	var (
		id               string
		weather, traffic float64
	)
	cmd := &cobra.Command{
		Use:   "predict",
		Short: "Predict the ETA of a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			if _, err := opts.train(cmd, svc); err != nil {
				return fmt.Errorf("train: %w", err)
			}
			p, err := svc.Predictor.PredictETA(cmd.Context(), id, weather, traffic)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Predicted ETA for %s: %s (baseline %s, delay %.2f min)\n",
				p.RouteID, p.ETA, p.Baseline, p.DelayMinutes)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "route-id", "", "route identifier")
	cmd.Flags().Float64Var(&weather, "weather", model.NeutralFactor, "weather factor")
	cmd.Flags().Float64Var(&traffic, "traffic", model.NeutralFactor, "traffic factor")
	_ = cmd.MarkFlagRequired("route-id")
	return cmd
}
