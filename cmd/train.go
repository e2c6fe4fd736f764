package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/routeeta/core/prediction"
)

func newTrainCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "train",
		Short: "Fit the delay model on historical data",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)

			rep, err := opts.train(cmd, svc)
			if err != nil {
				return err
			}
			return printReport(cmd, rep)
		},
	}
}

// printReport writes R² as text since it may be NaN for tiny eval sets.
func printReport(cmd *cobra.Command, rep prediction.TrainingReport) error {
	out := cmd.OutOrStdout()
	if _, err := fmt.Fprintf(out, "Model trained with R^2 score: %.4f\n", rep.R2); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "fitter=%s samples=%d fit=%d eval=%d\n%s\n",
		rep.Fitter, rep.Samples, rep.FitSize, rep.EvalSize, rep.Coefficients)
	return err
}
