package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/routeeta/pkg/export"
)

func newOptimizeCmd(opts *rootOptions) *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "optimize",
		Short: "Apply the delay reduction to every route",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			if _, err := opts.train(cmd, svc); err != nil {
				return fmt.Errorf("train: %w", err)
			}
			routes, err := svc.Predictor.OptimizeAll(cmd.Context())
			if err != nil {
				return err
			}
			return export.Write(cmd.OutOrStdout(), format, routes)
		},
	}
	cmd.Flags().StringVar(&format, "format", export.FormatTable, "output format: table, json or csv")
	return cmd
}
