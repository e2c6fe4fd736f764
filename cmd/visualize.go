package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newVisualizeCmd(opts *rootOptions) *cobra.Command {
	var id, out string
	cmd := &cobra.Command{
		Use:   "visualize",
		Short: "Render a route on an HTML map",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			if out != "" {
				svc.Renderer.OutputDir = out
			}
			path, err := svc.Visualize(id)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Route visualization saved as %s\n", path)
			return err
		},
	}
	cmd.Flags().StringVar(&id, "route-id", "", "route identifier")
	cmd.Flags().StringVar(&out, "out", "", "output directory")
	_ = cmd.MarkFlagRequired("route-id")
	return cmd
}
