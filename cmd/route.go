package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRouteCmd(opts *rootOptions) *cobra.Command {
	routeCmd := &cobra.Command{
		Use:   "route",
		Short: "Route registry commands",
	}

	var (
		id, start, end string
		distance       float64
	)
	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a route",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			r, err := svc.AddRoute(id, start, end, distance)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added %s\n", r)
			return err
		},
	}
	addCmd.Flags().StringVar(&id, "route-id", "", "route identifier")
	addCmd.Flags().StringVar(&start, "start", "", "start location")
	addCmd.Flags().StringVar(&end, "end", "", "end location")
	addCmd.Flags().Float64Var(&distance, "distance", 0, "distance in km")
	_ = addCmd.MarkFlagRequired("route-id")
	_ = addCmd.MarkFlagRequired("distance")

	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List registered routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			for _, r := range svc.Routes.List() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\n", r); err != nil {
					return err
				}
			}
			return nil
		},
	}

	routeCmd.AddCommand(addCmd, lsCmd)
	return routeCmd
}
