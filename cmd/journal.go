package cmd

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/routeeta/core/journal"
	"github.com/kilianp07/routeeta/pkg/export"
)

func newJournalCmd(opts *rootOptions) *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Prediction journal commands",
	}

	var (
		q      journal.Query
		since  time.Duration
		format string
	)
	lsCmd := &cobra.Command{
		Use:   "ls",
		Short: "List journaled predictions",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := opts.newService(cmd)
			if err != nil {
				return err
			}
			defer closeService(cmd, svc)
			if since > 0 {
				q.Start = time.Now().Add(-since)
			}
			recs, err := svc.QueryJournal(cmd.Context(), q)
			if err != nil {
				return err
			}
			return export.WriteRecords(cmd.OutOrStdout(), format, recs)
		},
	}
	lsCmd.Flags().StringVar(&q.RouteID, "route-id", "", "only this route")
	lsCmd.Flags().StringVar(&q.Outcome, "outcome", "", "only this outcome (ok, zero_distance, not_found, not_ready, invalid_input)")
	lsCmd.Flags().DurationVar(&since, "since", 0, "only records newer than this duration, e.g. 24h")
	lsCmd.Flags().StringVar(&format, "format", export.FormatTable, "output format: table, json or csv")

	journalCmd.AddCommand(lsCmd)
	return journalCmd
}
