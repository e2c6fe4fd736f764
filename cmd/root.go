package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/routeeta/app"
	"github.com/kilianp07/routeeta/config"
	"github.com/kilianp07/routeeta/core/prediction"
	"github.com/kilianp07/routeeta/infra/history"
	"github.com/kilianp07/routeeta/infra/logger"
)

type rootOptions struct {
	cfgPath     string
	metricsAddr string
	historyPath string
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "routeeta",
		Short:         "Route ETA prediction and delay optimization",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.cfgPath, "config", "c", "config.yaml", "configuration file")
	root.PersistentFlags().StringVar(&opts.metricsAddr, "metrics-addr", "",
		"serve Prometheus metrics on this address; the process stays up after the command until interrupted")
	root.PersistentPostRunE = opts.holdMetrics
	root.PersistentFlags().StringVar(&opts.historyPath, "history", "", "historical delay data (.csv or SQLite file)")

	root.AddCommand(
		newRouteCmd(opts),
		newTrainCmd(opts),
		newPredictCmd(opts),
		newOptimizeCmd(opts),
		newVisualizeCmd(opts),
		newJournalCmd(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// newService loads the configuration and builds the service. The caller must
// Close it.
func (o *rootOptions) newService(cmd *cobra.Command) (*app.Service, error) {
	cfg, err := config.Load(o.cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return nil, err
	}
	svc.SetMetricsAddr(o.metricsAddr)
	svc.StartMetrics(cmd.Context())
	return svc, nil
}

// holdMetrics keeps the /metrics endpoint of a one-shot command reachable
// until the context is cancelled.
func (o *rootOptions) holdMetrics(cmd *cobra.Command, args []string) error {
	if o.metricsAddr == "" {
		return nil
	}
	if _, err := fmt.Fprintf(cmd.ErrOrStderr(), "serving metrics on %s, press Ctrl+C to exit\n", o.metricsAddr); err != nil {
		return err
	}
	<-cmd.Context().Done()
	return nil
}

// historySource returns the source selected by --history, or nil.
func (o *rootOptions) historySource() history.Source {
	if o.historyPath == "" {
		return nil
	}
	switch strings.ToLower(filepath.Ext(o.historyPath)) {
	case ".db", ".sqlite", ".sqlite3":
		return history.SQLiteSource{Path: o.historyPath}
	default:
		return history.CSVSource{Path: o.historyPath}
	}
}

// train fits the model from --history or the configured source.
func (o *rootOptions) train(cmd *cobra.Command, svc *app.Service) (prediction.TrainingReport, error) {
	if src := o.historySource(); src != nil {
		return svc.TrainFrom(cmd.Context(), src)
	}
	return svc.TrainFromHistory(cmd.Context())
}

func closeService(cmd *cobra.Command, svc *app.Service) {
	if err := svc.Close(); err != nil {
		logger.New("cmd").Errorf("service close: %v", err)
		if _, ferr := fmt.Fprintf(cmd.ErrOrStderr(), "error while closing service: %v\n", err); ferr != nil {
			fmt.Println("failed to write to stderr:", ferr)
		}
	}
}
