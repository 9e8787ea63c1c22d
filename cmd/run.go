package cmd

import (
	carrieradapter "github.com/bnema/telecom-usage-monitor/internal/adapters/carrier"
	"github.com/bnema/telecom-usage-monitor/internal/adapters/metrics/textfile"
	"github.com/bnema/telecom-usage-monitor/internal/adapters/notify"
	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run [state-path]",
		Short: "Query every configured account and send the usage report",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(cmd, app, args)
		},
	}
}

func runBatch(cmd *cobra.Command, app *app, args []string) error {
	s, err := app.begin(cmd)
	if err != nil {
		return err
	}
	defer s.close()

	if err := s.cfg.RequireAccounts(); err != nil {
		return err
	}

	store, err := openStateStore(args)
	if err != nil {
		return err
	}

	carrier, err := carrieradapter.NewClient(carrieradapter.API{
		LoginBaseURL: s.cfg.Carrier.LoginBaseURL,
		BaseURL:      s.cfg.Carrier.APIBaseURL,
	}, s.cfg.Carrier.Timeout, s.cfg.Carrier.RSAPublicKey)
	if err != nil {
		return err
	}

	metrics := textfile.NewRecorder(s.cfg.MetricsFile)
	processor := application.NewProcessor(carrier, store, app.clock, metrics, application.ProcessorOptions{
		IncludeAddOnPackages: s.cfg.IncludeAddOnPackages,
	})
	notifiers := notify.NewFactory(notify.FactoryOptions{
		LookupEnv:  app.lookupEnv,
		Console:    cmd.OutOrStdout(),
		HTTPClient: app.httpClient,
	})

	s.log.Info("run started", zap.String("state", store.Path()), zap.Int("batch_size", s.cfg.BatchSize))
	report, err := application.NewOrchestrator(store, processor, notifiers, metrics, s.cfg.BatchSize).Run(s.ctx, s.cfg.Accounts)
	if err != nil {
		return err
	}

	succeeded := 0
	for _, fragment := range report.Fragments() {
		if fragment.OK() {
			succeeded++
		}
	}
	s.log.Info("run finished", zap.Int("fragments", len(report.Fragments())), zap.Int("succeeded", succeeded))

	return nil
}
