package cmd

import (
	"fmt"

	"github.com/bnema/telecom-usage-monitor/internal/config"
	"github.com/spf13/cobra"
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "telemon [state-path]",
		Short: "Telecom usage monitor: query account balances and data usage, then notify",
		Long: "telemon logs in to every account listed in TELECOM_USER, summarizes balance, voice and data usage, " +
			"compares it with the previous run stored in the state document and pushes the report to the configured channels.\n\n" +
			"The state document defaults to telecom_state.toml in the working directory. When it is absent and a " +
			"telecom_config.json from an earlier JSON deployment exists, that file is used and kept in JSON.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	flags := rootCmd.PersistentFlags()
	flags.String("log-level", "info", "Log level (debug, info, warn, error)")
	flags.String("log-format", "console", "Log format (console, json)")
	flags.String("metrics-file", "", "Write Prometheus metrics to this textfile after a run")
	for key, name := range map[string]string{
		config.KeyLogLevel:    "log-level",
		config.KeyLogFormat:   "log-format",
		config.KeyMetricsFile: "metrics-file",
	} {
		if err := app.viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
				return fmt.Errorf("bind --%s: %w", name, err)
			}
			return rootCmd
		}
	}

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runBatch(cmd, app, args)
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
		newStatusCmd(app),
		newResetCmd(app),
	)

	return rootCmd
}
