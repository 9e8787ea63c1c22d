package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	statusadapter "github.com/bnema/telecom-usage-monitor/internal/adapters/render/status"
	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/spf13/cobra"
)

func newStatusCmd(app *app) *cobra.Command {
	var asJSON bool
	var staleAfter time.Duration

	cmd := &cobra.Command{
		Use:   "status [state-path]",
		Short: "Show the last recorded usage and login state of every account",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.begin(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			store, err := openStateStore(args)
			if err != nil {
				return err
			}

			statuses, err := application.NewAccountService(store).Statuses(s.ctx)
			if err != nil {
				return err
			}

			return writeStatusesOutput(cmd, app, statuses, staleAfter, asJSON)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print statuses as JSON")
	cmd.Flags().DurationVar(&staleAfter, "stale-after", statusadapter.DefaultStaleAfter, "Mark snapshots older than this as stale")

	return cmd
}

func writeStatusesOutput(cmd *cobra.Command, app *app, statuses []application.AccountStatus, staleAfter time.Duration, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(statuses)
	}

	rendered, err := app.statusRenderer(statuses, statusadapter.RenderOptions{
		Now:        app.now(),
		StaleAfter: staleAfter,
	})
	if err != nil {
		return fmt.Errorf("render status: %w", err)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), rendered)
	return err
}
