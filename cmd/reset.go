package cmd

import (
	"fmt"

	"github.com/bnema/telecom-usage-monitor/internal/application"
	"github.com/bnema/telecom-usage-monitor/internal/domain"
	"github.com/spf13/cobra"
)

func newResetCmd(app *app) *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "reset --account <id> [state-path]",
		Short: "Clear the failed-login counter of an account so it is queried again",
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

			id := domain.AccountID(accountID)
			if err := application.NewAccountService(store).ResetLoginFailures(s.ctx, id); err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "login failures reset for %s\n", id)
			return err
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "Account id (11-digit number)")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}
