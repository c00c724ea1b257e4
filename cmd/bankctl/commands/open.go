package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func openCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "open",
		Short: "Open a session with an empty savings and current account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := loadState(opts.home); err == nil {
				return fmt.Errorf("a session is already open. run `bankctl close` first")
			}
			opened, err := opts.api.OpenSession(cmd.Context())
			if err != nil {
				return err
			}
			if err := saveState(opts.home, &sessionState{SessionID: opened.Session.ID, Token: opened.Token}); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Session opened: %s\n", opened.Session.ID)
			for _, a := range opened.Session.Accounts {
				fmt.Fprintf(out, "%-8s Balance: %s\n", a.AccountType, a.Balance)
			}
			return nil
		},
	}
}
