package commands

import (
	"fmt"
	"net/http"

	"github.com/eaglebank/banking/internal/client"
	"github.com/spf13/cobra"
)

func closeCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "close",
		Short: "Close the session and discard both accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.authorized(); err != nil {
				return err
			}
			err := opts.api.CloseSession(cmd.Context())
			// gone server-side already; still forget it locally
			if err != nil && !client.IsStatus(err, http.StatusNotFound) && !client.IsStatus(err, http.StatusUnauthorized) {
				return err
			}
			if err := clearState(opts.home); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Session closed.")
			return nil
		},
	}
}
