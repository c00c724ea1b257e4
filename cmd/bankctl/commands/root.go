package commands

import (
	"os"
	"path/filepath"

	"github.com/eaglebank/banking/internal/client"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	home      string
	serverURL string
	redisAddr string
	verbose   bool

	api    *client.HTTPClient
	logger *zap.Logger
}

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "bankctl",
		Short:         "Savings and current accounts from the terminal",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.home == "" {
				dir, err := os.UserHomeDir()
				if err != nil {
					return err
				}
				opts.home = filepath.Join(dir, ".bankctl")
			}
			if err := os.MkdirAll(opts.home, 0o700); err != nil {
				return err
			}

			opts.logger = zap.NewNop()
			if opts.verbose {
				logger, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				opts.logger = logger
			}

			opts.api = client.NewHTTP(opts.serverURL, "")
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.home, "home", "", "state dir (default ~/.bankctl)")
	root.PersistentFlags().StringVar(&opts.serverURL, "server", "http://127.0.0.1:8083", "account service base URL")
	root.PersistentFlags().StringVar(&opts.redisAddr, "redis", "localhost:6379", "redis address for watch")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "log diagnostics to stderr")

	root.AddCommand(
		openCmd(opts),
		depositCmd(opts),
		withdrawCmd(opts),
		interestCmd(opts),
		balanceCmd(opts),
		closeCmd(opts),
		watchCmd(opts),
	)
	return root
}

// authorized loads the saved session and points the client at it.
func (o *options) authorized() (*sessionState, error) {
	st, err := loadState(o.home)
	if err != nil {
		return nil, err
	}
	o.api.Token = st.Token
	return st, nil
}
