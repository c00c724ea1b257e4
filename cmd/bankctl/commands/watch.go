package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/eaglebank/banking/shared/events"
	redisClient "github.com/eaglebank/banking/shared/redis"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func watchCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print balance changes of the open session as they happen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := opts.authorized()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			redis, err := redisClient.NewClient(ctx, redisClient.Options{Addr: opts.redisAddr})
			if err != nil {
				return err
			}
			defer redis.Close()

			channel := events.BalanceChannel(st.SessionID)
			opts.logger.Debug("watching", zap.String("channel", channel))
			fmt.Fprintf(cmd.OutOrStdout(), "Watching session %s (Ctrl-C to stop)\n", st.SessionID)

			sub := events.NewSubscriber(redis.Client, events.SubscriberConfig{
				Channel: channel,
				Handler: printEvent(cmd.OutOrStdout()),
				Logger:  opts.logger,
			})
			if err := sub.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}
}

func printEvent(w io.Writer) events.Handler {
	return func(_ context.Context, event events.Event) error {
		switch event.Type {
		case events.BalanceUpdated:
			var data events.BalanceUpdatedEvent
			if err := events.DecodeData(event, &data); err != nil {
				return err
			}
			fmt.Fprintf(w, "[%s] %s %s %s. Balance: %s\n",
				event.Timestamp.Local().Format("15:04:05"), data.AccountType, data.Operation, data.Change, data.NewBalance)
		case events.SessionClosed:
			fmt.Fprintln(w, "Session closed.")
		}
		return nil
	}
}
