package commands

import (
	"fmt"
	"io"

	"github.com/eaglebank/banking/internal/account"
	"github.com/eaglebank/banking/shared/models"
	"github.com/eaglebank/banking/shared/utils"
	"github.com/spf13/cobra"
)

var accountTypes = []string{account.Savings.String(), account.Current.String()}

// dialogError carries message text shown to the user verbatim.
type dialogError string

func (e dialogError) Error() string { return string(e) }

const (
	errDepositAmount    dialogError = "Enter a valid positive number for deposit."
	errWithdrawalAmount dialogError = "Enter a valid positive number for withdrawal."
)

// amountCmd stops flag parsing at the first positional so a negative amount
// such as -5 reaches amount validation instead of being read as a flag.
func amountCmd(cmd *cobra.Command) *cobra.Command {
	cmd.Flags().SetInterspersed(false)
	return cmd
}

func depositCmd(opts *options) *cobra.Command {
	return amountCmd(&cobra.Command{
		Use:       "deposit <savings|current> <amount>",
		Short:     "Deposit money into an account",
		Args:      cobra.ExactArgs(2),
		ValidArgs: accountTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := account.ParseKind(args[0])
			if err != nil {
				return err
			}
			amount, err := utils.ParseAmount(args[1])
			if err != nil {
				return errDepositAmount
			}
			if _, err := opts.authorized(); err != nil {
				return err
			}
			view, err := opts.api.Deposit(cmd.Context(), kind.String(), amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Deposit successful!")
			printBalance(cmd.OutOrStdout(), view)
			return nil
		},
	})
}

func withdrawCmd(opts *options) *cobra.Command {
	return amountCmd(&cobra.Command{
		Use:       "withdraw <savings|current> <amount>",
		Short:     "Withdraw money, keeping the account's minimum balance",
		Args:      cobra.ExactArgs(2),
		ValidArgs: accountTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := account.ParseKind(args[0])
			if err != nil {
				return err
			}
			amount, err := utils.ParseAmount(args[1])
			if err != nil {
				return errWithdrawalAmount
			}
			if _, err := opts.authorized(); err != nil {
				return err
			}
			view, err := opts.api.Withdraw(cmd.Context(), kind.String(), amount)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Withdrawal successful!")
			printBalance(cmd.OutOrStdout(), view)
			return nil
		},
	})
}

func interestCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "interest",
		Short: "Apply one period of interest to the savings account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.authorized(); err != nil {
				return err
			}
			view, err := opts.api.ApplyInterest(cmd.Context(), account.Savings.String())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Interest applied.")
			printBalance(cmd.OutOrStdout(), view)
			return nil
		},
	}
}

func balanceCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:       "balance [savings|current]",
		Short:     "Show account balances",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: accountTypes,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := opts.authorized(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(args) == 1 {
				kind, err := account.ParseKind(args[0])
				if err != nil {
					return err
				}
				view, err := opts.api.GetAccount(cmd.Context(), kind.String())
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Current balance: %s\n", view.Balance)
				return nil
			}
			views, err := opts.api.ListAccounts(cmd.Context())
			if err != nil {
				return err
			}
			for _, v := range views {
				fmt.Fprintf(out, "%-8s Balance: %s\n", v.AccountType, v.Balance)
			}
			return nil
		},
	}
}

func printBalance(w io.Writer, view *models.AccountView) {
	fmt.Fprintf(w, "Balance: %s\n", view.Balance)
}
