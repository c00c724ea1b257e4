package cqrs

import "github.com/shopspring/decimal"

type OpenSessionCommand struct{}

type CloseSessionCommand struct {
	SessionID string
}

type DepositCommand struct {
	SessionID   string
	AccountType string
	Amount      decimal.Decimal
}

type WithdrawCommand struct {
	SessionID   string
	AccountType string
	Amount      decimal.Decimal
}

// ApplyInterestCommand credits one period of interest to a savings account.
type ApplyInterestCommand struct {
	SessionID   string
	AccountType string
}
