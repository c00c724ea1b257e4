package account

import "errors"

var (
	// ErrInvalidAmount is returned for a zero or negative amount.
	ErrInvalidAmount = errors.New("amount must be greater than zero")

	// ErrInsufficientFunds is returned when a withdrawal would take the
	// balance below the account's minimum.
	ErrInsufficientFunds = errors.New("minimum balance not maintained")

	ErrInterestNotSupported = errors.New("interest is only available on savings accounts")

	ErrUnknownKind = errors.New("unknown account type")
)
