package account

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind tags an account with its variant. The variant fixes the minimum
// balance and whether interest accrues.
type Kind int

const (
	Savings Kind = iota + 1
	Current
)

var (
	savingsMinimum = decimal.NewFromInt(50)
	currentMinimum = decimal.NewFromInt(200)
	savingsRate    = decimal.RequireFromString("0.05")
)

func (k Kind) String() string {
	switch k {
	case Savings:
		return "savings"
	case Current:
		return "current"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ParseKind maps "savings" or "current" (case-insensitive) to a Kind.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "savings":
		return Savings, nil
	case "current":
		return Current, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// MinimumBalance is the floor a withdrawal may not cross.
func (k Kind) MinimumBalance() decimal.Decimal {
	switch k {
	case Savings:
		return savingsMinimum
	case Current:
		return currentMinimum
	}
	panic(fmt.Sprintf("account: minimum balance for unknown %s", k))
}

// InterestRate is zero for variants without interest.
func (k Kind) InterestRate() decimal.Decimal {
	if k == Savings {
		return savingsRate
	}
	return decimal.Zero
}

func (k Kind) AccruesInterest() bool {
	return k == Savings
}

// Kinds lists every variant in display order.
func Kinds() []Kind {
	return []Kind{Savings, Current}
}
