package account

import "github.com/shopspring/decimal"

// Bank routes deposits to whichever account it is handed. It holds no state.
type Bank struct{}

func NewBank() *Bank {
	return &Bank{}
}

// Deposit forwards amount to target. target must not be nil.
func (b *Bank) Deposit(amount decimal.Decimal, target *Account) error {
	_, err := b.Credit(amount, target)
	return err
}

// Credit is Deposit that also returns target's resulting balance.
func (b *Bank) Credit(amount decimal.Decimal, target *Account) (decimal.Decimal, error) {
	if target == nil {
		panic("account: deposit into nil account")
	}
	return target.Credit(amount)
}
