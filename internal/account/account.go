// Package account holds the balance rules for savings and current accounts.
//
// Every rejected operation leaves the balance exactly as it was; the outcome
// is reported through the returned error.
package account

import (
	"sync"

	"github.com/shopspring/decimal"
)

// Account is a balance owned by one session. It is safe for concurrent use.
type Account struct {
	mu      sync.Mutex
	kind    Kind
	balance decimal.Decimal
}

// New returns an empty account of the given kind.
func New(kind Kind) *Account {
	return &Account{kind: kind, balance: decimal.Zero}
}

func NewSavings() *Account { return New(Savings) }

func NewCurrent() *Account { return New(Current) }

func (a *Account) Kind() Kind { return a.kind }

func (a *Account) MinimumBalance() decimal.Decimal { return a.kind.MinimumBalance() }

// Balance returns the current balance.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.balance
}

// Deposit adds amount to the balance. Non-positive amounts are rejected.
func (a *Account) Deposit(amount decimal.Decimal) error {
	_, err := a.Credit(amount)
	return err
}

// Credit is Deposit that also returns the balance it left behind.
func (a *Account) Credit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.balance = a.balance.Add(amount)
	return a.balance, nil
}

// Withdraw removes amount only if the remaining balance stays at or above
// the minimum for the account's kind. There are no partial withdrawals.
func (a *Account) Withdraw(amount decimal.Decimal) error {
	_, err := a.Debit(amount)
	return err
}

// Debit is Withdraw that also returns the balance it left behind.
func (a *Account) Debit(amount decimal.Decimal) (decimal.Decimal, error) {
	if !amount.IsPositive() {
		return decimal.Zero, ErrInvalidAmount
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	remaining := a.balance.Sub(amount)
	if remaining.LessThan(a.kind.MinimumBalance()) {
		return decimal.Zero, ErrInsufficientFunds
	}
	a.balance = remaining
	return a.balance, nil
}

// CalculateInterest credits balance*rate and returns the amount credited.
// Repeated calls compound. Only savings accounts accrue interest.
func (a *Account) CalculateInterest() (decimal.Decimal, error) {
	interest, _, err := a.AccrueInterest()
	return interest, err
}

// AccrueInterest is CalculateInterest that also returns the new balance.
func (a *Account) AccrueInterest() (interest, balance decimal.Decimal, err error) {
	if !a.kind.AccruesInterest() {
		return decimal.Zero, decimal.Zero, ErrInterestNotSupported
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	interest = a.balance.Mul(a.kind.InterestRate())
	a.balance = a.balance.Add(interest)
	return interest, a.balance, nil
}
