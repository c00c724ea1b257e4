package utils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var ErrInvalidAmount = errors.New("enter a valid positive number")

// ParseAmount turns user-entered text into a positive decimal amount.
// Non-numeric, zero and negative input is rejected.
func ParseAmount(text string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	if !d.IsPositive() {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, text)
	}
	return d, nil
}

// FormatAmount renders a monetary value with two decimal places.
func FormatAmount(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// ValidateSessionID reports whether id is a well-formed session identifier.
func ValidateSessionID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}
