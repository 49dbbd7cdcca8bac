// Package core provides the expense record and amount handling shared by the
// parser, the ledger and the reply templates.
package core

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// MaxExponent bounds the decimal exponent of any parsed amount in either
	// direction. Rendering or rescaling a decimal costs time proportional to
	// its exponent, so "1e30000000" is refused before it reaches arithmetic.
	MaxExponent = 32

	// MaxFractionDigits is the finest precision accepted for a new expense.
	MaxFractionDigits = 8
)

// MaxAmount is the largest amount a single expense may carry.
var MaxAmount = Amount{Decimal: decimal.New(1, 12)}

// Amount is a decimal money value. Trailing zeros are dropped when rendered,
// so "250.50" prints as "250.5".
type Amount struct {
	decimal.Decimal
}

// ZeroAmount is the additive identity.
var ZeroAmount = Amount{Decimal: decimal.Zero}

// ParsePositiveAmount parses s as a strictly positive decimal no larger than
// MaxAmount and with at most MaxFractionDigits decimals.
//
// Examples:
//
//	ParsePositiveAmount("250.50") -> 250.5, nil
//	ParsePositiveAmount("-5")     -> ErrInvalidAmount
//	ParsePositiveAmount("abc")    -> ErrInvalidAmount
//	ParsePositiveAmount("1e400")  -> ErrAmountOutOfRange
func ParsePositiveAmount(s string) (Amount, error) {
	a, err := ParseAmount(s)
	if err != nil {
		return Amount{}, err
	}
	if err := a.Validate(); err != nil {
		return Amount{}, err
	}
	return a, nil
}

// ParseAmount parses any decimal, sign included. Used when reading back
// ledger cells, where validation is the caller's concern. Exponents beyond
// MaxExponent are rejected with ErrAmountOutOfRange.
func ParseAmount(s string) (Amount, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}, ErrInvalidAmount
	}
	if exp := d.Exponent(); exp > MaxExponent || exp < -MaxExponent {
		return Amount{}, ErrAmountOutOfRange
	}
	return Amount{Decimal: d}, nil
}

// Validate checks that a is usable as the amount of a new expense.
func (a Amount) Validate() error {
	if !a.Decimal.IsPositive() {
		return ErrInvalidAmount
	}
	if exp := a.Decimal.Exponent(); exp > MaxExponent || exp < -MaxFractionDigits {
		return ErrAmountOutOfRange
	}
	if a.Decimal.GreaterThan(MaxAmount.Decimal) {
		return ErrAmountOutOfRange
	}
	return nil
}

// Add returns a + b.
func (a Amount) Add(b Amount) Amount {
	return Amount{Decimal: a.Decimal.Add(b.Decimal)}
}

// Equal reports whether a and b are numerically equal.
func (a Amount) Equal(b Amount) bool {
	return a.Decimal.Equal(b.Decimal)
}

// String renders the amount without trailing zeros.
func (a Amount) String() string {
	return a.Decimal.String()
}
