package money

import (
	"github.com/shopspring/decimal"
)

// Money represents a monetary amount with proper financial precision.
type Money struct {
	decimal.Decimal
}

// FromDecimal creates a Money from a decimal.Decimal.
func FromDecimal(d decimal.Decimal) Money {
	return Money{d}
}

// Round rounds the amount to cents using banker's rounding.
func (m Money) Round() Money {
	return Money{m.Decimal.Round(2)}
}

// Annual converts a monthly amount to annual.
func (m Money) Annual() Money {
	return Money{m.Decimal.Mul(decimal.NewFromInt(12))}
}

// Monthly converts an annual amount to monthly.
func (m Money) Monthly() Money {
	return Money{m.Decimal.Div(decimal.NewFromInt(12))}
}

// String returns the amount with two decimals.
func (m Money) String() string {
	return m.Decimal.StringFixed(2)
}

// Format renders the amount as a currency string with two decimals.
func (m Money) Format() string {
	return "$" + m.String()
}

// FormatWhole renders the amount as a currency string without cents.
func (m Money) FormatWhole() string {
	return "$" + m.Decimal.StringFixed(0)
}
