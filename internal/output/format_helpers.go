package output

import (
	"github.com/shopspring/decimal"

	"github.com/rpsim/portfolio-simulator/pkg/money"
)

// FormatCurrency formats a decimal as USD currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Decimal) string {
	return money.FromDecimal(amount).Format()
}

// FormatCurrencyWhole formats a decimal as USD currency without cents.
func FormatCurrencyWhole(amount decimal.Decimal) string {
	return money.FromDecimal(amount).FormatWhole()
}

// FormatPercentage formats a decimal fraction as a percentage with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string {
	return amount.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}
