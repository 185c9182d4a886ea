// Package utils holds small presentation helpers shared by the HTTP layer.
package utils

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var moneyPrinter = message.NewPrinter(language.English)

// FormatMoney renders a decimal amount for display with a currency symbol,
// grouping separators and exactly two fraction digits: 1234.5 -> "$1,234.50"
func FormatMoney(amount float64) string {
	return moneyPrinter.Sprintf("$%v", number.Decimal(amount,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2)))
}

// FormatCount renders an integer count with grouping separators
func FormatCount(count int) string {
	return moneyPrinter.Sprintf("%v", number.Decimal(count))
}
