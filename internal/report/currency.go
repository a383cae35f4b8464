package report

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// currencyPrefix is the fixed symbol prepended to every monetary value.
const currencyPrefix = "₹"

var printer = message.NewPrinter(language.English)

// formatCurrency renders a monetary value with the fixed prefix, thousands
// separators, and exactly two fractional digits.
func formatCurrency(amount float64) string {
	return currencyPrefix + printer.Sprintf("%.2f", amount)
}
