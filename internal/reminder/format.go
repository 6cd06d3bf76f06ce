package reminder

import (
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var amountPrinter = message.NewPrinter(language.English)

// formatAmount renders a monetary value with locale digit grouping and
// at most two decimal places: 600 -> "600", 1234.5 -> "1,234.5".
func formatAmount(v float64) string {
	return amountPrinter.Sprintf("%v", number.Decimal(v, number.MaxFractionDigits(2)))
}

// formatMoney prefixes the configured currency symbol, if any.
func formatMoney(symbol string, v float64) string {
	if symbol == "" {
		return formatAmount(v)
	}
	return symbol + " " + formatAmount(v)
}

// formatDate renders dates the way the ledger UI shows them.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2 Jan 2006")
}
