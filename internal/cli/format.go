// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spesecasa/cassa/internal/finance"
)

// FormatEUR formats an amount in Italian style.
// e.g., 1234.5 -> "€ 1.234,50", -80 -> "-€ 80,00"
func FormatEUR(amount decimal.Decimal) string {
	neg := amount.IsNegative()
	s := amount.Abs().StringFixed(2)

	intPart, fracPart, _ := strings.Cut(s, ".")

	var b strings.Builder
	remainder := len(intPart) % 3
	if remainder > 0 {
		b.WriteString(intPart[:remainder])
	}
	for i := remainder; i < len(intPart); i += 3 {
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(intPart[i : i+3])
	}

	out := "€ " + b.String() + "," + fracPart
	if neg {
		return "-" + out
	}
	return out
}

// FormatSignedEUR prefixes income with + and expenses with -.
func FormatSignedEUR(amount decimal.Decimal, income bool) string {
	if income {
		return "+" + FormatEUR(amount.Abs())
	}
	return "-" + FormatEUR(amount.Abs())
}

// FormatDate formats a date in Italian day-first order.
// e.g., 2025-03-15 -> "15/03/2025"
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("02/01/2006")
}

// FormatMonthYear returns the full Italian month name with the year.
// e.g., (3, 2025) -> "Marzo 2025"
func FormatMonthYear(month, year int) string {
	name := finance.MonthName(month)
	if name == "" {
		return fmt.Sprintf("%d", year)
	}
	return fmt.Sprintf("%s %d", name, year)
}

// FormatPercent formats a 0-100 percentage with no decimals.
func FormatPercent(pct float64) string {
	return fmt.Sprintf("%.0f%%", pct)
}

// FormatRecurrence describes a recurring cadence in Italian.
// e.g., ("monthly", 5) -> "mensile, giorno 5"
func FormatRecurrence(recurrenceType string, dayOfMonth int) string {
	var label string
	switch recurrenceType {
	case "monthly":
		label = "mensile"
	case "quarterly":
		label = "trimestrale"
	case "yearly":
		label = "annuale"
	default:
		label = recurrenceType
	}
	if dayOfMonth > 0 {
		return fmt.Sprintf("%s, giorno %d", label, dayOfMonth)
	}
	return label
}
