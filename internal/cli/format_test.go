package cli

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatEUR(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "€ 0,00"},
		{"12.5", "€ 12,50"},
		{"1234.56", "€ 1.234,56"},
		{"1234567.89", "€ 1.234.567,89"},
		{"-80", "-€ 80,00"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatEUR(decimal.RequireFromString(tt.in)))
		})
	}
}

func TestFormatSignedEUR(t *testing.T) {
	v := decimal.RequireFromString("50")
	assert.Equal(t, "+€ 50,00", FormatSignedEUR(v, true))
	assert.Equal(t, "-€ 50,00", FormatSignedEUR(v, false))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "15/03/2025", FormatDate(time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "", FormatDate(time.Time{}))
}

func TestFormatMonthYear(t *testing.T) {
	assert.Equal(t, "Marzo 2025", FormatMonthYear(3, 2025))
	assert.Equal(t, "Dicembre 2024", FormatMonthYear(12, 2024))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "90%", FormatPercent(90))
	assert.Equal(t, "100%", FormatPercent(99.6))
}

func TestFormatRecurrence(t *testing.T) {
	assert.Equal(t, "mensile, giorno 5", FormatRecurrence("monthly", 5))
	assert.Equal(t, "annuale", FormatRecurrence("yearly", 0))
}
