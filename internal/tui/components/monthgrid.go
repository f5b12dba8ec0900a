package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/finance"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// RenderMonthGrid renders the month picker: a year header and a 4x3 grid of
// month abbreviations with the selection highlighted.
func RenderMonthGrid(selMonth, selYear int, years []int) string {
	t := theme.Active

	yearStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
	arrowStyle := lipgloss.NewStyle().Foreground(t.Accent)
	dimArrowStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	monthStyle := lipgloss.NewStyle().Foreground(t.TextMuted).Padding(0, 1)
	selectedStyle := lipgloss.NewStyle().
		Foreground(t.TextPrimary).
		Background(t.AccentDim).
		Bold(true).
		Padding(0, 1)
	hintStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	prevArrow := arrowStyle.Render("◂")
	nextArrow := arrowStyle.Render("▸")
	if len(years) > 0 {
		if selYear <= years[0] {
			prevArrow = dimArrowStyle.Render("◂")
		}
		if selYear >= years[len(years)-1] {
			nextArrow = dimArrowStyle.Render("▸")
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("  %s %s %s\n\n", prevArrow, yearStyle.Render(fmt.Sprintf("%d", selYear)), nextArrow))

	for row := 0; row < 4; row++ {
		b.WriteString("  ")
		for col := 0; col < 3; col++ {
			m := row*3 + col + 1
			name := finance.MonthShort(m)
			if m == selMonth {
				b.WriteString(selectedStyle.Render(name))
			} else {
				b.WriteString(monthStyle.Render(name))
			}
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(hintStyle.Render("  frecce: sposta  h/l: anno  Invio: conferma  Esc: annulla"))
	return b.String()
}

// StepYear moves selYear within the available years list. A nil list allows
// free movement.
func StepYear(selYear, delta int, years []int) int {
	next := selYear + delta
	if len(years) == 0 {
		return next
	}
	if next < years[0] {
		return years[0]
	}
	if next > years[len(years)-1] {
		return years[len(years)-1]
	}
	return next
}

// StepMonth moves the month selection by delta, wrapping within 1..12.
func StepMonth(selMonth, delta int) int {
	m := (selMonth - 1 + delta) % 12
	if m < 0 {
		m += 12
	}
	return m + 1
}
