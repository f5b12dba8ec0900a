package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/finance"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// ColorForBudget returns green/yellow/red based on the budget health label.
func ColorForBudget(label string) lipgloss.Color {
	t := theme.Active
	switch label {
	case finance.LabelOverBudget:
		return t.Red
	case finance.LabelWarning:
		return t.Yellow
	default:
		return t.Green
	}
}

// BudgetBar renders a labeled budget gauge. pct is 0-100 and already
// capped; the color follows the health label, not the raw percentage.
func BudgetBar(label string, pct float64, healthLabel string, labelW, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	bar := progress.New(
		progress.WithSolidFill(string(ColorForBudget(healthLabel))),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	pctStyle := lipgloss.NewStyle().Foreground(ColorForBudget(healthLabel)).Bold(true)

	return labelStyle.Render(fmt.Sprintf("%-*s", labelW, label)) +
		" " +
		bar.ViewAs(pct/100) +
		" " +
		pctStyle.Render(fmt.Sprintf("%3.0f%%", pct)) +
		"  " +
		pctStyle.Render(healthLabel)
}

// GoalBar renders a savings goal gauge in the accent color.
func GoalBar(pct float64, barWidth int) string {
	t := theme.Active

	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	bar := progress.New(
		progress.WithSolidFill(string(t.Accent)),
		progress.WithWidth(barWidth),
		progress.WithoutPercentage(),
	)
	bar.EmptyColor = string(t.TextDim)

	pctStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	return bar.ViewAs(pct/100) + " " + pctStyle.Render(fmt.Sprintf("%3.0f%%", pct))
}

// StrengthMeter renders the password strength indicator: five segments plus
// the Italian label.
func StrengthMeter(score int) string {
	t := theme.Active

	if score < 0 {
		score = 0
	}
	if score > 5 {
		score = 5
	}

	var color lipgloss.Color
	label := finance.PasswordStrengthLabel(score)
	switch label {
	case finance.StrengthWeak:
		color = t.Red
	case finance.StrengthMedium:
		color = t.Yellow
	default:
		color = t.Green
	}

	filledStyle := lipgloss.NewStyle().Foreground(color)
	emptyStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	labelStyle := lipgloss.NewStyle().Foreground(color).Bold(true)

	return filledStyle.Render(strings.Repeat("▰", score)) +
		emptyStyle.Render(strings.Repeat("▱", 5-score)) +
		" " + labelStyle.Render(label)
}
