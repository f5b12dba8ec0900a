package components

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/tui/theme"
)

// RenderStatusBar renders the bottom status bar with the logged-in user on
// the right.
func RenderStatusBar(width int, user, period string) string {
	t := theme.Active

	style := lipgloss.NewStyle().
		Foreground(t.TextMuted).
		Width(width)

	left := " [?]aiuto  [/]cerca  [n]uovo  [q]esci"
	right := ""
	if period != "" {
		right = period
	}
	if user != "" {
		if right != "" {
			right += "  "
		}
		right += fmt.Sprintf("%s ", user)
	}

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	bar := left
	for i := 0; i < padding; i++ {
		bar += " "
	}
	bar += right

	return style.Render(bar)
}
