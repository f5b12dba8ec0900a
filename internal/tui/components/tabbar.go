package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/tui/theme"
)

// Tab represents a single tab in the tab bar.
type Tab struct {
	Name      string
	Key       rune
	KeyPos    int  // position of the shortcut letter in the name (-1 if not in name)
	AdminOnly bool // hidden unless the user is a superuser
}

// Tabs defines all available tabs.
var Tabs = []Tab{
	{Name: "Dashboard", Key: 'd', KeyPos: 0},
	{Name: "Movimenti", Key: 'm', KeyPos: 0},
	{Name: "Budget", Key: 'b', KeyPos: 0},
	{Name: "Categorie", Key: 'c', KeyPos: 0},
	{Name: "Ricorrenti", Key: 'r', KeyPos: 0},
	{Name: "Obiettivi", Key: 'o', KeyPos: 0},
	{Name: "Famiglie", Key: 'f', KeyPos: 0, AdminOnly: true},
	{Name: "Impostazioni", Key: 'x', KeyPos: -1}, // x is not in "Impostazioni"
}

// VisibleTabs returns the tabs the current user may open.
func VisibleTabs(superuser bool) []Tab {
	if superuser {
		return Tabs
	}
	out := make([]Tab, 0, len(Tabs))
	for _, t := range Tabs {
		if !t.AdminOnly {
			out = append(out, t)
		}
	}
	return out
}

// RenderTabBar renders the tab bar with the given active index.
func RenderTabBar(tabs []Tab, activeIdx int, width int) string {
	t := theme.Active

	activeStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	inactiveStyle := lipgloss.NewStyle().
		Foreground(t.TextMuted)

	keyStyle := lipgloss.NewStyle().
		Foreground(t.Accent).
		Bold(true)

	dimKeyStyle := lipgloss.NewStyle().
		Foreground(t.TextDim)

	var parts []string
	for i, tab := range tabs {
		var rendered string
		if i == activeIdx {
			rendered = activeStyle.Render(tab.Name)
		} else if tab.KeyPos >= 0 && tab.KeyPos < len(tab.Name) {
			before := tab.Name[:tab.KeyPos]
			key := string(tab.Name[tab.KeyPos])
			after := tab.Name[tab.KeyPos+1:]
			rendered = inactiveStyle.Render(before) +
				dimKeyStyle.Render("[") + keyStyle.Render(key) + dimKeyStyle.Render("]") +
				inactiveStyle.Render(after)
		} else {
			rendered = inactiveStyle.Render(tab.Name) +
				dimKeyStyle.Render("[") + keyStyle.Render(string(tab.Key)) + dimKeyStyle.Render("]")
		}
		parts = append(parts, rendered)
	}

	joined := " " + strings.Join(parts, "  ")
	if width > 0 && lipgloss.Width(joined) > width {
		// Split into two rows on narrow terminals
		half := (len(parts) + 1) / 2
		return " " + strings.Join(parts[:half], "  ") + "\n " + strings.Join(parts[half:], "  ")
	}
	return joined
}

// TabIdxByKey returns the tab index for a given key press, or -1.
func TabIdxByKey(tabs []Tab, key rune) int {
	for i, tab := range tabs {
		if tab.Key == key {
			return i
		}
	}
	return -1
}
