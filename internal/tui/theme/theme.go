// Package theme defines color themes for the cassa TUI.
package theme

import "github.com/charmbracelet/lipgloss"

// Theme defines the color roles used throughout the TUI.
type Theme struct {
	Name          string
	Background    lipgloss.Color // Main app background
	Surface       lipgloss.Color // Card/panel backgrounds
	SurfaceHover  lipgloss.Color // Highlighted surface (active tab, selected row)
	SurfaceBright lipgloss.Color // Extra bright surface for emphasis
	Border        lipgloss.Color // Subtle borders
	BorderBright  lipgloss.Color // Prominent borders (cards, focus)
	BorderAccent  lipgloss.Color // Accent-colored borders for focus states
	TextDim       lipgloss.Color // Lowest contrast text (hints, disabled)
	TextMuted     lipgloss.Color // Secondary text (labels, metadata)
	TextPrimary   lipgloss.Color // Primary content text
	Accent        lipgloss.Color // Primary accent (links, active states)
	AccentBright  lipgloss.Color // Brighter accent for emphasis
	AccentDim     lipgloss.Color // Dimmed accent for backgrounds
	Green         lipgloss.Color
	GreenBright   lipgloss.Color
	Orange        lipgloss.Color
	Red           lipgloss.Color
	Blue          lipgloss.Color
	BlueBright    lipgloss.Color
	Yellow        lipgloss.Color
	Magenta       lipgloss.Color
	Cyan          lipgloss.Color
}

// Active is the currently selected theme.
var Active = Smeraldo

// Smeraldo is the default theme, built around the emerald accent of the
// web frontend.
var Smeraldo = Theme{
	Name:          "smeraldo",
	Background:    lipgloss.Color("#0C1210"),
	Surface:       lipgloss.Color("#151D1A"),
	SurfaceHover:  lipgloss.Color("#1F2A26"),
	SurfaceBright: lipgloss.Color("#2A3731"),
	Border:        lipgloss.Color("#32423B"),
	BorderBright:  lipgloss.Color("#4A5D54"),
	BorderAccent:  lipgloss.Color("#10B981"),
	TextDim:       lipgloss.Color("#4A5D54"),
	TextMuted:     lipgloss.Color("#8BA197"),
	TextPrimary:   lipgloss.Color("#ECFDF5"),
	Accent:        lipgloss.Color("#10B981"),
	AccentBright:  lipgloss.Color("#34D399"),
	AccentDim:     lipgloss.Color("#123B2D"),
	Green:         lipgloss.Color("#4ADE80"),
	GreenBright:   lipgloss.Color("#86EFAC"),
	Orange:        lipgloss.Color("#FB923C"),
	Red:           lipgloss.Color("#F87171"),
	Blue:          lipgloss.Color("#60A5FA"),
	BlueBright:    lipgloss.Color("#93C5FD"),
	Yellow:        lipgloss.Color("#FACC15"),
	Magenta:       lipgloss.Color("#E879F9"),
	Cyan:          lipgloss.Color("#22D3EE"),
}

// Notte is a cool blue alternative for people who find the default too warm.
var Notte = Theme{
	Name:          "notte",
	Background:    lipgloss.Color("#101420"),
	Surface:       lipgloss.Color("#1A2030"),
	SurfaceHover:  lipgloss.Color("#252D42"),
	SurfaceBright: lipgloss.Color("#313B55"),
	Border:        lipgloss.Color("#39425E"),
	BorderBright:  lipgloss.Color("#535E82"),
	BorderAccent:  lipgloss.Color("#7AA2F7"),
	TextDim:       lipgloss.Color("#535E82"),
	TextMuted:     lipgloss.Color("#9AA5CE"),
	TextPrimary:   lipgloss.Color("#C8D3F5"),
	Accent:        lipgloss.Color("#7AA2F7"),
	AccentBright:  lipgloss.Color("#A9C1FF"),
	AccentDim:     lipgloss.Color("#24304F"),
	Green:         lipgloss.Color("#9ECE6A"),
	GreenBright:   lipgloss.Color("#B9E87A"),
	Orange:        lipgloss.Color("#FF9E64"),
	Red:           lipgloss.Color("#F7768E"),
	Blue:          lipgloss.Color("#7AA2F7"),
	BlueBright:    lipgloss.Color("#A9C1FF"),
	Yellow:        lipgloss.Color("#E0AF68"),
	Magenta:       lipgloss.Color("#BB9AF7"),
	Cyan:          lipgloss.Color("#7DCFFF"),
}

// Terminal uses ANSI 16 colors only for maximum compatibility.
var Terminal = Theme{
	Name:          "terminal",
	Background:    lipgloss.Color("0"),
	Surface:       lipgloss.Color("0"),
	SurfaceHover:  lipgloss.Color("8"),
	SurfaceBright: lipgloss.Color("8"),
	Border:        lipgloss.Color("8"),
	BorderBright:  lipgloss.Color("7"),
	BorderAccent:  lipgloss.Color("2"),
	TextDim:       lipgloss.Color("8"),
	TextMuted:     lipgloss.Color("7"),
	TextPrimary:   lipgloss.Color("15"),
	Accent:        lipgloss.Color("2"),
	AccentBright:  lipgloss.Color("10"),
	AccentDim:     lipgloss.Color("0"),
	Green:         lipgloss.Color("2"),
	GreenBright:   lipgloss.Color("10"),
	Orange:        lipgloss.Color("3"),
	Red:           lipgloss.Color("1"),
	Blue:          lipgloss.Color("4"),
	BlueBright:    lipgloss.Color("12"),
	Yellow:        lipgloss.Color("3"),
	Magenta:       lipgloss.Color("5"),
	Cyan:          lipgloss.Color("6"),
}

// All available themes.
var All = []Theme{Smeraldo, Notte, Terminal}

// ByName returns a theme by its name, defaulting to Smeraldo.
func ByName(name string) Theme {
	for _, t := range All {
		if t.Name == name {
			return t
		}
	}
	return Smeraldo
}

// SetActive sets the active theme by name.
func SetActive(name string) {
	Active = ByName(name)
}
