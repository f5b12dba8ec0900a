package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// searchState is the global search overlay. seq identifies the newest
// keystroke: debounce ticks and responses carrying an older seq are
// dropped, so a slow response can never overwrite fresher results.
type searchState struct {
	active  bool
	input   textinput.Model
	seq     uint64
	loading bool
	results *api.SearchResults
	cursor  int // flattened result index, -1 = typing
}

func (a App) openSearch() (tea.Model, tea.Cmd) {
	ti := textinput.New()
	ti.Placeholder = "cerca movimenti, categorie, spese ricorrenti..."
	ti.CharLimit = 128
	ti.Width = 48
	ti.Focus()

	a.search = searchState{active: true, input: ti, cursor: -1}
	return a, ti.Cursor.BlinkCmd()
}

// searchResultTabs returns the owning tab of each flattened result, in the
// order viewSearch renders them.
func searchResultTabs(res *api.SearchResults) []string {
	if res == nil {
		return nil
	}
	var tabs []string
	for range res.Results.Movements {
		tabs = append(tabs, "Movimenti")
	}
	for range res.Results.Categories {
		tabs = append(tabs, "Categorie")
	}
	for range res.Results.RecurringExpenses {
		tabs = append(tabs, "Ricorrenti")
	}
	return tabs
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tabs := searchResultTabs(a.search.results)

	switch msg.String() {
	case "esc":
		a.search = searchState{}
		return a, nil
	case "down":
		if a.search.cursor < len(tabs)-1 {
			a.search.cursor++
		}
		return a, nil
	case "up":
		if a.search.cursor >= 0 {
			a.search.cursor--
		}
		return a, nil
	case "enter":
		// With a result selected, enter jumps to the tab that owns it.
		if a.search.cursor >= 0 && a.search.cursor < len(tabs) {
			target := tabs[a.search.cursor]
			a.search = searchState{}
			for i, tab := range a.tabs {
				if tab.Name == target {
					a.activeTab = i
					break
				}
			}
			return a, a.ensureTabData()
		}
		// Otherwise enter skips the debounce for an immediate search.
		query := strings.TrimSpace(a.search.input.Value())
		if len([]rune(query)) < api.MinSearchLength {
			return a, nil
		}
		a.search.seq++
		a.search.loading = true
		return a, searchCmd(&a, query, a.search.seq)
	}

	before := a.search.input.Value()
	var cmd tea.Cmd
	a.search.input, cmd = a.search.input.Update(msg)
	after := a.search.input.Value()

	if before == after {
		return a, cmd
	}

	a.search.seq++
	a.search.cursor = -1
	query := strings.TrimSpace(after)
	if len([]rune(query)) < api.MinSearchLength {
		// Below the threshold nothing is fetched and stale results clear.
		a.search.results = nil
		a.search.loading = false
		return a, cmd
	}
	return a, tea.Batch(cmd, searchDebounceCmd(a.search.seq))
}

func (a App) applySearchTick(msg searchTickMsg) (tea.Model, tea.Cmd) {
	if !a.search.active || msg.seq != a.search.seq {
		return a, nil
	}
	query := strings.TrimSpace(a.search.input.Value())
	if len([]rune(query)) < api.MinSearchLength {
		return a, nil
	}
	a.search.loading = true
	return a, searchCmd(&a, query, a.search.seq)
}

func (a App) applySearchResult(msg searchResultMsg) (tea.Model, tea.Cmd) {
	if !a.search.active || msg.seq != a.search.seq {
		return a, nil
	}
	a.search.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	res := msg.res
	a.search.results = &res
	return a, nil
}

func (a App) viewSearch(cw int) string {
	t := theme.Active
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	sectionStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)

	var b strings.Builder
	b.WriteString(a.search.input.View())
	b.WriteString("\n\n")

	query := strings.TrimSpace(a.search.input.Value())
	switch {
	case len([]rune(query)) < api.MinSearchLength:
		b.WriteString(dimStyle.Render("Digita almeno 2 caratteri per cercare"))
	case a.search.loading:
		b.WriteString(a.spinner.View() + labelStyle.Render(" Ricerca in corso..."))
	case a.search.results != nil:
		res := a.search.results
		if res.TotalResults == 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("Nessun risultato per \"%s\"", res.Query)))
		} else {
			b.WriteString(labelStyle.Render(fmt.Sprintf("%d risultati per \"%s\"", res.TotalResults, res.Query)))
			b.WriteString("\n")

			idx := 0
			marker := func() string {
				m := "  "
				if idx == a.search.cursor {
					m = sectionStyle.Render("▸") + " "
				}
				idx++
				return m
			}

			if len(res.Results.Movements) > 0 {
				b.WriteString("\n" + sectionStyle.Render("Movimenti") + "\n")
				for _, m := range res.Results.Movements {
					b.WriteString(fmt.Sprintf("%s%s  %s  %s\n",
						marker(),
						dimStyle.Render(cli.FormatDate(m.Date.Time)),
						valueStyle.Render(m.Description),
						labelStyle.Render(cli.FormatSignedEUR(m.Amount, m.Type == api.Income))))
				}
			}
			if len(res.Results.Categories) > 0 {
				b.WriteString("\n" + sectionStyle.Render("Categorie") + "\n")
				for _, c := range res.Results.Categories {
					b.WriteString(marker() + valueStyle.Render(c.Name) + "\n")
				}
			}
			if len(res.Results.RecurringExpenses) > 0 {
				b.WriteString("\n" + sectionStyle.Render("Spese ricorrenti") + "\n")
				for _, r := range res.Results.RecurringExpenses {
					b.WriteString(fmt.Sprintf("%s%s  %s\n",
						marker(),
						valueStyle.Render(r.Name),
						labelStyle.Render(cli.FormatEUR(r.Amount))))
				}
			}
		}
	}

	hint := "Esc: chiudi"
	if a.search.results != nil && a.search.results.TotalResults > 0 {
		hint = "↑/↓: seleziona  Invio: vai alla scheda  Esc: chiudi"
	}
	b.WriteString("\n\n" + dimStyle.Render(hint))
	return components.ContentCard("Ricerca", b.String(), cw)
}
