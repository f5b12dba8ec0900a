package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/spesecasa/cassa/internal/api"
	"github.com/spesecasa/cassa/internal/cli"
	"github.com/spesecasa/cassa/internal/tui/components"
	"github.com/spesecasa/cassa/internal/tui/theme"
)

// famFormVals backs the new family form.
type famFormVals struct {
	nome string
}

// famState holds the families tab, visible to superusers only.
type famState struct {
	loaded  bool
	loading bool
	seq     uint64

	items  []api.Family
	cursor int

	form *huh.Form
	vals *famFormVals
}

func (a *App) reloadFamilies() tea.Cmd {
	a.fams.seq++
	a.fams.loading = true
	return fetchFamiliesCmd(a, a.fams.seq)
}

func (a App) applyFamiliesMsg(msg familiesMsg) (tea.Model, tea.Cmd) {
	if msg.seq != a.fams.seq {
		return a, nil
	}
	a.fams.loading = false
	if msg.err != nil {
		a.fail(msg.err)
		return a, nil
	}
	a.fams.loaded = true
	a.fams.items = msg.items
	if a.fams.cursor >= len(msg.items) {
		a.fams.cursor = len(msg.items) - 1
	}
	if a.fams.cursor < 0 {
		a.fams.cursor = 0
	}
	return a, nil
}

func (a App) updateFamiliesKeys(key string) (tea.Model, tea.Cmd) {
	switch key {
	case "j", "down":
		if a.fams.cursor < len(a.fams.items)-1 {
			a.fams.cursor++
		}
		return a, nil
	case "k", "up":
		if a.fams.cursor > 0 {
			a.fams.cursor--
		}
		return a, nil

	case "a":
		vals := &famFormVals{}
		a.fams.vals = vals
		a.fams.form = huh.NewForm(huh.NewGroup(
			huh.NewInput().
				Title("Nome famiglia").
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("il nome è obbligatorio")
					}
					return nil
				}).
				Value(&vals.nome),
		)).WithWidth(a.contentWidth() - 6)
		return a, a.fams.form.Init()
	}
	return a, nil
}

func (a App) submitFamilyForm() tea.Cmd {
	name := strings.TrimSpace(a.fams.vals.nome)
	client := a.sess.Client()

	cmd := actionCmd(func(ctx context.Context) error {
		_, err := client.CreateFamily(ctx, name)
		return err
	}, "Famiglia creata")
	// Families have no bus topic; only this tab shows them.
	return tea.Sequence(cmd, func() tea.Msg { return familiesInvalidatedMsg{} })
}

// familiesInvalidatedMsg forces a refetch after a family mutation.
type familiesInvalidatedMsg struct{}

func (a App) renderFamiliesTab(cw int) string {
	t := theme.Active

	if a.fams.form != nil {
		return components.ContentCard("Nuova famiglia", a.fams.form.View(), cw)
	}

	if a.fams.loading && !a.fams.loaded {
		return "\n  " + a.spinner.View() + lipgloss.NewStyle().Foreground(t.TextMuted).Render(" Caricamento famiglie...")
	}

	dimStyle := lipgloss.NewStyle().Foreground(t.TextDim)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	selStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Background(t.SurfaceHover).Bold(true)
	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	var b strings.Builder
	if len(a.fams.items) == 0 {
		b.WriteString(dimStyle.Render("Nessuna famiglia registrata"))
	}

	for i, f := range a.fams.items {
		line := fmt.Sprintf("%-30.30s %s", f.Name,
			labelStyle.Render("creata il "+cli.FormatDate(f.CreatedAt)))
		if i == a.fams.cursor {
			marker := lipgloss.NewStyle().Foreground(t.AccentBright).Render("▸ ")
			b.WriteString(marker + selStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + rowStyle.Render(line) + "\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(" [a]ggiungi"))

	return components.ContentCard("Famiglie", b.String(), cw)
}
